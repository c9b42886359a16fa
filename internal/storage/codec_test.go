package storage

import (
	"database/sql"
	"testing"
	"time"

	"github.com/julianstephens/mealframe/internal/models"
)

func TestStatusColumnMapping(t *testing.T) {
	tests := []struct {
		name   string
		column sql.NullString
		want   models.CompletionStatus
	}{
		{name: "null", column: sql.NullString{}, want: models.StatusUnmarked},
		{name: "empty", column: sql.NullString{String: "", Valid: true}, want: models.StatusUnmarked},
		{name: "followed", column: sql.NullString{String: "followed", Valid: true}, want: models.StatusFollowed},
		{name: "unknown kept", column: sql.NullString{String: "eaten", Valid: true}, want: "eaten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFromColumn(tt.column); got != tt.want {
				t.Errorf("StatusFromColumn() = %q, want %q", got, tt.want)
			}
		})
	}

	if v := StatusToColumn(models.StatusUnmarked); v.Valid {
		t.Errorf("StatusToColumn(unmarked) = %+v, want NULL", v)
	}
	if v := StatusToColumn(models.StatusSocial); !v.Valid || v.String != "social" {
		t.Errorf("StatusToColumn(social) = %+v", v)
	}
}

func TestMergeDays(t *testing.T) {
	d1 := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	orphan := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	days := []models.TrackedDay{
		{Date: d2, IsOverride: true},
		{Date: d1},
	}
	slots := []models.TrackedSlot{
		{Date: d2, Position: 2, Status: models.StatusFollowed},
		{Date: d2, Position: 1, Status: models.StatusSkipped},
		{Date: orphan, Position: 1, Status: models.StatusSocial},
	}

	merged := MergeDays(days, slots)

	if len(merged) != 3 {
		t.Fatalf("len(merged) = %d, want 3", len(merged))
	}
	if !merged[0].Date.Equal(orphan) || merged[0].IsOverride || len(merged[0].Slots) != 1 {
		t.Errorf("merged[0] = %+v, want synthetic day for the orphan slot", merged[0])
	}
	if !merged[1].Date.Equal(d1) || len(merged[1].Slots) != 0 {
		t.Errorf("merged[1] = %+v, want empty day", merged[1])
	}
	if !merged[2].IsOverride || len(merged[2].Slots) != 2 || merged[2].Slots[0].Position != 1 {
		t.Errorf("merged[2] = %+v, want override day with slots ordered by position", merged[2])
	}
}
