package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/mealframe/internal/cli"
	apperrors "github.com/julianstephens/mealframe/internal/errors"
	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/stats"
	"github.com/julianstephens/mealframe/internal/storage/sqlite"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func date(day int) time.Time {
	return time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC)
}

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "mealframe.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, mt := range []models.MealType{{ID: "mt-b", Name: "Breakfast"}, {ID: "mt-l", Name: "Lunch"}} {
		if err := store.AddMealType(mt); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out, Now: func() time.Time { return testNow }}, &out
}

func track(t *testing.T, ctx *cli.Context, d time.Time, statuses ...models.CompletionStatus) {
	t.Helper()
	day := models.TrackedDay{Date: d}
	for i, s := range statuses {
		mealType := "mt-b"
		if i%2 == 1 {
			mealType = "mt-l"
		}
		day.Slots = append(day.Slots, models.TrackedSlot{Date: d, Position: i + 1, MealTypeID: mealType, Status: s})
	}
	if err := ctx.Store.SaveTrackedDay(day); err != nil {
		t.Fatal(err)
	}
}

func TestStatsCmd_JSON(t *testing.T) {
	ctx, out := setupContext(t)
	track(t, ctx, date(18), models.StatusFollowed, models.StatusSkipped)
	track(t, ctx, date(19), models.StatusAdjusted, models.StatusFollowed)
	// Outside a 7-day window.
	track(t, ctx, date(1), models.StatusSkipped)

	days := 7
	if err := (&StatsCmd{Days: &days, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if got["period_days"] != float64(7) {
		t.Errorf("period_days = %v", got["period_days"])
	}
	if got["total_slots"] != float64(4) {
		t.Errorf("total_slots = %v", got["total_slots"])
	}
	if got["adherence_rate"] != "0.750" {
		t.Errorf("adherence_rate = %v", got["adherence_rate"])
	}
	if got["current_streak"] != float64(2) {
		t.Errorf("current_streak = %v", got["current_streak"])
	}
}

func TestStatsCmd_DefaultsToSetting(t *testing.T) {
	ctx, out := setupContext(t)
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.DefaultPeriodDays = 14
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	if err := (&StatsCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	var r struct {
		PeriodDays    int    `json:"period_days"`
		AdherenceRate string `json:"adherence_rate"`
	}
	if err := json.Unmarshal(out.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if r.PeriodDays != 14 || r.AdherenceRate != "0" {
		t.Errorf("report = %+v, want 14 days with no data", r)
	}
}

func TestStatsCmd_End(t *testing.T) {
	ctx, out := setupContext(t)
	track(t, ctx, date(10), models.StatusSkipped)
	track(t, ctx, date(19), models.StatusFollowed)

	days := 1
	if err := (&StatsCmd{Days: &days, End: "2026-10-10", JSON: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	var r struct {
		AdherenceRate string `json:"adherence_rate"`
	}
	if err := json.Unmarshal(out.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if r.AdherenceRate != "0.000" {
		t.Errorf("adherence_rate = %s, want 0.000", r.AdherenceRate)
	}
}

func TestStatsCmd_InvalidWindow(t *testing.T) {
	ctx, _ := setupContext(t)

	for _, days := range []int{0, -3, 366} {
		err := (&StatsCmd{Days: &days}).Run(ctx)
		if !stats.IsValidationError(err) {
			t.Errorf("days=%d: expected validation error, got %v", days, err)
		}
		if code := apperrors.ExitCode(err); code != apperrors.ExitUsage {
			t.Errorf("days=%d: exit code = %d, want %d", days, code, apperrors.ExitUsage)
		}
	}

	if err := (&StatsCmd{End: "someday"}).Run(ctx); err == nil {
		t.Error("expected error for malformed end date")
	}
}

func TestStatsCmd_Text(t *testing.T) {
	ctx, out := setupContext(t)
	track(t, ctx, date(19), models.StatusFollowed, models.StatusSocial, models.StatusReplaced)

	days := 7
	if err := (&StatsCmd{Days: &days}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"2026-10-13 to 2026-10-19 (7 days)",
		"0.500",
		"3 total, 3 marked",
		"1 day",
		"By meal type",
		"Breakfast",
		"2026-10-19",
		"1/3 followed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, stats.Report{PeriodDays: 30}, date(19))
	if !strings.Contains(buf.String(), "No tracked meals in this window.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "2026-09-20 to 2026-10-19") {
		t.Errorf("unexpected window:\n%s", buf.String())
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		rate   stats.Rate
		filled int
	}{
		{stats.NoDataRate(), 0},
		{stats.NewRate(1, 2), 10},
		{stats.NewRate(3, 3), 20},
	}
	for _, tt := range tests {
		got := bar(tt.rate)
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("bar(%s) filled = %d, want %d", tt.rate, n, tt.filled)
		}
		if n := strings.Count(got, "░"); n != barWidth-tt.filled {
			t.Errorf("bar(%s) empty = %d, want %d", tt.rate, n, barWidth-tt.filled)
		}
	}
}
