package stats

import (
	"encoding/json"
	"testing"

	"github.com/julianstephens/mealframe/internal/models"
)

func TestNewRateRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		num, den int
		want     string
	}{
		{4, 5, "0.800"},
		{2, 4, "0.500"},
		{1, 3, "0.333"},
		{2, 3, "0.667"},
		{1, 8, "0.125"},
		// exact ties at the fourth digit go to the even neighbour
		{1, 16, "0.062"},
		{3, 16, "0.188"},
		{5, 16, "0.312"},
		{7, 16, "0.438"},
		{5, 5, "1.000"},
		{0, 7, "0.000"},
		{0, 0, "0.000"},
	}

	for _, tt := range tests {
		got := NewRate(tt.num, tt.den).String()
		if got != tt.want {
			t.Errorf("NewRate(%d, %d) = %s, want %s", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestRateNoData(t *testing.T) {
	r := NoDataRate()
	if r.String() != "0" {
		t.Errorf("NoDataRate().String() = %q, want %q", r.String(), "0")
	}
	if r.HasData() {
		t.Error("NoDataRate().HasData() = true")
	}
	if r.Cmp(NewRate(0, 0)) != 0 {
		t.Error("no-data rate should compare equal to 0.000")
	}
	if r.Cmp(NewRate(1, 2)) >= 0 {
		t.Error("no-data rate should compare below 0.500")
	}

	var zero Rate
	if zero.String() != "0" {
		t.Errorf("zero Rate renders %q, want %q", zero.String(), "0")
	}
}

func TestRateMarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Rate{"a": NewRate(4, 5), "b": NoDataRate()})
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	want := `{"a":"0.800","b":"0"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestTally(t *testing.T) {
	var tally Tally
	for _, s := range []models.CompletionStatus{followed, followed, adjusted, social, "", "bogus", replaced} {
		tally.Add(s)
	}

	if tally.Total() != 7 {
		t.Errorf("Total() = %d, want 7", tally.Total())
	}
	if got := tally.Count(unmarked); got != 2 {
		t.Errorf("Count(unmarked) = %d, want 2 (empty and unknown statuses)", got)
	}
	if tally.Completed() != 5 {
		t.Errorf("Completed() = %d, want 5", tally.Completed())
	}
	if tally.Decidable() != 4 {
		t.Errorf("Decidable() = %d, want 4", tally.Decidable())
	}
	if tally.Adherent() != 3 {
		t.Errorf("Adherent() = %d, want 3", tally.Adherent())
	}
	if got := tally.Rate().String(); got != "0.750" {
		t.Errorf("Rate() = %s, want 0.750", got)
	}
	if got := tally.Breakdown().Sum(); got != tally.Total() {
		t.Errorf("Breakdown().Sum() = %d, want %d", got, tally.Total())
	}
}

func TestTallyDegenerateRates(t *testing.T) {
	var empty Tally
	if got := empty.Rate().String(); got != "0" {
		t.Errorf("empty tally rate = %q, want %q", got, "0")
	}

	var undecidable Tally
	undecidable.Add(social)
	undecidable.Add(unmarked)
	if got := undecidable.Rate().String(); got != "0.000" {
		t.Errorf("undecidable tally rate = %q, want %q", got, "0.000")
	}
}
