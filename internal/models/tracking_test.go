package models

import (
	"testing"
	"time"
)

func TestParseCompletionStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CompletionStatus
		wantErr bool
	}{
		{name: "followed", input: "followed", want: StatusFollowed},
		{name: "mixed case with spaces", input: "  Social ", want: StatusSocial},
		{name: "empty is unmarked", input: "", want: StatusUnmarked},
		{name: "explicit unmarked", input: "unmarked", want: StatusUnmarked},
		{name: "unknown", input: "eaten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompletionStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCompletionStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCompletionStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrackedDayFullyMarked(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	slot := func(s CompletionStatus) TrackedSlot {
		return TrackedSlot{Date: day, Status: s}
	}

	tests := []struct {
		name  string
		slots []TrackedSlot
		want  bool
	}{
		{name: "no slots", slots: nil, want: false},
		{name: "all followed", slots: []TrackedSlot{slot(StatusFollowed), slot(StatusFollowed)}, want: true},
		{name: "skipped still counts as marked", slots: []TrackedSlot{slot(StatusSkipped), slot(StatusSocial)}, want: true},
		{name: "one unmarked", slots: []TrackedSlot{slot(StatusFollowed), slot(StatusUnmarked)}, want: false},
		{name: "zero value status is unmarked", slots: []TrackedSlot{slot(StatusFollowed), slot("")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := TrackedDay{Date: day, Slots: tt.slots}
			if got := d.FullyMarked(); got != tt.want {
				t.Errorf("FullyMarked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapToSettings(t *testing.T) {
	settings, err := MapToSettings(map[string]string{
		"timezone":       "Europe/London",
		"week_start_day": "6",
	})
	if err != nil {
		t.Fatalf("MapToSettings() failed: %v", err)
	}
	if settings.Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, want %q", settings.Timezone, "Europe/London")
	}
	if settings.WeekStartDay != 6 {
		t.Errorf("WeekStartDay = %d, want 6", settings.WeekStartDay)
	}
	if settings.DefaultPeriodDays != 30 {
		t.Errorf("DefaultPeriodDays = %d, want default 30", settings.DefaultPeriodDays)
	}

	if _, err := MapToSettings(map[string]string{"default_period_days": "abc"}); err == nil {
		t.Error("MapToSettings() should fail on a non-numeric default_period_days")
	}

	roundTrip, err := MapToSettings(SettingsToMap(settings))
	if err != nil {
		t.Fatalf("MapToSettings(SettingsToMap()) failed: %v", err)
	}
	if roundTrip != settings {
		t.Errorf("settings changed after conversion: got %+v, want %+v", roundTrip, settings)
	}
}
