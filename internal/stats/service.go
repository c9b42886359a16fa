package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mealframe/internal/logger"
	"github.com/julianstephens/mealframe/internal/models"
	"github.com/julianstephens/mealframe/internal/utils"
)

// SlotReader returns the tracked days dated within [start, end], each with its slots.
type SlotReader interface {
	GetTrackedDays(ctx context.Context, start, end time.Time) ([]models.TrackedDay, error)
}

// Observer receives the outcome of every report computation.
type Observer interface {
	ObserveReport(days int, outcome string, elapsed time.Duration)
}

// Report outcomes passed to an Observer.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Service computes adherence reports from a SlotReader.
type Service struct {
	reader   SlotReader
	loc      *time.Location
	now      func() time.Time
	observer Observer
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock used to determine today.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithObserver records every computation.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// NewService returns a Service resolving "today" in loc (UTC when nil).
func NewService(reader SlotReader, loc *time.Location, opts ...Option) *Service {
	if loc == nil {
		loc = time.UTC
	}
	s := &Service{reader: reader, loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date in the service's location.
func (s *Service) Today() time.Time {
	return utils.TodayInLocation(s.now(), s.loc)
}

// Report computes the report for the days-long window ending today.
func (s *Service) Report(ctx context.Context, days int) (Report, error) {
	return s.ReportAt(ctx, s.Today(), days)
}

// ReportAt computes the report for the days-long window ending at end.
func (s *Service) ReportAt(ctx context.Context, end time.Time, days int) (Report, error) {
	started := time.Now()

	window, err := NewWindow(end, days)
	if err != nil {
		s.observe(days, OutcomeInvalid, started)
		return Report{}, err
	}

	tracked, err := s.reader.GetTrackedDays(ctx, window.Start(), window.End)
	if err != nil {
		s.observe(days, OutcomeError, started)
		return Report{}, fmt.Errorf("reading tracked days: %w", err)
	}
	if err := ctx.Err(); err != nil {
		s.observe(days, OutcomeError, started)
		return Report{}, err
	}

	report := Aggregate(tracked, window)
	s.observe(days, OutcomeOK, started)
	logger.Debug("Computed adherence report",
		"start", utils.FormatDate(window.Start()),
		"end", utils.FormatDate(window.End),
		"slots", report.TotalSlots,
		"rate", report.AdherenceRate.String())
	return report, nil
}

func (s *Service) observe(days int, outcome string, started time.Time) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveReport(days, outcome, time.Since(started))
}

// IsValidationError reports whether err is a rejected window.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidWindow)
}
