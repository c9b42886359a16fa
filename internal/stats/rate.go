package stats

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mealframe/internal/constants"
	"github.com/julianstephens/mealframe/internal/models"
)

// Rate is an adherence ratio rounded half-even to three fraction digits.
// The zero Rate is the no-data rate and renders as "0".
type Rate struct {
	value   decimal.Decimal
	hasData bool
}

// NoDataRate is the rate of an empty slot set.
func NoDataRate() Rate {
	return Rate{}
}

// NewRate returns numerator/denominator rounded to three places.
// A zero denominator yields a rate of 0.000.
func NewRate(numerator, denominator int) Rate {
	if denominator <= 0 {
		return Rate{value: decimal.Zero, hasData: true}
	}
	return Rate{value: divideBank(numerator, denominator), hasData: true}
}

// divideBank divides exactly and rounds half to even at the last kept digit.
func divideBank(numerator, denominator int) decimal.Decimal {
	num := decimal.NewFromInt(int64(numerator))
	den := decimal.NewFromInt(int64(denominator))

	q, r := num.QuoRem(den, constants.RateFractionDigits)
	unit := decimal.New(1, -constants.RateFractionDigits)

	// r/den is the part below one unit of q; compare it against half a unit.
	switch r.Mul(decimal.NewFromInt(2)).Cmp(den.Mul(unit)) {
	case 1:
		q = q.Add(unit)
	case 0:
		if q.Shift(constants.RateFractionDigits).IntPart()%2 != 0 {
			q = q.Add(unit)
		}
	}
	return q
}

// HasData reports whether the rate was computed from at least one slot.
func (r Rate) HasData() bool {
	return r.hasData
}

// Decimal returns the rounded value; the no-data rate is zero.
func (r Rate) Decimal() decimal.Decimal {
	if !r.hasData {
		return decimal.Zero
	}
	return r.value
}

// Float64 is for display only.
func (r Rate) Float64() float64 {
	return r.Decimal().InexactFloat64()
}

// Cmp compares two rates by value. The no-data rate compares as zero.
func (r Rate) Cmp(other Rate) int {
	return r.Decimal().Cmp(other.Decimal())
}

func (r Rate) String() string {
	if !r.hasData {
		return constants.RateNoData
	}
	return r.value.StringFixedBank(constants.RateFractionDigits)
}

// MarshalJSON renders the rate as a JSON string, e.g. "0.800".
func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(r.String())), nil
}

// Tally counts slots by completion status.
type Tally struct {
	counts map[models.CompletionStatus]int
	total  int
}

// Add counts one slot. Unknown statuses count as unmarked.
func (t *Tally) Add(status models.CompletionStatus) {
	if t.counts == nil {
		t.counts = make(map[models.CompletionStatus]int, len(models.AllStatuses))
	}
	t.counts[status.Normalize()]++
	t.total++
}

// Count returns the number of slots with status.
func (t Tally) Count(status models.CompletionStatus) int {
	return t.counts[status]
}

// Total returns the number of slots counted.
func (t Tally) Total() int {
	return t.total
}

// Completed returns the number of slots with a recorded outcome.
func (t Tally) Completed() int {
	return t.total - t.Count(models.StatusUnmarked)
}

// Decidable returns the rate denominator: social and unmarked slots are excluded.
func (t Tally) Decidable() int {
	return t.total - t.Count(models.StatusSocial) - t.Count(models.StatusUnmarked)
}

// Adherent returns the rate numerator.
func (t Tally) Adherent() int {
	return t.Count(models.StatusFollowed) + t.Count(models.StatusAdjusted)
}

// Rate applies the adherence formula to the tally.
func (t Tally) Rate() Rate {
	if t.total == 0 {
		return NoDataRate()
	}
	if t.Decidable() == 0 {
		return NewRate(0, 0)
	}
	return NewRate(t.Adherent(), t.Decidable())
}

// Breakdown returns a count for every status, including zeros.
func (t Tally) Breakdown() StatusBreakdown {
	return StatusBreakdown{
		Followed: t.Count(models.StatusFollowed),
		Adjusted: t.Count(models.StatusAdjusted),
		Skipped:  t.Count(models.StatusSkipped),
		Replaced: t.Count(models.StatusReplaced),
		Social:   t.Count(models.StatusSocial),
		Unmarked: t.Count(models.StatusUnmarked),
	}
}
