package billing

import (
	"fmt"
	"math"
	"time"
)

// DefaultHour is the operational standard pickup/return time, applied
// when a reservation carries a date but no time-of-day yet.
var DefaultHour = "18:00"

// SetDefaultHour overrides the operational handover hour. Call once at
// startup, before any pricing runs.
func SetDefaultHour(hour int) {
	DefaultHour = fmt.Sprintf("%02d:00", hour)
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// RentalPeriod is a pair of civil (organization-local) timestamps split
// into date and time-of-day, matching how reservation forms store them.
type RentalPeriod struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

// ComputeBillableDays converts the period into a billable day count.
// The rule is 24h = 1 day, anything past a multiple of 24h rounds up:
// a rental returned exactly 24h after pickup is 1 day, one minute later
// is 2 days. Fails with ErrInvalidPeriod on unparsable input or when
// end <= start; callers must not price an invalid period.
func ComputeBillableDays(p RentalPeriod) (int, error) {
	start, end, err := p.bounds()
	if err != nil {
		return 0, err
	}
	if !end.After(start) {
		return 0, ErrInvalidPeriod
	}
	return ceilDays(end.Sub(start)), nil
}

// DaysOrMinimum is the lenient variant for optimistic previews: while
// the operator is still picking dates the estimator keeps rendering with
// a 1-day floor instead of erroring out. Only unparsable input fails.
func DaysOrMinimum(p RentalPeriod) (int, error) {
	start, end, err := p.bounds()
	if err != nil {
		return 0, err
	}
	if !end.After(start) {
		return 1, nil
	}
	return ceilDays(end.Sub(start)), nil
}

// StartWeekday reports the weekday the rental starts on, used for the
// weekend-formula eligibility check.
func StartWeekday(p RentalPeriod) (time.Weekday, error) {
	start, err := combine(p.StartDate, p.StartTime)
	if err != nil {
		return time.Sunday, err
	}
	return start.Weekday(), nil
}

func (p RentalPeriod) bounds() (time.Time, time.Time, error) {
	start, err := combine(p.StartDate, p.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := combine(p.EndDate, p.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func combine(date, clock string) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidPeriod
	}
	if clock == "" {
		clock = DefaultHour
	}
	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		return time.Time{}, ErrInvalidPeriod
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func ceilDays(elapsed time.Duration) int {
	days := int(math.Ceil(elapsed.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
