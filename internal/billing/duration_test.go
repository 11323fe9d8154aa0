package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeBillableDays_ExactMultiplesOf24h(t *testing.T) {
	// 2024-06-01 is a Saturday.
	cases := []struct {
		endDate string
		endTime string
		days    int
	}{
		{"2024-06-02", "18:00", 1},
		{"2024-06-03", "18:00", 2},
		{"2024-06-08", "18:00", 7},
		{"2024-07-01", "18:00", 30},
	}

	for _, tc := range cases {
		days, err := ComputeBillableDays(RentalPeriod{
			StartDate: "2024-06-01", StartTime: "18:00",
			EndDate: tc.endDate, EndTime: tc.endTime,
		})
		assert.NoError(t, err)
		assert.Equal(t, tc.days, days, "end %s %s", tc.endDate, tc.endTime)
	}
}

func TestComputeBillableDays_OneMinutePastBoundaryAddsADay(t *testing.T) {
	days, err := ComputeBillableDays(RentalPeriod{
		StartDate: "2024-06-01", StartTime: "18:00",
		EndDate: "2024-06-02", EndTime: "18:01",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, days)

	days, err = ComputeBillableDays(RentalPeriod{
		StartDate: "2024-06-01", StartTime: "18:00",
		EndDate: "2024-06-03", EndTime: "18:01",
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, days)
}

func TestComputeBillableDays_PartialDayRoundsUp(t *testing.T) {
	days, err := ComputeBillableDays(RentalPeriod{
		StartDate: "2024-06-01", StartTime: "18:00",
		EndDate: "2024-06-02", EndTime: "09:00",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, days)
}

func TestComputeBillableDays_MissingTimeDefaultsTo1800(t *testing.T) {
	days, err := ComputeBillableDays(RentalPeriod{
		StartDate: "2024-06-01",
		EndDate:   "2024-06-03",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, days)
}

func TestComputeBillableDays_InvalidPeriod(t *testing.T) {
	cases := []RentalPeriod{
		{StartDate: "2024-06-03", StartTime: "18:00", EndDate: "2024-06-01", EndTime: "18:00"},
		{StartDate: "2024-06-01", StartTime: "18:00", EndDate: "2024-06-01", EndTime: "18:00"},
		{StartDate: "not-a-date", EndDate: "2024-06-03"},
		{StartDate: "2024-06-01", EndDate: ""},
		{StartDate: "2024-06-01", StartTime: "25:99", EndDate: "2024-06-03"},
	}

	for _, p := range cases {
		_, err := ComputeBillableDays(p)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "%+v", p)
	}
}

func TestDaysOrMinimum_ClampsToOneDay(t *testing.T) {
	// Inverted period: preview keeps rendering with the 1-day floor.
	days, err := DaysOrMinimum(RentalPeriod{
		StartDate: "2024-06-03", StartTime: "18:00",
		EndDate: "2024-06-01", EndTime: "18:00",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, days)

	// Unparsable input still fails even in preview mode.
	_, err = DaysOrMinimum(RentalPeriod{StartDate: "garbage", EndDate: "2024-06-01"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestDaysOrMinimum_MatchesStrictOnValidPeriods(t *testing.T) {
	p := RentalPeriod{
		StartDate: "2024-06-01", StartTime: "10:00",
		EndDate: "2024-06-11", EndTime: "12:30",
	}

	strict, err := ComputeBillableDays(p)
	assert.NoError(t, err)
	lenient, err := DaysOrMinimum(p)
	assert.NoError(t, err)
	assert.Equal(t, strict, lenient)
}

func TestStartWeekday(t *testing.T) {
	wd, err := StartWeekday(RentalPeriod{StartDate: "2024-06-01", StartTime: "18:00"})
	assert.NoError(t, err)
	assert.Equal(t, time.Saturday, wd)

	wd, err = StartWeekday(RentalPeriod{StartDate: "2024-06-07"})
	assert.NoError(t, err)
	assert.Equal(t, time.Friday, wd)
}

func TestComputeBillableDays_Idempotent(t *testing.T) {
	p := RentalPeriod{
		StartDate: "2024-06-01", StartTime: "18:00",
		EndDate: "2024-06-05", EndTime: "09:30",
	}

	first, err1 := ComputeBillableDays(p)
	second, err2 := ComputeBillableDays(p)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}
