package report

import (
	"time"

	"finledger/internal/core/apperror"
)

// ResolveRange converts a named period into a concrete inclusive date range.
// Quarter arithmetic uses floor(month/3); "Last Quarter" wraps to Q4 of the
// previous year at a January-March boundary. End dates carry 23:59:59 so the
// range is inclusive of the final calendar day.
//
// For PeriodCustom both dates are required and StartDate must be strictly
// before EndDate; violations return a validation error before any job row
// is persisted.
func ResolveRange(now time.Time, period Period, custom *Range) (Range, error) {
	year, month := now.Year(), now.Month()
	loc := now.Location()

	switch period {
	case PeriodCurrentMonth:
		return Range{
			StartDate: time.Date(year, month, 1, 0, 0, 0, 0, loc),
			EndDate:   endOfMonth(year, month, loc),
		}, nil

	case PeriodLastMonth:
		// time.Date normalizes month 0 to December of the previous year.
		start := time.Date(year, month-1, 1, 0, 0, 0, 0, loc)
		return Range{
			StartDate: start,
			EndDate:   endOfMonth(start.Year(), start.Month(), loc),
		}, nil

	case PeriodCurrentQuarter:
		q := int(month-1) / 3
		return quarterRange(year, q, loc), nil

	case PeriodLastQuarter:
		q := int(month-1)/3 - 1
		if q < 0 {
			return quarterRange(year-1, 3, loc), nil
		}
		return quarterRange(year, q, loc), nil

	case PeriodCurrentYear:
		return yearRange(year, loc), nil

	case PeriodLastYear:
		return yearRange(year-1, loc), nil

	case PeriodCustom:
		if custom == nil || custom.StartDate.IsZero() || custom.EndDate.IsZero() {
			return Range{}, apperror.NewValidation("Custom period requires startDate and endDate")
		}
		if !custom.StartDate.Before(custom.EndDate) {
			return Range{}, apperror.NewValidation("Start date must be before end date")
		}
		return Range{StartDate: custom.StartDate, EndDate: custom.EndDate}, nil
	}

	return Range{}, apperror.NewValidation("Invalid period")
}

// quarterRange spans the three months of the zero-based quarter q.
func quarterRange(year, q int, loc *time.Location) Range {
	startMonth := time.Month(q*3 + 1)
	return Range{
		StartDate: time.Date(year, startMonth, 1, 0, 0, 0, 0, loc),
		EndDate:   endOfMonth(year, startMonth+2, loc),
	}
}

func yearRange(year int, loc *time.Location) Range {
	return Range{
		StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		EndDate:   time.Date(year, time.December, 31, 23, 59, 59, 0, loc),
	}
}

// endOfMonth returns the last calendar day of the month at 23:59:59.
// Day 0 of the following month normalizes to the last day of this one.
func endOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month+1, 0, 23, 59, 59, 0, loc)
}

// MonthKeys returns the ordered distinct "YYYY-MM" keys of every calendar
// month the range touches, partial months included. Budgets are keyed by
// month string rather than by date, so budget queries match on this set.
func MonthKeys(start, end time.Time) []string {
	if end.Before(start) {
		return nil
	}

	var keys []string
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	for !cur.After(last) {
		keys = append(keys, cur.Format("2006-01"))
		cur = cur.AddDate(0, 1, 0)
	}
	return keys
}
