package forecast

import (
	"time"

	"github.com/Naren8520/mlforecast/pkg/errors"
)

// Frequency is the calendar step between consecutive observations of a
// series. Stepping is calendar-aware: monthly data advances by whole months
// regardless of month length.
type Frequency int

const (
	// Monthly steps by calendar months (pandas "MS"/"M").
	Monthly Frequency = iota
	// Weekly steps by seven days.
	Weekly
	// Daily steps by calendar days.
	Daily
	// Hourly steps by hours.
	Hourly
	// Yearly steps by calendar years.
	Yearly
)

// ParseFrequency converts a pandas-style frequency code.
func ParseFrequency(code string) (Frequency, error) {
	switch code {
	case "M", "MS", "ME":
		return Monthly, nil
	case "W":
		return Weekly, nil
	case "D":
		return Daily, nil
	case "H", "h":
		return Hourly, nil
	case "Y", "YS", "A":
		return Yearly, nil
	default:
		return 0, errors.NewValidationError("freq", "unknown frequency code", code)
	}
}

// Next advances t by k frequency steps.
func (f Frequency) Next(t time.Time, k int) time.Time {
	switch f {
	case Monthly:
		return t.AddDate(0, k, 0)
	case Weekly:
		return t.AddDate(0, 0, 7*k)
	case Daily:
		return t.AddDate(0, 0, k)
	case Hourly:
		return t.Add(time.Duration(k) * time.Hour)
	case Yearly:
		return t.AddDate(k, 0, 0)
	}
	return t
}

// String returns the pandas-style code.
func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "MS"
	case Weekly:
		return "W"
	case Daily:
		return "D"
	case Hourly:
		return "H"
	case Yearly:
		return "YS"
	}
	return "?"
}
