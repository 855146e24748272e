package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Frequency is the recurrence interval used for schedule generation.
type Frequency string

const (
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencyHalfYearly Frequency = "half-yearly"
	FrequencyYearly     Frequency = "yearly"
)

// ParseFrequency normalizes user input to a canonical Frequency. Legacy
// spellings of the half-yearly interval are accepted.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return FrequencyMonthly, nil
	case "quarterly":
		return FrequencyQuarterly, nil
	case "half-yearly", "halfyearly", "6-month", "6months":
		return FrequencyHalfYearly, nil
	case "yearly":
		return FrequencyYearly, nil
	default:
		return "", fmt.Errorf("unsupported payment frequency %q", s)
	}
}

// StepMonths returns the number of calendar months between consecutive
// due dates. ok is false for a frequency that is not canonical.
func (f Frequency) StepMonths() (int, bool) {
	switch f {
	case FrequencyMonthly:
		return 1, true
	case FrequencyQuarterly:
		return 3, true
	case FrequencyHalfYearly:
		return 6, true
	case FrequencyYearly:
		return 12, true
	default:
		return 0, false
	}
}

func (f Frequency) Valid() bool {
	_, ok := f.StepMonths()
	return ok
}

// Value implements driver.Valuer. An empty Frequency is stored as NULL.
func (f Frequency) Value() (driver.Value, error) {
	if f == "" {
		return nil, nil
	}
	return string(f), nil
}

func (f *Frequency) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = ""
		return nil
	case string:
		*f = Frequency(v)
		return nil
	case []byte:
		*f = Frequency(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Frequency", src)
	}
}
