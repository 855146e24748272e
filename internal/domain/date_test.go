package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-08-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.August, 29), d)

	_, err = ParseDate("29/08/2025")
	assert.Error(t, err)
}

func TestDateOrdering(t *testing.T) {
	earlier := NewDate(2025, time.January, 31)
	later := NewDate(2025, time.February, 1)

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Before(earlier))
}

func TestDateAddDays(t *testing.T) {
	tests := []struct {
		name string
		from Date
		days int
		want Date
	}{
		{"within month", NewDate(2025, time.March, 10), 5, NewDate(2025, time.March, 15)},
		{"month rollover", NewDate(2025, time.January, 31), 1, NewDate(2025, time.February, 1)},
		{"leap february", NewDate(2024, time.February, 28), 1, NewDate(2024, time.February, 29)},
		{"backwards across year", NewDate(2025, time.January, 1), -1, NewDate(2024, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.AddDays(tt.days))
		})
	}
}

func TestDateMonthBoundaries(t *testing.T) {
	d := NewDate(2025, time.December, 15)
	assert.Equal(t, NewDate(2025, time.December, 1), d.FirstOfMonth())
	assert.Equal(t, NewDate(2026, time.January, 1), d.NextMonthFirst())
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Due Date `json:"due"`
	}

	out, err := json.Marshal(payload{Due: NewDate(2025, time.August, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2025-08-01"}`, string(out))

	out, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":null}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2025-08-01"}`), &in))
	assert.Equal(t, NewDate(2025, time.August, 1), in.Due)

	require.NoError(t, json.Unmarshal([]byte(`{"due":null}`), &in))
	assert.True(t, in.Due.IsZero())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, time.July, 4, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2025, time.July, 4), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	require.NoError(t, d.Scan([]byte("2025-07-04")))
	assert.Equal(t, NewDate(2025, time.July, 4), d)
}
