// Package schedule turns lease and contract terms into ordered installment
// due dates. It is the single generator used for both lease payments and
// rent receivables.
package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/pkg/apperrors"
)

// Entry is one generated due installment before it is persisted.
type Entry struct {
	DueDate   domain.Date
	AmountDue decimal.Decimal
}

// Generate emits one entry per frequency step from start through end,
// inclusive of end when a step lands exactly on it. A zero start or end
// yields an empty schedule, as does start after end; neither is an error.
// An unrecognized frequency is rejected outright rather than silently
// truncating the schedule.
//
// Callers are expected to validate amount > 0 before calling.
func Generate(start, end domain.Date, amount decimal.Decimal, freq domain.Frequency) ([]Entry, error) {
	if start.IsZero() || end.IsZero() {
		return nil, nil
	}

	step, ok := freq.StepMonths()
	if !ok {
		return nil, apperrors.WrapUnsupportedFrequency(string(freq))
	}

	var entries []Entry
	for k := 0; ; k++ {
		due := addMonths(start, k*step)
		if end.Before(due) {
			break
		}
		entries = append(entries, Entry{DueDate: due, AmountDue: amount})
	}
	return entries, nil
}

// Installments materializes generated entries as pending installment
// records owned by ownerID, ready for bulk insert.
func Installments(ownerID uuid.UUID, entries []Entry) []*domain.Installment {
	installments := make([]*domain.Installment, 0, len(entries))
	for _, e := range entries {
		installments = append(installments, &domain.Installment{
			ID:         uuid.New(),
			OwnerID:    ownerID,
			DueDate:    e.DueDate,
			AmountDue:  e.AmountDue,
			AmountPaid: decimal.Zero,
			Status:     domain.InstallmentStatusPending,
		})
	}
	return installments
}

// addMonths advances d by the given number of calendar months, keeping the
// anchor's day of month and clamping to the target month's length. Jan 31
// stepped monthly gives Jan 31, Feb 28, Mar 31: the day springs back once
// a long enough month comes around, because every step is taken from the
// anchor rather than from the previous clamped date.
func addMonths(d domain.Date, months int) domain.Date {
	total := int(d.Month) - 1 + months
	year := d.Year + total/12
	month := time.Month(total%12 + 1)

	day := d.Day
	if last := lastDayOf(year, month); day > last {
		day = last
	}
	return domain.NewDate(year, month, day)
}

func lastDayOf(year int, month time.Month) int {
	// Day zero of the next month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
