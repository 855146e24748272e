// Package ledger holds the settlement rules for installments: applying a
// payment, undoing one, and summarizing a set of installments for the
// dashboard. Everything here is pure; persistence is the service layer's
// job.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/pkg/apperrors"
)

// OverpaymentPolicy decides what happens when a payment would push
// amount_paid above amount_due. The historical behavior is lenient.
type OverpaymentPolicy string

const (
	PolicyLenient OverpaymentPolicy = "lenient"
	PolicyStrict  OverpaymentPolicy = "strict"
)

func ParseOverpaymentPolicy(s string) (OverpaymentPolicy, error) {
	switch OverpaymentPolicy(s) {
	case PolicyLenient, PolicyStrict:
		return OverpaymentPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown overpayment policy %q", s)
	}
}

// DeriveStatus maps the paid/due relation to a settlement status. It is
// the only place status is computed.
func DeriveStatus(due, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(due):
		return domain.InstallmentStatusPaid
	case paid.IsPositive():
		return domain.InstallmentStatusPartial
	default:
		return domain.InstallmentStatusPending
	}
}

// Apply adds a payment to the installment and recomputes its status.
// amount_paid never decreases. Under the strict policy a payment that
// would exceed amount_due is rejected; under the lenient policy it is
// accepted and the installment reported as paid.
func Apply(inst domain.Installment, add decimal.Decimal, policy OverpaymentPolicy, today domain.Date) (domain.Installment, error) {
	if !add.IsPositive() {
		return inst, apperrors.WrapInvalidPaymentAmount(add.String())
	}

	newPaid := inst.AmountPaid.Add(add)
	if policy == PolicyStrict && newPaid.GreaterThan(inst.AmountDue) {
		return inst, apperrors.WrapOverpayment(inst.AmountDue.String(), newPaid.String())
	}

	inst.AmountPaid = newPaid
	inst.Status = DeriveStatus(inst.AmountDue, newPaid)
	inst.PaidAt = today
	return inst, nil
}

// Reset is the undo operation: unconditionally zero the payment state.
// Calling it on an already-pending installment is a no-op.
func Reset(inst domain.Installment) domain.Installment {
	inst.AmountPaid = decimal.Zero
	inst.Status = domain.InstallmentStatusPending
	inst.PaidAt = domain.Date{}
	return inst
}

// Summary aggregates a windowed installment set. Outstanding is due minus
// paid and may be negative when overpayments occurred; it is reported
// as-is, never clamped.
type Summary struct {
	Due         decimal.Decimal `json:"due"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

func Summarize(installments []*domain.Installment) Summary {
	due, paid := decimal.Zero, decimal.Zero
	for _, inst := range installments {
		due = due.Add(inst.AmountDue)
		paid = paid.Add(inst.AmountPaid)
	}
	return Summary{Due: due, Paid: paid, Outstanding: due.Sub(paid)}
}

// Metric selects a dashboard drill-down bucket.
type Metric string

const (
	MetricDue         Metric = "due"
	MetricPaid        Metric = "paid"
	MetricOutstanding Metric = "outstanding"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricDue, MetricPaid, MetricOutstanding:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("unknown drill-down metric %q", s)
	}
}

// Filter narrows a windowed installment set to one metric's records using
// exact decimal comparison: due keeps everything, paid keeps records with
// any payment, outstanding keeps records not yet fully settled.
func Filter(installments []*domain.Installment, metric Metric) []*domain.Installment {
	if metric == MetricDue {
		return installments
	}

	filtered := make([]*domain.Installment, 0, len(installments))
	for _, inst := range installments {
		switch metric {
		case MetricPaid:
			if inst.AmountPaid.IsPositive() {
				filtered = append(filtered, inst)
			}
		case MetricOutstanding:
			if inst.AmountDue.GreaterThan(inst.AmountPaid) {
				filtered = append(filtered, inst)
			}
		}
	}
	return filtered
}
