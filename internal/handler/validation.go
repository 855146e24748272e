package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/aqarat/estate-engine/internal/domain"
)

// NewValidator wires the decimal comparison tags the request DTOs use and
// the ownership/lease-fields rule on property requests.
func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("decimal_gt", decimalCompare(func(value, threshold decimal.Decimal) bool {
		return value.GreaterThan(threshold)
	}))
	_ = v.RegisterValidation("decimal_gte", decimalCompare(func(value, threshold decimal.Decimal) bool {
		return value.GreaterThanOrEqual(threshold)
	}))

	v.RegisterStructValidation(propertyRequestValidation, domain.PropertyRequest{})

	return v
}

func decimalCompare(cmp func(value, threshold decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		threshold, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(value, threshold)
	}
}

// Lease fields are present iff ownership is leased.
func propertyRequestValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(domain.PropertyRequest)

	if req.Ownership == domain.OwnershipLeased {
		if req.LeaseStart.IsZero() {
			sl.ReportError(req.LeaseStart, "lease_start", "LeaseStart", "required_when_leased", "")
		}
		if req.LeaseEnd.IsZero() {
			sl.ReportError(req.LeaseEnd, "lease_end", "LeaseEnd", "required_when_leased", "")
		}
		if !req.LeaseAmount.Valid || !req.LeaseAmount.Decimal.IsPositive() {
			sl.ReportError(req.LeaseAmount, "lease_amount", "LeaseAmount", "positive_when_leased", "")
		}
		if req.PaymentFrequency == "" {
			sl.ReportError(req.PaymentFrequency, "payment_frequency", "PaymentFrequency", "required_when_leased", "")
		}
		return
	}

	if !req.LeaseStart.IsZero() || !req.LeaseEnd.IsZero() || req.LeaseAmount.Valid || req.PaymentFrequency != "" {
		sl.ReportError(req.Ownership, "ownership", "Ownership", "lease_fields_require_leased", "")
	}
}
