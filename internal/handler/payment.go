package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/service"
	"github.com/aqarat/estate-engine/pkg/apperrors"
	"github.com/aqarat/estate-engine/pkg/response"
)

type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(service *service.PaymentService, validator *validator.Validate) *PaymentHandler {
	return &PaymentHandler{service: service, validator: validator}
}

func pathKind(r *http.Request) (domain.InstallmentKind, error) {
	kind, err := domain.ParseInstallmentKind(mux.Vars(r)["kind"])
	if err != nil {
		return "", apperrors.WrapValidation("invalid installment kind in path", err)
	}
	return kind, nil
}

// Apply records a payment against a single installment. Amount accumulates
// onto whatever has already been paid; it never replaces it.
func (h *PaymentHandler) Apply(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		response.FromError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.ApplyPaymentRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, err)
		return
	}

	inst, err := h.service.ApplyPayment(r.Context(), kind, id, req.Amount)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, inst)
}

// Reset clears all recorded payment on an installment and returns it to pending.
func (h *PaymentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	kind, err := pathKind(r)
	if err != nil {
		response.FromError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	inst, err := h.service.ResetPayment(r.Context(), kind, id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, inst)
}
