package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/service"
	"github.com/aqarat/estate-engine/pkg/apperrors"
	"github.com/aqarat/estate-engine/pkg/response"
)

type UnitHandler struct {
	service   *service.UnitService
	validator *validator.Validate
}

func NewUnitHandler(service *service.UnitService, validator *validator.Validate) *UnitHandler {
	return &UnitHandler{service: service, validator: validator}
}

func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.UnitRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, err)
		return
	}

	unit, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, unit)
}

// List supports the vacant-unit picker: ?property_id= and ?status= narrow
// the result.
func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.UnitFilter

	if raw := r.URL.Query().Get("property_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.FromError(w, apperrors.WrapValidation("invalid property_id filter", err))
			return
		}
		filter.PropertyID = id
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if status != domain.UnitStatusVacant && status != domain.UnitStatusOccupied {
			response.FromError(w, apperrors.WrapValidation("invalid status filter", nil))
			return
		}
		filter.Status = status
	}

	units, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, units)
}

func (h *UnitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	unit, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, unit)
}

func (h *UnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.UnitRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, err)
		return
	}

	unit, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, unit)
}

func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, nil)
}
