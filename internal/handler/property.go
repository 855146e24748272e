package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/service"
	"github.com/aqarat/estate-engine/pkg/response"
)

type PropertyHandler struct {
	service   *service.PropertyService
	validator *validator.Validate
}

func NewPropertyHandler(service *service.PropertyService, validator *validator.Validate) *PropertyHandler {
	return &PropertyHandler{service: service, validator: validator}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.PropertyRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, err)
		return
	}

	property, schedule, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, domain.CreatePropertyResponse{Property: property, Schedule: schedule})
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, properties)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	property, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, property)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.PropertyRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, err)
		return
	}

	property, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, property)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *PropertyHandler) LeaseSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	schedule, err := h.service.LeaseSchedule(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, domain.ScheduleResponse{OwnerID: id, Schedule: schedule})
}
