package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/service"
	"github.com/aqarat/estate-engine/pkg/response"
)

type ContractHandler struct {
	service   *service.ContractService
	validator *validator.Validate
}

func NewContractHandler(service *service.ContractService, validator *validator.Validate) *ContractHandler {
	return &ContractHandler{service: service, validator: validator}
}

func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ContractRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, err)
		return
	}

	contract, schedule, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, domain.CreateContractResponse{Contract: contract, Schedule: schedule})
}

func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.service.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contracts)
}

func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	contract, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contract)
}

func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req domain.ContractRequest
	if err := decode(r, h.validator, &req); err != nil {
		response.FromError(w, err)
		return
	}

	contract, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, contract)
}

func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *ContractHandler) Receivables(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	schedule, err := h.service.Receivables(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, domain.ScheduleResponse{OwnerID: id, Schedule: schedule})
}
