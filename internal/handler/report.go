package handler

import (
	"net/http"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/ledger"
	"github.com/aqarat/estate-engine/internal/service"
	"github.com/aqarat/estate-engine/pkg/apperrors"
	"github.com/aqarat/estate-engine/pkg/response"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func queryKind(r *http.Request) (domain.InstallmentKind, error) {
	kind, err := domain.ParseInstallmentKind(r.URL.Query().Get("kind"))
	if err != nil {
		return "", apperrors.WrapValidation("invalid kind parameter", err)
	}
	return kind, nil
}

func queryDate(r *http.Request, key string) (domain.Date, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return domain.Date{}, apperrors.WrapValidation(key+" is required", nil)
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, apperrors.WrapValidation("invalid "+key+" date", err)
	}
	return d, nil
}

// Summary serves either an explicit [from, to] window or, with ?month=current,
// the calendar month containing today.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	kind, err := queryKind(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var summary ledger.Summary
	if r.URL.Query().Get("month") == "current" {
		summary, err = h.service.MonthSummary(r.Context(), kind, domain.Today())
	} else {
		var from, to domain.Date
		if from, err = queryDate(r, "from"); err != nil {
			response.FromError(w, err)
			return
		}
		if to, err = queryDate(r, "to"); err != nil {
			response.FromError(w, err)
			return
		}
		summary, err = h.service.RangeSummary(r.Context(), kind, from, to)
	}
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, summary)
}

func (h *ReportHandler) Drilldown(w http.ResponseWriter, r *http.Request) {
	kind, err := queryKind(r)
	if err != nil {
		response.FromError(w, err)
		return
	}
	metric, err := ledger.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		response.FromError(w, apperrors.WrapValidation("invalid metric parameter", err))
		return
	}
	from, err := queryDate(r, "from")
	if err != nil {
		response.FromError(w, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		response.FromError(w, err)
		return
	}

	installments, err := h.service.Drilldown(r.Context(), kind, metric, from, to)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, installments)
}

func (h *ReportHandler) Unpaid(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		response.FromError(w, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		response.FromError(w, err)
		return
	}

	receivables, err := h.service.Unpaid(r.Context(), from, to)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, receivables)
}
