package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/ledger"
	"github.com/aqarat/estate-engine/internal/repository"
	"github.com/aqarat/estate-engine/pkg/apperrors"
)

// ReportService computes the dashboard numbers. Each summary covers one
// collection and one window; lease and rent figures are never combined.
type ReportService struct {
	installments repository.InstallmentRepository
	cache        repository.SummaryCache
	cacheTTL     time.Duration
	logger       *slog.Logger
}

func NewReportService(
	installments repository.InstallmentRepository,
	cache repository.SummaryCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *ReportService {
	return &ReportService{
		installments: installments,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// RangeSummary sums due, paid and outstanding over installments whose due
// date falls in [from, to], both ends inclusive. Results are cached; a
// cache failure falls through to the store.
func (s *ReportService) RangeSummary(ctx context.Context, kind domain.InstallmentKind, from, to domain.Date) (ledger.Summary, error) {
	cached, err := s.cache.Get(ctx, kind, from, to)
	if err != nil {
		s.logger.Warn("summary cache read failed", "kind", kind, "error", err)
	} else if cached != nil {
		return *cached, nil
	}

	installments, err := s.installments.ListDueBetween(ctx, kind, from, to)
	if err != nil {
		return ledger.Summary{}, apperrors.WrapPersistence(err)
	}

	summary := ledger.Summarize(installments)

	if err := s.cache.Set(ctx, kind, from, to, summary, s.cacheTTL); err != nil {
		s.logger.Warn("summary cache write failed", "kind", kind, "error", err)
	}

	return summary, nil
}

// MonthSummary covers the half-open window [first of month, first of next
// month) containing today. Due dates are whole days, so the window is
// evaluated as an inclusive range ending the day before the next month.
func (s *ReportService) MonthSummary(ctx context.Context, kind domain.InstallmentKind, today domain.Date) (ledger.Summary, error) {
	first := today.FirstOfMonth()
	last := today.NextMonthFirst().AddDays(-1)
	return s.RangeSummary(ctx, kind, first, last)
}

// RefreshMonthSummary recomputes the current-month summary from the store
// and overwrites whatever the cache holds, live entry or not. The nightly
// snapshot job uses it; read paths go through MonthSummary instead.
func (s *ReportService) RefreshMonthSummary(ctx context.Context, kind domain.InstallmentKind, today domain.Date) (ledger.Summary, error) {
	first := today.FirstOfMonth()
	last := today.NextMonthFirst().AddDays(-1)

	installments, err := s.installments.ListDueBetween(ctx, kind, first, last)
	if err != nil {
		return ledger.Summary{}, apperrors.WrapPersistence(err)
	}

	summary := ledger.Summarize(installments)

	if err := s.cache.Set(ctx, kind, first, last, summary, s.cacheTTL); err != nil {
		s.logger.Warn("summary cache write failed", "kind", kind, "error", err)
	}

	return summary, nil
}

// Drilldown returns the windowed installments behind one summary figure.
func (s *ReportService) Drilldown(ctx context.Context, kind domain.InstallmentKind, metric ledger.Metric, from, to domain.Date) ([]*domain.Installment, error) {
	installments, err := s.installments.ListDueBetween(ctx, kind, from, to)
	if err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return ledger.Filter(installments, metric), nil
}

// Unpaid lists outstanding rent receivables in the window together with
// the client and unit to chase them on.
func (s *ReportService) Unpaid(ctx context.Context, from, to domain.Date) ([]*domain.UnpaidReceivable, error) {
	receivables, err := s.installments.ListUnpaidReceivables(ctx, from, to)
	if err != nil {
		return nil, apperrors.WrapPersistence(err)
	}
	return receivables, nil
}
