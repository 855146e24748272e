package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/aqarat/estate-engine/internal/config"
	"github.com/aqarat/estate-engine/internal/domain"
	"github.com/aqarat/estate-engine/internal/repository"
	"github.com/aqarat/estate-engine/internal/service"
	"github.com/aqarat/estate-engine/pkg/logger"
)

const jobTimeout = 2 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	installmentRepo := repository.NewInstallmentRepository(db)
	summaryCache := repository.NewSummaryCache(redisClient)
	reports := service.NewReportService(installmentRepo, summaryCache, cfg.Business.SummaryCacheTTL, log)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Error("invalid scheduler timezone", "timezone", cfg.Scheduler.Timezone, "error", err)
		os.Exit(1)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	if _, err := c.AddFunc(cfg.Scheduler.SnapshotSpec, func() {
		warmSummaries(reports, log)
	}); err != nil {
		log.Error("failed to schedule summary snapshot job", "error", err)
		os.Exit(1)
	}

	if _, err := c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		sendReminders(installmentRepo, cfg.Business.ReminderHorizonDays, log)
	}); err != nil {
		log.Error("failed to schedule reminder job", "error", err)
		os.Exit(1)
	}

	c.Start()
	log.Info("scheduler started",
		"snapshot_spec", cfg.Scheduler.SnapshotSpec,
		"reminder_spec", cfg.Scheduler.ReminderSpec,
		"timezone", cfg.Scheduler.Timezone)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down scheduler")
	<-c.Stop().Done()
	log.Info("scheduler stopped")
}

// warmSummaries recomputes the current-month summary for both collections
// from the store and overwrites the cached entry, so the first dashboard
// hit of the day lands on fresh numbers rather than yesterday's survivors.
func warmSummaries(reports *service.ReportService, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	today := domain.Today()
	for _, kind := range []domain.InstallmentKind{domain.KindLease, domain.KindRent} {
		summary, err := reports.RefreshMonthSummary(ctx, kind, today)
		if err != nil {
			log.Error("summary warm failed", "kind", kind, "error", err)
			continue
		}
		log.Info("summary warmed",
			"kind", kind,
			"due", summary.Due,
			"paid", summary.Paid,
			"outstanding", summary.Outstanding)
	}
}

// sendReminders logs rent receivables falling due within the configured
// horizon that still carry a balance. Delivery beyond the log is not
// wired up yet.
func sendReminders(installments repository.InstallmentRepository, horizonDays int, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	today := domain.Today()
	upcoming, err := installments.ListDueBetween(ctx, domain.KindRent, today, today.AddDays(horizonDays))
	if err != nil {
		log.Error("reminder lookup failed", "error", err)
		return
	}

	count := 0
	for _, inst := range upcoming {
		if inst.Status == domain.InstallmentStatusPaid {
			continue
		}
		count++
		log.Info("payment reminder",
			"receivable_id", inst.ID,
			"contract_id", inst.OwnerID,
			"due_date", inst.DueDate,
			"outstanding", inst.AmountDue.Sub(inst.AmountPaid))
	}
	log.Info("reminder run finished", "horizon_days", horizonDays, "reminders", count)
}
