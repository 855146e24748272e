package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/aqarat/estate-engine/internal/config"
	"github.com/aqarat/estate-engine/internal/handler"
	"github.com/aqarat/estate-engine/internal/repository"
	"github.com/aqarat/estate-engine/internal/service"
	"github.com/aqarat/estate-engine/pkg/logger"
	"github.com/aqarat/estate-engine/pkg/response"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	db, err := initDB(cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	propertyRepo := repository.NewPropertyRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	clientRepo := repository.NewClientRepository(db)
	contractRepo := repository.NewContractRepository(db)
	installmentRepo := repository.NewInstallmentRepository(db)
	summaryCache := repository.NewSummaryCache(redisClient)
	transactor := repository.NewTransactor(db)

	propertyService := service.NewPropertyService(propertyRepo, installmentRepo, summaryCache, transactor, log)
	unitService := service.NewUnitService(unitRepo)
	clientService := service.NewClientService(clientRepo)
	contractService := service.NewContractService(contractRepo, unitRepo, installmentRepo, summaryCache, transactor, log)
	paymentService := service.NewPaymentService(installmentRepo, summaryCache, cfg.OverpaymentPolicy(), log)
	reportService := service.NewReportService(installmentRepo, summaryCache, cfg.Business.SummaryCacheTTL, log)

	validate := handler.NewValidator()

	router := setupRoutes(
		handler.NewPropertyHandler(propertyService, validate),
		handler.NewUnitHandler(unitService, validate),
		handler.NewClientHandler(clientService, validate),
		handler.NewContractHandler(contractService, validate),
		handler.NewPaymentHandler(paymentService, validate),
		handler.NewReportHandler(reportService),
		handler.NewHealthHandler(db, redisClient),
		log,
	)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	properties *handler.PropertyHandler,
	units *handler.UnitHandler,
	clients *handler.ClientHandler,
	contracts *handler.ContractHandler,
	payments *handler.PaymentHandler,
	reports *handler.ReportHandler,
	health *handler.HealthHandler,
	log *slog.Logger,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware(log))

	router.HandleFunc("/health", health.Live).Methods("GET")
	router.HandleFunc("/health/ready", health.Ready).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/properties", properties.Create).Methods("POST")
	api.HandleFunc("/properties", properties.List).Methods("GET")
	api.HandleFunc("/properties/{id}", properties.Get).Methods("GET")
	api.HandleFunc("/properties/{id}", properties.Update).Methods("PUT")
	api.HandleFunc("/properties/{id}", properties.Delete).Methods("DELETE")
	api.HandleFunc("/properties/{id}/lease-payments", properties.LeaseSchedule).Methods("GET")

	api.HandleFunc("/units", units.Create).Methods("POST")
	api.HandleFunc("/units", units.List).Methods("GET")
	api.HandleFunc("/units/{id}", units.Get).Methods("GET")
	api.HandleFunc("/units/{id}", units.Update).Methods("PUT")
	api.HandleFunc("/units/{id}", units.Delete).Methods("DELETE")

	api.HandleFunc("/clients", clients.Create).Methods("POST")
	api.HandleFunc("/clients", clients.List).Methods("GET")
	api.HandleFunc("/clients/{id}", clients.Get).Methods("GET")
	api.HandleFunc("/clients/{id}", clients.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", clients.Delete).Methods("DELETE")

	api.HandleFunc("/contracts", contracts.Create).Methods("POST")
	api.HandleFunc("/contracts", contracts.List).Methods("GET")
	api.HandleFunc("/contracts/{id}", contracts.Get).Methods("GET")
	api.HandleFunc("/contracts/{id}", contracts.Update).Methods("PUT")
	api.HandleFunc("/contracts/{id}", contracts.Delete).Methods("DELETE")
	api.HandleFunc("/contracts/{id}/receivables", contracts.Receivables).Methods("GET")

	api.HandleFunc("/installments/{kind}/{id}/payments", payments.Apply).Methods("POST")
	api.HandleFunc("/installments/{kind}/{id}/reset", payments.Reset).Methods("POST")

	api.HandleFunc("/reports/summary", reports.Summary).Methods("GET")
	api.HandleFunc("/reports/drilldown", reports.Drilldown).Methods("GET")
	api.HandleFunc("/reports/unpaid", reports.Unpaid).Methods("GET")

	return router
}
