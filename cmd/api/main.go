package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/timebank-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timebank-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/postgresql"
	absenceService "github.com/cmlabs-hris/timebank-backend-go/internal/service/absence"
	auditService "github.com/cmlabs-hris/timebank-backend-go/internal/service/audit"
	serviceAuth "github.com/cmlabs-hris/timebank-backend-go/internal/service/auth"
	financeService "github.com/cmlabs-hris/timebank-backend-go/internal/service/finance"
	salaryService "github.com/cmlabs-hris/timebank-backend-go/internal/service/salary"
	scheduleService "github.com/cmlabs-hris/timebank-backend-go/internal/service/schedule"
	timeBankService "github.com/cmlabs-hris/timebank-backend-go/internal/service/timebank"
	timeRecordService "github.com/cmlabs-hris/timebank-backend-go/internal/service/timerecord"
	workHoursService "github.com/cmlabs-hris/timebank-backend-go/internal/service/workhours"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.App))

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(context.Background()); err != nil {
			slog.Error("Error applying migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations applied")
	}

	loc := cfg.Location()

	userRepo := postgresql.NewUserRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	workScheduleDetailRepo := postgresql.NewWorkScheduleDetailRepository(db)
	employeeScheduleRepo := postgresql.NewEmployeeScheduleRepository(db)
	timeRecordRepo := postgresql.NewTimeRecordRepository(db)
	timeBankRepo := postgresql.NewTimeBankRepository(db)
	absenceRequestRepo := postgresql.NewAbsenceRequestRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	transactionRepo := postgresql.NewFinancialTransactionRepository(db)
	auditLogRepo := postgresql.NewAuditLogRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	scheduleSvc := scheduleService.NewScheduleService(
		db,
		workScheduleRepo,
		workScheduleDetailRepo,
		employeeScheduleRepo,
		loc,
	)
	timeRecordSvc := timeRecordService.NewTimeRecordService(timeRecordRepo, scheduleSvc, loc)
	workHoursSvc := workHoursService.NewWorkHoursService(timeRecordRepo, scheduleSvc, loc)
	timeBankSvc := timeBankService.NewTimeBankService(
		db,
		timeBankRepo,
		timeRecordRepo,
		scheduleSvc,
		loc,
		cfg.TimeBank.OvertimeExpirationDays,
	)
	absenceSvc := absenceService.NewAbsenceService(db, absenceRequestRepo, scheduleSvc, timeBankSvc)
	salarySvc := salaryService.NewSalaryService(db, salaryRepo, auditLogRepo)
	financeSvc := financeService.NewFinanceService(db, transactionRepo, auditLogRepo)
	auditSvc := auditService.NewAuditService(auditLogRepo)

	authHandler := appHTTP.NewAuthHandler(authService)
	timeRecordHandler := appHTTP.NewTimeRecordHandler(timeRecordSvc, timeBankSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	timeBankHandler := appHTTP.NewTimeBankHandler(timeBankSvc, workHoursSvc)
	absenceHandler := appHTTP.NewAbsenceHandler(absenceSvc)
	financeHandler := appHTTP.NewFinanceHandler(salarySvc, financeSvc, auditSvc)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		authHandler,
		timeRecordHandler,
		scheduleHandler,
		timeBankHandler,
		absenceHandler,
		financeHandler,
	)

	scheduler := cron.NewScheduler()
	timeBankJobs := cron.NewTimeBankJobs(timeBankSvc, cfg.TimeBank.ProcessInterval, cfg.TimeBank.ProcessBatchSize)
	timeBankJobs.RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(app.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if app.Env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
