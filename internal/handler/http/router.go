package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/config"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	cfg config.AppConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	timeRecordHandler TimeRecordHandler,
	scheduleHandler ScheduleHandler,
	timeBankHandler TimeBankHandler,
	absenceHandler AbsenceHandler,
	financeHandler FinanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timebank"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(httprate.Limit(
				cfg.RateLimit,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					response.TooManyRequests(w)
				}),
			))
		}

		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/time-records", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionRecordCreate)).Post("/", timeRecordHandler.Register)
				r.With(middleware.RequirePermission(user.PermissionRecordViewOwn)).Get("/", timeRecordHandler.List)
				r.With(middleware.RequirePermission(user.PermissionRecordViewOwn)).Get("/{id}", timeRecordHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRecordManage))
					r.Post("/manual", timeRecordHandler.CreateManual)
					r.Delete("/{id}", timeRecordHandler.Delete)
				})
				r.With(middleware.RequirePermission(user.PermissionRecordProcess)).Post("/{id}/process", timeRecordHandler.Process)
			})

			r.Route("/work-schedules", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
					r.Get("/", scheduleHandler.ListWorkSchedules)
					r.Post("/", scheduleHandler.CreateWorkSchedule)
					r.Get("/{id}", scheduleHandler.GetWorkSchedule)
					r.Put("/{id}", scheduleHandler.UpdateWorkSchedule)
					r.Delete("/{id}", scheduleHandler.DeleteWorkSchedule)
					r.Post("/{id}/details", scheduleHandler.CreateWorkScheduleDetail)
					r.Put("/{id}/details/{detailID}", scheduleHandler.UpdateWorkScheduleDetail)
					r.Delete("/{id}/details/{detailID}", scheduleHandler.DeleteWorkScheduleDetail)
				})
			})

			r.Route("/employee-schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListEmployeeSchedules)
				r.Get("/resolve", scheduleHandler.ResolveSchedule)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionScheduleManage))
					r.Post("/", scheduleHandler.AssignSchedule)
					r.Delete("/{id}", scheduleHandler.DeleteEmployeeSchedule)
				})
			})

			r.With(middleware.RequirePermission(user.PermissionTimeBankViewOwn)).Get("/work-hours", timeBankHandler.GetWorkedHours)

			r.Route("/time-bank", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimeBankViewOwn))
					r.Get("/balance", timeBankHandler.GetBalance)
					r.Get("/summary", timeBankHandler.GetSummary)
					r.Get("/entries", timeBankHandler.ListEntries)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimeBankManage))
					r.Post("/entries", timeBankHandler.CreateEntry)
					r.Post("/compensations", timeBankHandler.Compensate)
				})
			})

			r.Route("/absence-requests", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAbsenceCreate))
					r.Get("/", absenceHandler.List)
					r.Post("/", absenceHandler.Create)
					r.Get("/{id}", absenceHandler.Get)
					r.Put("/{id}", absenceHandler.Update)
					r.Delete("/{id}", absenceHandler.Delete)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAbsenceReview))
					r.Post("/{id}/approve", absenceHandler.Approve)
					r.Post("/{id}/reject", absenceHandler.Reject)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionFinanceManage))

				r.Route("/salaries", func(r chi.Router) {
					r.Get("/", financeHandler.ListSalaries)
					r.Post("/", financeHandler.CreateSalary)
					r.Get("/{id}", financeHandler.GetSalary)
					r.Put("/{id}", financeHandler.UpdateSalary)
				})

				r.Route("/financial-transactions", func(r chi.Router) {
					r.Get("/", financeHandler.ListTransactions)
					r.Post("/", financeHandler.CreateTransaction)
					r.Get("/{id}", financeHandler.GetTransaction)
					r.Put("/{id}", financeHandler.UpdateTransaction)
					r.Delete("/{id}", financeHandler.DeleteTransaction)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Use(middleware.RequirePermission(user.PermissionAuditView))
				r.Get("/audit-logs", financeHandler.ListAuditLogs)
			})
		})
	})
	return r
}
