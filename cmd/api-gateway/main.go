package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/campushq/uni-admin-api/api/swagger"
	"github.com/campushq/uni-admin-api/internal/handler"
	"github.com/campushq/uni-admin-api/internal/models"
	"github.com/campushq/uni-admin-api/internal/router"
	"github.com/campushq/uni-admin-api/internal/service"
	"github.com/campushq/uni-admin-api/internal/store"
	"github.com/campushq/uni-admin-api/pkg/cache"
	"github.com/campushq/uni-admin-api/pkg/config"
	"github.com/campushq/uni-admin-api/pkg/export"
	"github.com/campushq/uni-admin-api/pkg/logger"
	"github.com/campushq/uni-admin-api/pkg/session"
	"github.com/campushq/uni-admin-api/pkg/storage"
)

// @title University Administration API
// @version 1.0.0
// @description Institution, program, enrollment and registration management.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck
	sugar := logr.Sugar()

	st := store.New()
	if cfg.Seed.Enabled {
		if err := st.Seed(context.Background()); err != nil {
			sugar.Fatalw("failed to seed demo data", "error", err)
		}
		sugar.Infow("demo dataset loaded")
	}

	var sessionBackend session.Store
	switch cfg.Session.Backend {
	case "redis":
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			sugar.Fatalw("failed to connect to redis", "error", err)
		}
		defer client.Close() //nolint:errcheck
		sessionBackend = session.NewRedisStore(client)
		sugar.Infow("session backend ready", "backend", "redis")
	default:
		sessionBackend = session.NewMemoryStore()
		sugar.Infow("session backend ready", "backend", "memory")
	}
	sessions := session.NewManager(sessionBackend, cfg.Session.TTL)

	files, err := storage.NewLocalStorage(cfg.Materials.StorageDir)
	if err != nil {
		sugar.Fatalw("failed to init material storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Materials.SignedURLSecret, cfg.Materials.SignedURLTTL)

	authSvc := service.NewAuthService(st, sessions, nil, logr, service.AuthConfig{
		Secret:             cfg.JWT.Secret,
		Issuer:             cfg.JWT.Issuer,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
	})
	orgSvc := service.NewOrgService(st, nil, logr)
	courseSvc := service.NewCourseService(st, nil, logr)
	termSvc := service.NewTermService(st, nil, logr)
	studentSvc := service.NewStudentService(st, nil, logr)
	sectionSvc := service.NewSectionService(st, nil, logr)
	registrationSvc := service.NewRegistrationService(st, nil, logr)
	attendanceSvc := service.NewAttendanceService(st, nil, logr)
	materialSvc := service.NewMaterialService(st, files, signer, nil, logr, cfg.Materials.MaxFileSizeBytes)
	employeeSvc := service.NewEmployeeService(st, nil, logr)
	userSvc := service.NewUserService(st, nil, logr)
	exportSvc := service.NewExportService(st, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	metricsSvc := service.NewMetricsService()

	engine := router.New(router.Deps{
		Config:  cfg,
		Logger:  logr,
		Auth:    authSvc,
		Metrics: metricsSvc,

		AuthHandler:         handler.NewAuthHandler(authSvc, metricsSvc),
		OrgHandler:          handler.NewOrgHandler(orgSvc),
		CourseHandler:       handler.NewCourseHandler(courseSvc),
		TermHandler:         handler.NewTermHandler(termSvc),
		StudentHandler:      handler.NewStudentHandler(studentSvc),
		SectionHandler:      handler.NewSectionHandler(sectionSvc),
		RegistrationHandler: handler.NewRegistrationHandler(registrationSvc),
		AttendanceHandler:   handler.NewAttendanceHandler(attendanceSvc),
		MaterialHandler:     handler.NewMaterialHandler(materialSvc),
		EmployeeHandler:     handler.NewEmployeeHandler(employeeSvc),
		UserHandler:         handler.NewUserHandler(userSvc),
		ExportHandler:       handler.NewExportHandler(exportSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go sampleEntityGauges(st, metricsSvc)

	go func() {
		sugar.Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}

// sampleEntityGauges refreshes the per-entity row gauges every 30s.
func sampleEntityGauges(st *store.Store, m *service.MetricsService) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	ctx := context.Background()
	for {
		m.SetEntityCount("institutions", len(st.ListInstitutions(ctx)))
		m.SetEntityCount("courses", len(st.ListCourses(ctx, models.CourseFilter{})))
		m.SetEntityCount("terms", len(st.ListTerms(ctx, models.TermFilter{})))
		m.SetEntityCount("students", len(st.ListStudents(ctx, models.StudentFilter{})))
		m.SetEntityCount("sections", len(st.ListSections(ctx, models.SectionFilter{})))
		m.SetEntityCount("registrations", len(st.ListRegistrations(ctx, "", "")))
		m.SetEntityCount("users", len(st.ListUsers(ctx, models.UserFilter{})))
		<-ticker.C
	}
}
