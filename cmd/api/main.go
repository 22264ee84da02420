package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/fisiotrack/ward-api/internal/config"
	"github.com/fisiotrack/ward-api/internal/email"
	adminHandler "github.com/fisiotrack/ward-api/internal/handler/admin"
	attendanceHandler "github.com/fisiotrack/ward-api/internal/handler/attendance"
	authHandler "github.com/fisiotrack/ward-api/internal/handler/auth"
	noteHandler "github.com/fisiotrack/ward-api/internal/handler/note"
	patientHandler "github.com/fisiotrack/ward-api/internal/handler/patient"
	"github.com/fisiotrack/ward-api/internal/middleware"
	"github.com/fisiotrack/ward-api/internal/repository/postgres"
	"github.com/fisiotrack/ward-api/internal/router"
	attendanceService "github.com/fisiotrack/ward-api/internal/service/attendance"
	authService "github.com/fisiotrack/ward-api/internal/service/auth"
	noteService "github.com/fisiotrack/ward-api/internal/service/note"
	patientService "github.com/fisiotrack/ward-api/internal/service/patient"
	userService "github.com/fisiotrack/ward-api/internal/service/user"
	"github.com/fisiotrack/ward-api/pkg/auth"
	"github.com/fisiotrack/ward-api/pkg/logger"
	"github.com/fisiotrack/ward-api/pkg/metrics"
	"github.com/fisiotrack/ward-api/pkg/security"
	"github.com/fisiotrack/ward-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{Level: cfg.App.LogLevel, Pretty: true})

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("invalid timezone")
	}

	if err := validator.Setup(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	noteRepo := postgres.NewNoteRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)

	// Shared primitives
	hasher := security.NewBcryptHasher(cfg.App.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	emailSvc := email.NewService(cfg.SMTP)

	// Services
	authenticationSvc := authService.NewService(userRepo, hasher, tokens)
	patientSvc := patientService.NewService(patientRepo, attendanceRepo)
	attendanceSvc := attendanceService.NewService(attendanceRepo, patientRepo)
	noteSvc := noteService.NewService(noteRepo, patientRepo, loc)
	userSvc := userService.NewService(userRepo, hasher, emailSvc)

	// Middleware and handlers
	authMW := middleware.NewAuthMiddleware(tokens, userRepo, cfg.JWT.CookieName)

	cookie := authHandler.CookieConfig{
		Name:   cfg.JWT.CookieName,
		MaxAge: cfg.JWT.ExpiryHours * 3600,
		Secure: cfg.JWT.CookieSecure,
	}
	authH := authHandler.NewHandler(authenticationSvc, cookie, authMW)
	patH := patientHandler.NewHandler(patientSvc, loc)
	noteH := noteHandler.NewHandler(noteSvc)
	attH := attendanceHandler.NewHandler(attendanceSvc)
	adminH := adminHandler.NewHandler(userSvc, authMW)

	m := metrics.New("ward_api")

	r := router.NewRouter(authMW, authH, patH, noteH, attH, adminH, db, m, router.Config{
		LoginRateLimit: rate.Limit(cfg.App.LoginRateLimit),
		LoginRateBurst: cfg.App.LoginRateBurst,
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
