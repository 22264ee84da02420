package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/fisiotrack/ward-api/internal/handler"
	adminHandler "github.com/fisiotrack/ward-api/internal/handler/admin"
	attendanceHandler "github.com/fisiotrack/ward-api/internal/handler/attendance"
	authHandler "github.com/fisiotrack/ward-api/internal/handler/auth"
	noteHandler "github.com/fisiotrack/ward-api/internal/handler/note"
	patientHandler "github.com/fisiotrack/ward-api/internal/handler/patient"
	"github.com/fisiotrack/ward-api/internal/middleware"
	"github.com/fisiotrack/ward-api/pkg/metrics"
)

type Config struct {
	LoginRateLimit rate.Limit
	LoginRateBurst int
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	authH   *authHandler.Handler
	patH    *patientHandler.Handler
	noteH   *noteHandler.Handler
	attH    *attendanceHandler.Handler
	adminH  *adminHandler.Handler
	db      *sqlx.DB
	metrics *metrics.Metrics
	config  Config
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	patH *patientHandler.Handler,
	noteH *noteHandler.Handler,
	attH *attendanceHandler.Handler,
	adminH *adminHandler.Handler,
	db *sqlx.DB,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:  engine,
		auth:    auth,
		authH:   authH,
		patH:    patH,
		noteH:   noteH,
		attH:    attH,
		adminH:  adminH,
		db:      db,
		metrics: m,
		config:  config,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	r.engine.GET("/healthz", handler.Health(r.db, r.metrics))
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	loginLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  r.config.LoginRateLimit,
		Burst: r.config.LoginRateBurst,
	})
	r.authH.RegisterPublicRoutes(api, loginLimiter.RateLimit())

	// Change-password and logout stay reachable while a password change is
	// pending; everything else sits behind the force gate.
	authed := api.Group("", r.auth.Authenticate())
	r.authH.RegisterRoutes(authed)

	guarded := authed.Group("", r.auth.ForcePasswordChange())
	r.patH.RegisterRoutes(guarded)
	r.noteH.RegisterRoutes(guarded)
	r.attH.RegisterRoutes(guarded)

	admin := guarded.Group("/admin", r.auth.RequireAdmin())
	r.adminH.RegisterRoutes(admin)
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		}
	}
}
