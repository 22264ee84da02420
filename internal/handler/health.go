package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/fisiotrack/ward-api/pkg/metrics"
)

// Health reports process and database liveness.
func Health(db *sqlx.DB, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		err := db.PingContext(c.Request.Context())
		m.DatabaseLatency.WithLabelValues("ping").Observe(time.Since(start).Seconds())

		if err != nil {
			m.DatabaseOperations.WithLabelValues("ping", "error").Inc()
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}

		m.DatabaseOperations.WithLabelValues("ping", "success").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
