package server

import (
	"context"
	"net/http"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/logger"
	"gymdesk/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

// alertQueue is implemented by notifiers with a backing service to check.
type alertQueue interface {
	Ping(ctx context.Context) error
	QueueLength(ctx context.Context) int64
}

// Health reports 503 when the database is unreachable. An unreachable alert
// queue only marks the status degraded.
func Health(db pinger, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		resp := api.HealthResponse{Status: "ok", Database: "ok"}

		if err := db.PingContext(ctx); err != nil {
			logger.Error("health check: database unreachable", "error", err)
			resp.Status = "unavailable"
			resp.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}

		if q, ok := notifier.(alertQueue); ok {
			resp.Alerts = "ok"
			if err := q.Ping(ctx); err != nil {
				logger.Error("health check: alert queue unreachable", "error", err)
				resp.Status = "degraded"
				resp.Alerts = "unreachable"
			} else {
				resp.QueuedAlerts = q.QueueLength(ctx)
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
