package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/kikehil/dental/internal/infra"
	"github.com/kikehil/dental/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity and reports the webhook circuit breaker
// state and the dead-letter depths of the job queues; never exposes
// credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client, webhook *infra.WebhookNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"db":      dbStatus,
			"redis":   redisStatus,
			"webhook": webhook.BreakerState(),
			"dlq":     worker.DLQDepths(ctx, rdb),
		})
	}
}
