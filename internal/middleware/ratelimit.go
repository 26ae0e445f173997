package middleware

import (
	"context"
	"net/http"
	"time"

	"markethub/internal/dto"
	"markethub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateCounter — счётчик фиксированного окна; реализуется cache.RedisClient.
type RateCounter interface {
	IncrRate(ctx context.Context, scope, subject string, window time.Duration) (int64, error)
}

// RateLimit ограничивает число запросов в фиксированном окне для заданного scope
// (например "orders", "reviews"). Субъект — user_id, для анонимных — client IP.
// При недоступном Redis запрос пропускается (fail-open).
func RateLimit(counter RateCounter, scope string, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		subject := c.ClientIP()
		if id, ok := service.UserIDFromContext(c.Request.Context()); ok {
			subject = id.String()
		}

		n, err := counter.IncrRate(c.Request.Context(), scope, subject, window)
		if err != nil {
			log.Warn("rate limit check failed", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if n > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewRateLimitedError("too many requests, try again later"))
			return
		}

		c.Next()
	}
}
