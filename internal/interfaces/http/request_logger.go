package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/marketplace-bot/pkg/logger"
)

const (
	localLogger     = "logger"
	headerRequestID = "X-Request-ID"
)

// RequestLogger registra cada petición (método, ruta, status, duración) con un request_id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(headerRequestID, reqID)
		reqLog := log.With("request_id", reqID)
		c.Locals(localLogger, reqLog)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("http")
		return err
	}
}

func requestLogger(c *fiber.Ctx) *logger.Logger {
	l, _ := c.Locals(localLogger).(*logger.Logger)
	return l
}
