package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

// RequestLogger registra cada petición con su request id, estado y duración.
// Debe usarse DESPUÉS de requestid para que el header ya esté presente.
//
// Nivel según el estado:
//   - 5xx → error
//   - 4xx → warn
//   - resto → debug
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler fije el estado antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := l.Debug()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = l.Error()
		case status >= fiber.StatusBadRequest:
			ev = l.Warn()
		}
		ev.Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición atendida")
		return nil
	}
}
