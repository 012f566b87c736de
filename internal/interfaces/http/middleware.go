package http

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
)

// RequestLogger asigna un request ID, ata un logger al contexto de la petición y registra
// método, ruta, estado y latencia al terminar.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, reqID)

		logger := log.Logger.With().Str("request_id", reqID).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			// el ErrorHandler escribe la respuesta; aquí solo se necesita el estado final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = zerolog.Ctx(c.UserContext()).Error()
		case status >= 400:
			ev = zerolog.Ctx(c.UserContext()).Warn()
		default:
			ev = zerolog.Ctx(c.UserContext()).Info()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}

// requestObserver lo implementa *metrics.Metrics.
type requestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// MetricsMiddleware registra cada petición etiquetada con la ruta registrada (no la URL).
func MetricsMiddleware(m requestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}

// RateLimiter contador de ventana fija (Redis o memoria).
type RateLimiter interface {
	Allow(ctx context.Context, scope string) (bool, error)
}

// LoginRateLimit limita los intentos de login por IP y usuario. Si el limitador falla se deja pasar.
func LoginRateLimit(limiter RateLimiter, onThrottle func()) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		var body struct {
			Username string `json:"username"`
		}
		_ = json.Unmarshal(c.Body(), &body)
		scope := "login:" + c.IP() + ":" + body.Username

		ok, err := limiter.Allow(c.UserContext(), scope)
		if err != nil {
			zerolog.Ctx(c.UserContext()).Warn().Err(err).Msg("rate limit no disponible")
			return c.Next()
		}
		if !ok {
			if onThrottle != nil {
				onThrottle()
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "demasiados intentos de inicio de sesión, intente en un minuto",
			})
		}
		return c.Next()
	}
}
