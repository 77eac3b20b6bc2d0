package middleware

import (
	"errors"
	"strings"
	"time"

	"payroll_service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or assigns a new one, and
// echoes it on the response.
func RequestID(c *fiber.Ctx) error {
	id := c.Get(HeaderRequestID)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}
	c.Locals("request_id", id)
	c.Set(HeaderRequestID, id)
	return c.Next()
}

// Tracing starts a server span per request, continuing any incoming trace,
// and makes it the user context seen by handlers.
func Tracing(c *fiber.Ctx) error {
	carrier := propagation.MapCarrier{}
	c.Request().Header.VisitAll(func(k, v []byte) {
		carrier.Set(strings.ToLower(string(k)), string(v))
	})
	ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)

	ctx, span := otel.Tracer("payroll_service/http").Start(ctx, c.Method()+" "+c.Path())
	defer span.End()
	c.SetUserContext(ctx)

	err := c.Next()
	span.SetAttributes(attribute.Int("http.status_code", responseStatus(c, err)))
	return err
}

// RequestLogger writes one access log line per request.
func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	requestID, _ := c.Locals("request_id").(string)
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", responseStatus(c, err)),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		utils.Logger.Error("Request failed", fields...)
		return err
	}
	utils.Logger.Info("Request", fields...)
	return nil
}

// responseStatus is the status the client will see. An error returned down
// the chain is only turned into a response by the app's ErrorHandler after
// the middleware returns, so it is derived from err here.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
