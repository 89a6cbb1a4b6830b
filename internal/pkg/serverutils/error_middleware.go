package serverutils

import (
	"errors"
	"fmt"
	"runtime/debug"

	"note-to-self/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Error("HTTP", "panic recovered", map[string]interface{}{
					"panic": fmt.Sprintf("%v", r),
					"stack": string(debug.Stack()),
					"path":  c.Path(),
				})
				_ = c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
					fiber.StatusInternalServerError, "Internal Server Error",
				))
			}
		}()

		err := c.Next()
		if err == nil {
			return nil
		}
		return writeError(c, log, err)
	}
}

func writeError(c *fiber.Ctx, log logger.ILogger, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse(ve.ToErrorDetails()))
	}

	switch {
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(RedirectErrorResponse(
			fiber.StatusForbidden, ErrForbidden.Error(), SelectionRoute,
		))
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
	case errors.Is(err, ErrAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse(fiber.StatusConflict, err.Error()))
	case errors.Is(err, ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, err.Error()))
	case errors.Is(err, ErrBadRequest):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
	case errors.Is(err, ErrStoreUnavailable):
		c.Set(fiber.HeaderRetryAfter, "1")
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(
			fiber.StatusServiceUnavailable, ErrStoreUnavailable.Error(),
		))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	// driver details stay in the log, not in the response
	log.Error("HTTP", "request failed", map[string]interface{}{
		"error":  err.Error(),
		"path":   c.Path(),
		"method": c.Method(),
	})
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(
		fiber.StatusInternalServerError, ErrStore.Error(),
	))
}
