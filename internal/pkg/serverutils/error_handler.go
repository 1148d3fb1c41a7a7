package serverutils

import (
	"errors"

	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/pkg/errs"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps handler errors to the JSON error shape. Used as fiber.Config.ErrorHandler.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		var validationErr *errs.ValidationError
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.As(err, &validationErr):
			code = fiber.StatusBadRequest
			message = validationErr.Error()
		case errors.Is(err, errs.ErrValidation):
			code = fiber.StatusBadRequest
			message = err.Error()
		case errors.Is(err, errs.ErrNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, errs.ErrUpstream):
			code = fiber.StatusBadGateway
			message = "Upstream service unavailable"
		}

		if code >= fiber.StatusInternalServerError && log != nil {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"error":  err.Error(),
				"path":   ctx.Path(),
				"method": ctx.Method(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
