package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"medialabs/transcribe-gateway/internal/apperrors"
)

// RespondWithError sends a JSON error response.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// RespondWithAppError translates an error into the uniform error envelope.
// Only the caller-safe message is serialized; wrapped causes stay in the logs.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	appErr := apperrors.FromError(err)
	return c.Status(appErr.HTTPStatus).JSON(fiber.Map{
		"status":  "error",
		"error":   string(appErr.Kind),
		"message": appErr.Message,
	})
}

// RespondWithJSON sends a JSON response with the given status code.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// FormatValidationErrors formats validation errors from validator/v10.
func FormatValidationErrors(err error) []string {
	var errors []string
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			element := fmt.Sprintf("Field '%s' failed on the '%s' tag", err.Field(), err.Tag())
			if err.Param() != "" {
				element = fmt.Sprintf("%s (value: %s)", element, err.Param())
			}
			errors = append(errors, element)
		}
	}
	return errors
}
