package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"medialabs/transcribe-gateway/utils"
)

// ErrorHandler shapes errors that surface outside a handler into the uniform
// error envelope. A body the transport refuses for size is still oversized
// client input under the submit contract, so it maps to 400 rather than
// fiber's default 413.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
			return utils.RespondWithError(c, fiber.StatusBadRequest,
				"Request body exceeds the maximum upload size. Use an s3_uri reference for larger files.")
		}
		return utils.RespondWithError(c, fiberErr.Code, fiberErr.Message)
	}
	return utils.RespondWithAppError(c, err)
}
