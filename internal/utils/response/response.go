// Package response writes the JSON envelope shared by every API route:
// {"status": "success"|"error", "message": ..., ...}. Domain failures are
// reported with HTTP 200 and a machine-readable "code".
package response

import (
	"errors"

	apperrors "riskledger/internal/errors"

	"github.com/gofiber/fiber/v2"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	CodeInternal = "INTERNAL_ERROR"
)

var messages = map[string]string{
	apperrors.CodeDuplicateUsername:  "Username already exists.",
	apperrors.CodeInvalidCredentials: "Invalid credentials.",
	apperrors.CodeStoreUnavailable:   "Service temporarily unavailable.",
}

// Success writes a success envelope with extra top-level fields merged in.
func Success(c *fiber.Ctx, message string, fields fiber.Map) error {
	body := fiber.Map{
		"status":  StatusSuccess,
		"message": message,
	}
	for k, v := range fields {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// Error writes an error envelope for err. Errors that are not domain errors
// are reported as 500 without leaking their text.
func Error(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  StatusError,
			"message": "Internal server error.",
			"code":    CodeInternal,
		})
	}

	body := fiber.Map{
		"status":  StatusError,
		"message": message(de),
		"code":    de.Code,
	}
	if de.Field != "" {
		body["field"] = de.Field
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// ValidationError reports a malformed request field.
func ValidationError(c *fiber.Ctx, field, message string) error {
	return Error(c, apperrors.NewValidationError(field, message))
}

func message(de *apperrors.DomainError) string {
	if de.Code == apperrors.CodeValidation {
		if de.Field != "" {
			return de.Field + " " + de.Message
		}
		return "Missing required fields."
	}
	if msg, ok := messages[de.Code]; ok {
		return msg
	}
	return de.Message
}
