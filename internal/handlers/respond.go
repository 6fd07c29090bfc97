package handlers

import (
	"fmt"
	"log"

	"storefront/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusForKind maps an error classification to an HTTP status code.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	case apperrors.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError converts a service error into a JSON error response.
// Internal errors are logged with their cause and surfaced as a generic
// message; everything else carries its client-facing message through.
func respondError(c *fiber.Ctx, err error) error {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(statusForKind(kind)).JSON(fiber.Map{
		"error": apperrors.MessageOf(err),
	})
}

// respondValidationErrors renders validator failures as a 400 with a
// per-field detail map.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	details := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			details[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Validation failed",
		"details": details,
	})
}
