package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/TrendScope/internal/model"
)

// Input length limits for state members.
const (
	MaxDateLen = 128
	MaxNameLen = 64
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateField checks that a text field is one of title, description, tags.
func ValidateField(f string) (model.TextField, string) {
	field := model.TextField(strings.ToLower(strings.TrimSpace(f)))
	if field == "" {
		return "", "field is required"
	}
	if !field.Valid() {
		return "", "field must be one of: title, description, tags"
	}
	return field, ""
}

// ValidateDate trims a date selector and bounds its length. Malformed
// selectors are accepted and filter nothing.
func ValidateDate(d string) (string, string) {
	d = strings.TrimSpace(d)
	if len(d) > MaxDateLen {
		return "", "date must be at most 128 characters"
	}
	return d, ""
}

// ValidateName trims a country or category name and bounds its length.
func ValidateName(kind, name string) (string, string) {
	name = strings.TrimSpace(name)
	if len(name) > MaxNameLen {
		return "", kind + " must be at most 64 characters"
	}
	if strings.ContainsAny(name, "\x00\n\r") {
		return "", kind + " contains invalid characters"
	}
	return name, ""
}

// ValidateRowID parses a non-negative row id.
func ValidateRowID(s string) (int, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "rowId is required"
	}
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, "rowId must be a non-negative integer"
	}
	return id, ""
}
