package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/coursemart/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// CustomErrorResponse sends a classified error, including field level validation detail
func CustomErrorResponse(c *fiber.Ctx, ce *types.CustomError) error {
	return c.Status(ce.Code).JSON(ErrorResponseStruct{
		Status:    ce.Code,
		Message:   ce.Message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      ce.Type,
		Fields:    ce.Fields,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "not_found")
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Ok        bool              `json:"ok"`
	Timestamp string            `json:"timestamp"`
	URL       string            `json:"url"`
	Type      string            `json:"type,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// PlayResponseStruct defines the schema for a successful play check
type PlayResponseStruct struct {
	CourseID    string `json:"courseId"`
	Chapter     int    `json:"chapter"`
	Topic       int    `json:"topic"`
	VideoURL    string `json:"videoUrl"`
	FreePreview bool   `json:"freePreview"`
}
