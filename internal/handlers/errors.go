package handlers

import (
	"errors"
	"strings"
	"time"

	"inventory/internal/services"
	"inventory/internal/validation"
	"inventory/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the JSON body returned by the API for every failure.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Errors    []string  `json:"errors,omitempty"`
}

func newErrorResponse(status int, message string, errs []string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Message:   message,
		Errors:    errs,
	}
}

func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(newErrorResponse(status, message, nil))
}

func jsonValidationError(c *fiber.Ctx, errs []validation.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		newErrorResponse(fiber.StatusBadRequest, "Validation failed", validation.Strings(errs)))
}

func renderError(c *fiber.Ctx, status int, message string) error {
	err := c.Status(status).Render("error", fiber.Map{
		"Title":   statusTitle(status),
		"Status":  status,
		"Message": message,
	}, views.Layout)
	if err != nil {
		return c.Status(status).SendString(message)
	}
	return nil
}

func statusTitle(status int) string {
	if title := utils.StatusMessage(status); title != "" {
		return title
	}
	return "Error"
}

// ErrorHandler is the fiber fallback for errors no handler dealt with:
// JSON under /api, the HTML error page everywhere else.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			status = fe.Code
			message = fe.Message
		case errors.Is(err, services.ErrProductNotFound):
			status = fiber.StatusNotFound
			message = err.Error()
		default:
			log.WithError(err).WithField("path", c.Path()).Error("Unhandled request error")
		}

		if strings.HasPrefix(c.Path(), "/api") {
			return jsonError(c, status, message)
		}
		return renderError(c, status, message)
	}
}
