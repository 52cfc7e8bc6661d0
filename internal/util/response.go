package util

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/fadilmartias/cv-reviewer/internal/config"
	"github.com/fadilmartias/cv-reviewer/internal/response"
	"github.com/gofiber/fiber/v2"
)

// Envelope is the body of every JSON API answer.
type Envelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
	Errors     map[string]string    `json:"errors,omitempty"`
	Debug      *DebugInfo           `json:"debug,omitempty"`
}

// DebugInfo is only attached outside production.
type DebugInfo struct {
	Cause string `json:"cause,omitempty"`
	Trace string `json:"trace,omitempty"`
}

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type ErrorResponseFormat struct {
	Code    int
	Message string
}

// FormError reports request fields that failed validation, keyed by field name.
type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	if len(fields) == 0 {
		return fmt.Sprintf("form error: %s", e.Message)
	}
	return fmt.Sprintf("form error: %s (%s)", e.Message, strings.Join(fields, ", "))
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(Envelope{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	})
}

// ErrorResponse writes a failure envelope. A *FormError cause answers 400 with its
// field errors unless params set a code. The cause and, for 5xx, a stack trace are
// exposed only outside production.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, cause error) error {
	body := Envelope{Message: params.Message}
	code := params.Code

	var formErr *FormError
	if errors.As(cause, &formErr) {
		body.Errors = formErr.Errors
		if body.Message == "" {
			body.Message = formErr.Message
		}
		if code == 0 {
			code = fiber.StatusBadRequest
		}
	}
	if code == 0 {
		code = fiber.StatusInternalServerError
	}

	if cause != nil && !config.LoadAppConfig().IsProduction() {
		body.Debug = &DebugInfo{Cause: cause.Error()}
		if code >= fiber.StatusInternalServerError {
			body.Debug.Trace = string(debug.Stack())
		}
	}
	return c.Status(code).JSON(body)
}
