package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shipdesk/internal/http/middleware"
	"shipdesk/internal/service"
	"shipdesk/internal/tms"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "MISSING_FIELDS", "NOT_FOUND", "UPSTREAM_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates service/tms errors into the standard envelope.
// Validation errors are 400, a legitimate missing shipment is 404, and
// everything from the upstream side is a 500 that carries the upstream's own
// message when one exists.
func writeServiceError(c *fiber.Ctx, err error) error {
	var authErr *tms.AuthError
	var upErr *tms.UpstreamError

	switch {
	case errors.Is(err, service.ErrIdentifierRequired),
		errors.Is(err, service.ErrNoteFieldsRequired),
		errors.Is(err, service.ErrAttachFieldsRequired):
		return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", err.Error())
	case errors.Is(err, service.ErrUnknownIDType):
		return writeError(c, fiber.StatusBadRequest, "UNKNOWN_ID_TYPE", err.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "shipment not found")
	case errors.As(err, &authErr):
		return writeError(c, fiber.StatusInternalServerError, "AUTH_ERROR", "authentication with the TMS failed")
	case errors.As(err, &upErr):
		msg := upErr.Message
		if msg == "" {
			msg = "the TMS rejected the request"
		}
		return writeError(c, fiber.StatusInternalServerError, "UPSTREAM_ERROR", msg)
	case errors.Is(err, service.ErrMalformedShipment):
		return writeError(c, fiber.StatusInternalServerError, "UPSTREAM_ERROR", "unexpected response from the TMS")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
