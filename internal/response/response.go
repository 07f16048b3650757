package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/spidevmax/craterra/internal/errors"
)

// Envelope is the standard response shape for every endpoint, including
// errors and unmatched routes.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON writes an envelope with the given status code.
func JSON(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

// OK writes a 200 envelope.
func OK(c echo.Context, message string, data interface{}) error {
	return JSON(c, http.StatusOK, message, data)
}

// Created writes a 201 envelope.
func Created(c echo.Context, message string, data interface{}) error {
	return JSON(c, http.StatusCreated, message, data)
}

// HTTPErrorHandler is the process-wide error responder. Handlers and
// middleware propagate typed errors; this is the only place they become
// wire responses.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	httpErr := resolve(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	if c.Request().Method == http.MethodHead {
		if writeErr := c.NoContent(httpErr.StatusCode); writeErr != nil {
			c.Logger().Error(writeErr)
		}
		return
	}

	if writeErr := c.JSON(httpErr.StatusCode, Envelope{
		Success: false,
		Message: httpErr.Message,
	}); writeErr != nil {
		c.Logger().Error(writeErr)
	}
}

func resolve(err error) *apperrors.HTTPError {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message, ok := echoErr.Message.(string)
		if !ok {
			message = fmt.Sprintf("%v", echoErr.Message)
		}
		return apperrors.NewHTTPError(echoErr.Code, message, "HTTP_ERROR")
	}
	return apperrors.MapErrorToHTTP(err)
}
