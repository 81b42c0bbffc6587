package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"yard/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const internalErrorMessage = "internal server error"

// errorHandler renders every error as {code, message}. Details of 5xx errors only reach the log.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := statusOf(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, errorResponse{Code: status, Message: message})
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}

// statusOf picks the most severe kind when err joins several: integrity, then forbidden,
// not found, conflict and validation last.
func statusOf(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, internalErrorMessage
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	case errors.Is(err, errs.ErrIntegrity):
		return http.StatusInternalServerError, internalErrorMessage
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, err.Error()
	case errs.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
