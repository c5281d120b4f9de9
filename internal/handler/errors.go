package handler

import (
	"errors"
	"net/http"
	"ui-market/internal/middleware"
	"ui-market/internal/service"
)

// serviceError maps a service error onto the status the visitor sees.
func serviceError(err error, message string) *middleware.AppError {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return &middleware.AppError{Error: err, Message: "Not Found", Code: http.StatusNotFound}
	case service.IsDataSourceError(err):
		return &middleware.AppError{Error: err, Message: "The catalog is temporarily unavailable", Code: http.StatusInternalServerError}
	default:
		return &middleware.AppError{Error: err, Message: message, Code: http.StatusInternalServerError}
	}
}

func renderError(err error, page string) *middleware.AppError {
	return &middleware.AppError{Error: err, Message: "Failed to render " + page, Code: http.StatusInternalServerError}
}
