package middleware

import (
	"fmt"
	"net/http"
	"ui-market/internal/logger"
	"ui-market/internal/view"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error is a middleware that converts handler errors into user-friendly error pages.
func Error(log logger.Logger, v *view.View) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					renderError(w, r, v, log, http.StatusInternalServerError, "Internal Server Error")
				}
			}()

			if appErr := next(w, r); appErr != nil {
				if appErr.Code >= http.StatusInternalServerError {
					log.Error(appErr.Error, appErr.Message)
				} else {
					log.Debug(fmt.Sprintf("%s: %v", appErr.Message, appErr.Error))
				}
				renderError(w, r, v, log, appErr.Code, appErr.Message)
			}
		})
	}
}

func renderError(w http.ResponseWriter, r *http.Request, v *view.View, log logger.Logger, code int, message string) {
	data := map[string]interface{}{
		"StatusCode": code,
		"StatusText": message,
		"UserInfo":   GetUserInfo(r.Context()),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := v.Render(w, "error.html", data); err != nil {
		log.Error(err, "Failed to render error page")
	}
}
