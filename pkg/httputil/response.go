package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/errors"
	"github.com/dimitrisnimas/B2B-WooCommerce-Inventory-Viewer/pkg/logger"
)

// ErrorBody is the bare JSON error object this API returns. The inventory
// endpoint predates any data/error envelope convention, so errors are
// top-level objects, exactly what the live viewer frontend parses.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a bare error object based on the error type. It handles
// AppError and the sentinel errors, and logs internal server errors through
// the request-scoped logger when the RequestLogger middleware is mounted.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status == http.StatusInternalServerError {
			logInternal(l, r, err)
		}
		WriteJSON(w, appErr.Status, ErrorBody{Code: appErr.Code, Message: appErr.Message})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "internal_error"
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		code = "not_found"
		message = "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		code = "invalid_input"
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		code = "rest_forbidden"
		message = "Unauthorized"
	case errors.Is(err, apperrors.ErrServiceUnavail):
		code = "backend_unavailable"
		message = "backend is not available"
	}

	if status == http.StatusInternalServerError {
		logInternal(l, r, err)
	}

	WriteJSON(w, status, ErrorBody{Code: code, Message: message})
}

func logInternal(l *slog.Logger, r *http.Request, err error) {
	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}
