package api

import (
	"net/http"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/common/slogger"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorHandler maps errors onto HTTP responses.
type ErrorHandler struct{}

// NewErrorHandler creates an ErrorHandler.
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// HandleValidationError writes a 400 for a rejected request.
func (h *ErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	slogger.Warn(r.Context(), "Request validation failed", slogger.Field("error", err.Error()))
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "validation_failed",
		Message: err.Error(),
	})
}

// HandleServiceError writes a 500 for an unexpected service failure.
func (h *ErrorHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	slogger.ErrorWithError(r.Context(), err, "Service error", nil)
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
