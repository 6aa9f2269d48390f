package httpapi

import (
	"errors"
	"net/http"

	"github.com/dshills/userorders/internal/service"
	"github.com/dshills/userorders/pkg/types"
)

const detailInternal = "internal server error"

// statusFor is the single place where failures become status codes. The
// returned detail is safe to show to clients.
func statusFor(err error) (int, string) {
	var verrs types.ValidationErrors
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity, verrs.Error()
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrConstraintViolation):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, detailInternal
	}
}

// writeFailure maps err onto a response. Unexpected failures are logged
// with the request id; their text never reaches the client.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"request_id", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeError(w, status, detail)
}
