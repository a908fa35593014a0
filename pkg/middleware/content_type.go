package middleware

import (
	"net/http"
	"strings"

	apperrors "booker/pkg/errors"
	httputil "booker/pkg/http"
	"booker/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const jsonContentType = "application/json"

// RequireJSON guards a single body-carrying route. A request whose
// Content-Type is not JSON is answered with a 400 envelope under
// rejectMessage, the same bucket the route uses for malformed bodies.
func RequireJSON(log *logger.Logger, rejectMessage string) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			if contentType := extractContentType(r.Header.Get("Content-Type")); contentType != jsonContentType {
				rejectInvalidContentType(w, log, r, contentType, rejectMessage)
				return
			}
			next(w, r, ps)
		}
	}
}

func extractContentType(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.Split(header, ";")
	return strings.ToLower(strings.TrimSpace(parts[0]))
}

func rejectInvalidContentType(w http.ResponseWriter, log *logger.Logger, r *http.Request, contentType, message string) {
	log.Warn("Invalid Content-Type header",
		"request_id", RequestID(r.Context()),
		"content_type", contentType,
		"path", r.URL.Path,
		"method", r.Method,
	)

	_ = httputil.WriteError(w, message, apperrors.InvalidInput("Content-Type must be application/json", nil))
}
