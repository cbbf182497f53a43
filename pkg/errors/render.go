package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Response is the JSON body of every error reply
type Response struct {
	Error string `json:"error"`
}

// Render writes err as {"error": message} with the status mapped from its code.
// Errors without a code are logged and reported as an internal error.
func Render(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := As(err)
	if !ok {
		e = InternalWrap(err)
	}

	if e.Code == ErrCodeInternal || e.HTTPStatusCode() >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "code", e.Code, "error", err)
	} else {
		slog.WarnContext(r.Context(), "Request rejected", "path", r.URL.Path, "code", e.Code, "message", e.Message)
	}

	render.Status(r, e.HTTPStatusCode())
	render.JSON(w, r, Response{Error: e.Message})
}
