package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	pkgerrors "socialgraph/pkg/errors"

	"go.uber.org/zap"
)

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text + "\n"))
}

// respondError maps err onto its HTTP status. Internal failures are not described to the client.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := pkgerrors.HTTPStatus(err)
	body := errorResponse{
		Error:   string(pkgerrors.ErrorTypeInternal),
		Message: "internal server error",
	}

	appErr := pkgerrors.GetAppError(err)
	if appErr != nil && (status < http.StatusInternalServerError || isUpstream(err)) {
		body = errorResponse{
			Error:   string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Int("status", status), zap.Error(err))
	}
	respondJSON(w, status, body)
}

// isUpstream reports errors whose message is safe to show: they describe the graph or
// the people source rather than a bug
func isUpstream(err error) bool {
	return pkgerrors.IsUnavailable(err) ||
		pkgerrors.IsType(err, pkgerrors.ErrorTypeNetwork) ||
		pkgerrors.IsType(err, pkgerrors.ErrorTypeExternal)
}

// wantsJSON reports whether the client asked for the structured form of a text endpoint
func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
