package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"innovatehub-platform/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	body := map[string]string{"error": msg}
	if len(details) > 0 && details[0] != "" {
		body["details"] = details[0]
	}
	writeJSON(w, status, body)
}

// writeToolError maps every failure of a tool endpoint to the uniform
// 500 {"error": message} envelope. Vendor status codes travel inside the
// message, never as this service's own status code.
func writeToolError(w http.ResponseWriter, err error) {
	var vendorErr *domain.VendorError
	switch {
	case errors.Is(err, domain.ErrCredentialMissing):
		writeError(w, http.StatusInternalServerError, domain.ErrCredentialMissing.Error())
	case errors.Is(err, domain.ErrPollDeadline):
		writeError(w, http.StatusInternalServerError, "job timed out", err.Error())
	case errors.Is(err, domain.ErrBusy):
		writeError(w, http.StatusInternalServerError, domain.ErrBusy.Error())
	case errors.As(err, &vendorErr):
		writeError(w, http.StatusInternalServerError, "vendor error", vendorErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
