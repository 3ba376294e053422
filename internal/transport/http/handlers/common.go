package handlers

import (
	"encoding/json"
	"net/http"

	pgrepo "github.com/mer-dating/backend/internal/repo/postgres"
	httperrors "github.com/mer-dating/backend/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

// writeStoreError distinguishes a transient store failure, which the client
// may retry, from a plain internal error.
func writeStoreError(w http.ResponseWriter, err error) {
	if pgrepo.IsTransient(err) {
		httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{
			Code:    "TEMP_UNAVAILABLE",
			Message: "storage is temporarily unavailable, retry later",
		})
		return
	}
	writeInternal(w, "INTERNAL_ERROR", "internal server error")
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
