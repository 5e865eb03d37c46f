package handler

import (
	"encoding/json"
	"net/http"

	"coursecraft/internal/migration"
	"coursecraft/internal/registry"
	"coursecraft/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses: malformed
// input is the caller's fault, a missing id is 404, everything else
// (storage failures, migration gaps) is server-side.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case registry.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case store.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case migration.IsMigration(err):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// requestAuthor identifies the acting user for audit metadata. There is
// no authentication layer; the author travels as a plain header.
func requestAuthor(r *http.Request) string {
	if author := r.Header.Get("X-Author"); author != "" {
		return author
	}
	return "anonymous"
}
