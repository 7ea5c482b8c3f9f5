package utils

import (
	"encoding/json"
	"net/http"

	"tavolo/apperr"
)

type M map[string]any

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// Error writes a classified error using the taxonomy's status and message.
func Error(w http.ResponseWriter, err error) {
	RespondWithError(w, apperr.Status(err), apperr.Message(err))
}
