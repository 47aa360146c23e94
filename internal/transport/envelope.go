package transport

import (
	"encoding/json"
	"net/http"

	"plantstore-bff/internal/logger"
	"plantstore-bff/internal/order"

	"go.uber.org/zap"
)

// Envelope is the response wrapper every endpoint speaks, mirroring the
// upstream commerce API so clients handle one shape end to end.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  order.Errors `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.L().Error("failed encoding response", zap.Error(err))
	}
}

func RespondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func RespondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// RespondValidation reports field-level draft errors keyed by path.
func RespondValidation(w http.ResponseWriter, errs order.Errors) {
	writeJSON(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}
