package utils

import (
	"encoding/json"
	"net/http"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes the standard error envelope
func WriteErrorResponse(w http.ResponseWriter, status int, errLabel, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errLabel, Message: message})
}

// WriteAppError maps a service error onto its status code and envelope.
// Unclassified errors are reported as a bare 500.
func WriteAppError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	WriteErrorResponse(w, apperr.HTTPStatus(kind), string(kind), apperr.Message(err))
}
