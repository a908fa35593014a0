package http

import (
	"encoding/json"
	"net/http"

	apperrors "booker/pkg/errors"
)

// Envelope is the single response shape of the API. Status always mirrors
// the HTTP status code written with it.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteEnvelope(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(w, statusCode, Envelope{
		Status:  statusCode,
		Message: message,
		Data:    data,
	})
}

// WriteError reports err under message, placing the underlying error text in data.
func WriteError(w http.ResponseWriter, message string, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteEnvelope(w, appErr.StatusCode(), message, appErr.Description())
}

func WriteSuccess(w http.ResponseWriter, message string, data any) error {
	return WriteEnvelope(w, http.StatusOK, message, data)
}

func WriteCreated(w http.ResponseWriter, message string, data any) error {
	return WriteEnvelope(w, http.StatusCreated, message, data)
}
