package httpapi

import (
	"encoding/json"
	"net/http"
)

// GenericErrorMessage is what clients see for any unexpected failure.
// Internal detail stays in the server logs.
const GenericErrorMessage = "Something went wrong, please try again later."

// DataEnvelope wraps successful read responses.
type DataEnvelope struct {
	Data any `json:"data"`
}

// ErrorEnvelope standardizes JSON error responses.
type ErrorEnvelope struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, status int, data any) error {
	return WriteJSON(w, status, &DataEnvelope{Data: data})
}

func WriteError(w http.ResponseWriter, status int, code, message string) error {
	return WriteJSON(w, status, &ErrorEnvelope{Code: code, Error: message})
}

func WriteValidationError(w http.ResponseWriter, fields map[string]string) error {
	return WriteJSON(w, http.StatusUnprocessableEntity, &ErrorEnvelope{
		Code:   "VALIDATION",
		Error:  "validation failed",
		Fields: fields,
	})
}

// WriteInternalError hides the underlying error behind a generic message.
func WriteInternalError(w http.ResponseWriter) error {
	return WriteError(w, http.StatusInternalServerError, "INTERNAL", GenericErrorMessage)
}
