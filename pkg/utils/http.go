package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

func WriteJSON(w http.ResponseWriter, payload any, code int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(payload)
}

func WriteHTML(w http.ResponseWriter, page string, code int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(page))
}

func DecodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ErrorResponse is the error envelope: status is "fail" for client
// errors and "error" for server errors. Detail is only populated
// outside production.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ValidationErrorResponse contains field-specific validation messages
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func statusWord(code int) string {
	if code >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}

func WriteError(w http.ResponseWriter, message string, code int) error {
	return WriteJSON(w, ErrorResponse{Status: statusWord(code), Message: message}, code)
}

// WriteErrorDetail is WriteError plus the underlying error text, for
// non-production environments.
func WriteErrorDetail(w http.ResponseWriter, message string, detail error, code int) error {
	res := ErrorResponse{Status: statusWord(code), Message: message}
	if detail != nil {
		res.Detail = detail.Error()
	}
	return WriteJSON(w, res, code)
}

func WriteValidationError(w http.ResponseWriter, err error) error {
	res := ValidationErrorResponse{
		Status:  "fail",
		Message: "invalid request",
		Fields:  make(map[string]string),
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, err := range ve {
			field := err.Field()
			res.Fields[field] = err.Tag()
		}
	}

	return WriteJSON(w, res, http.StatusBadRequest)
}
