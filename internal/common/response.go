package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

// ErrorBody represents a consistent error payload returned by the API.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes the provided value to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders an error response using the canonical error shape.
func JSONError(w http.ResponseWriter, status int, code, message string, details any) {
	JSON(w, status, map[string]any{
		"error": ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteError renders err. AppErrors keep their code and status; anything else
// is a 500 without internal details.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		JSONError(w, http.StatusInternalServerError, CodeInternal, "internal error", nil)
		return
	}
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	code := appErr.Code
	if code == "" {
		code = CodeInternal
	}
	message := appErr.Message
	if message == "" {
		message = "internal error"
	}
	details := appErr.Details
	var syntaxErr *json.SyntaxError
	if details == nil && errors.As(appErr.Err, &syntaxErr) {
		details = map[string]any{"offset": syntaxErr.Offset}
	}
	JSONError(w, status, code, message, details)
}

// DecodeJSON decodes a size-limited request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return BadRequest("request body is required", nil)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return BadRequest("request body is required", err)
		}
		return BadRequest(fmt.Sprintf("invalid JSON body: %v", err), err)
	}
	return nil
}
