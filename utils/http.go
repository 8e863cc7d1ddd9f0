package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope for every error the API returns:
// {"error": {"message": "...", ...details}}
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error message plus any structured details. Details
// are flattened next to the message when encoded.
type ErrorBody struct {
	Message string
	Details map[string]interface{}
}

// MarshalJSON flattens Details alongside message. A "message" key in Details
// never overrides Message.
func (b ErrorBody) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(b.Details)+1)
	for k, v := range b.Details {
		out[k] = v
	}
	out["message"] = b.Message
	return json.Marshal(out)
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response with data as the body
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteError writes an error envelope with the given status
func WriteError(w http.ResponseWriter, status int, message string, details map[string]interface{}) error {
	return WriteJSON(w, status, ErrorResponse{
		Error: ErrorBody{Message: message, Details: details},
	})
}

// WriteUnauthorized writes a 401 Unauthorized response
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Authentication required"
	}
	return WriteError(w, http.StatusUnauthorized, message, nil)
}

// WriteForbidden writes a 403 Forbidden response
func WriteForbidden(w http.ResponseWriter, message string, details map[string]interface{}) error {
	if message == "" {
		message = "Access forbidden"
	}
	return WriteError(w, http.StatusForbidden, message, details)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Route not found"
	}
	return WriteError(w, http.StatusNotFound, message, nil)
}

// WriteInternalServerError writes a 500 Internal Server Error response.
// stack is included only when non-empty.
func WriteInternalServerError(w http.ResponseWriter, message string, stack string) error {
	if message == "" {
		message = "Internal Server Error"
	}
	var details map[string]interface{}
	if stack != "" {
		details = map[string]interface{}{"stack": stack}
	}
	return WriteError(w, http.StatusInternalServerError, message, details)
}
