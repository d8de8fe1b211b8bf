package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// maxRequestBodySize bounds every decoded JSON request body.
const maxRequestBodySize = 1 << 20

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, products, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes a JSON error body of the form {"error": message}.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}

// DecodeJSON decodes the request body into dst.
//
// The body is limited to 1 MiB. Unknown fields are ignored: dst declares the
// only fields the handler will ever read, so extra client fields cannot leak
// into stored records. An empty body is reported as io.EOF.
func DecodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBodySize)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if err == io.EOF {
			return err
		}
		return fmt.Errorf("error decoding JSON body: %w", err)
	}

	return nil
}
