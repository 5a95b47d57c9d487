package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vaughan-dsouza/blogspot/internal/models"
)

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"message": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// DecodeJSON parses the JSON body into v. On failure it writes a 400 and
// returns an error wrapping models.ErrInvalidInput.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		JSONError(w, http.StatusBadRequest, "Please enter all fields")
		return models.ErrInvalidInput
	}

	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return errors.Join(models.ErrInvalidInput, err)
	}

	return nil
}
