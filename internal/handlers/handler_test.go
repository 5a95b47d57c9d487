package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/blogspot/internal/models"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"invalid input", models.ErrInvalidInput, http.StatusBadRequest, "Please enter all fields"},
		{"field error", &models.FieldError{Field: "title", Rule: "max", Param: "200"}, http.StatusBadRequest, "Title must be at most 200 characters"},
		{"conflict", models.ErrConflict, http.StatusBadRequest, "User already exists"},
		{"bad credentials", models.ErrUnauthorized, http.StatusBadRequest, "Invalid credentials"},
		{"forbidden", models.ErrForbidden, http.StatusForbidden, "Not authorized to update this post"},
		{"not found", fmt.Errorf("get post: %w", models.ErrNotFound), http.StatusNotFound, "Post not found"},
		{"store error", errors.New("connection refused"), http.StatusInternalServerError, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPut, "/api/posts/1", nil)
			writeError(w, r, "update post", tt.err, "Not authorized to update this post")

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body["message"])
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}
