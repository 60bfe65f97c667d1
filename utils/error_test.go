package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsKind(t *testing.T) {
	err := NewConflictError("slot already booked")
	if !IsKind(err, ErrKindConflict) {
		t.Error("conflict error should match its own kind")
	}
	if IsKind(err, ErrKindNotFound) {
		t.Error("conflict error should not match another kind")
	}
	if IsKind(errors.New("plain"), ErrKindConflict) {
		t.Error("plain errors carry no kind")
	}
	wrapped := fmt.Errorf("outer: %w", NewValidationError("bad input"))
	if !IsKind(wrapped, ErrKindValidation) {
		t.Error("IsKind should see through wrapping")
	}
}

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err        error
		wantStatus int
		wantKind   string
	}{
		{NewValidationError("bad"), http.StatusBadRequest, ErrKindValidation},
		{NewNotFoundError("missing"), http.StatusNotFound, ErrKindNotFound},
		{NewConflictError("taken"), http.StatusConflict, ErrKindConflict},
		{NewUnauthorizedError("nope"), http.StatusUnauthorized, ErrKindUnauthorized},
		{errors.New("database exploded"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		RespondError(c, tc.err)

		if w.Code != tc.wantStatus {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.wantStatus)
		}
		var body ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: invalid JSON body: %v", tc.err, err)
		}
		if body.Error != tc.wantKind {
			t.Errorf("%v: error kind = %q, want %q", tc.err, body.Error, tc.wantKind)
		}
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, errors.New("dial tcp 10.0.0.5:27017: connection refused"))
	if got := w.Body.String(); strings.Contains(got, "10.0.0.5") || strings.Contains(got, "27017") {
		t.Errorf("internal error detail leaked to client: %s", got)
	}
}
