package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"warsztatplus/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newErrorTestContext(logs *bytes.Buffer) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	if logs != nil {
		e.Logger.SetOutput(logs)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleServiceErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrValidation, http.StatusBadRequest},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrInvalidState, http.StatusConflict},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		c, rec := newErrorTestContext(nil)
		err := handleServiceError(c, fmt.Errorf("%w: details", tc.err), "workshop")
		assert.NoError(t, err)
		assert.Equal(t, tc.status, rec.Code, "status for %v", tc.err)
	}
}

func TestHandleServiceErrorLogsAndMasksUnexpectedFailures(t *testing.T) {
	var logs bytes.Buffer
	c, rec := newErrorTestContext(&logs)

	err := handleServiceError(c, errors.New("pg: connection reset by peer"), "workshop")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The cause lands in the server log, never in the response body.
	assert.Contains(t, logs.String(), "connection reset by peer")
	assert.NotContains(t, rec.Body.String(), "connection reset by peer")
	assert.Contains(t, rec.Body.String(), "Internal error")
}
