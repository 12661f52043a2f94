package routes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskflow-app/taskflow/testutils"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping() error {
	return p.err
}

func TestHealth(t *testing.T) {
	t.Run("Database reachable", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/health", nil)
		Health(testutils.GetTestGinContext(w, req), stubPinger{})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("Database down", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/health", nil)
		Health(testutils.GetTestGinContext(w, req), stubPinger{err: errors.New("dial tcp: refused")})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "unavailable")
	})
}
