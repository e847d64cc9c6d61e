package router_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/library-api/internal/config"
	"github.com/aanand-mishra/library-api/internal/http/router"
	"github.com/aanand-mishra/library-api/internal/storage/sqlite"
)

func setup(t *testing.T, apiKey string) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Env:         "dev",
		StoragePath: filepath.Join(t.TempDir(), "test.db"),
	}
	st, err := sqlite.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return router.New(st, st, apiKey)
}

func TestRoot_OpenAndAnnounces(t *testing.T) {
	h := setup(t, "s3cret")

	// No Authorization header: the root route sits outside the gate.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Library API is running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestAPIRoutes_RequireToken(t *testing.T) {
	h := setup(t, "s3cret")

	r := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/api/students", nil)
	r.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid token"}`, w.Body.String())

	r = httptest.NewRequest(http.MethodGet, "/api/books", nil)
	r.Header.Set("Authorization", "Bearer s3cret")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIRoutes_OpenWithoutConfiguredKey(t *testing.T) {
	h := setup(t, "")

	r := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFullCycleThroughRouter(t *testing.T) {
	h := setup(t, "s3cret")

	body := bytes.NewBufferString(
		`{"title":"The Hobbit","author":"J.R.R. Tolkien","publishedYear":1937}`)
	r := httptest.NewRequest(http.MethodPost, "/api/books", body)
	r.Header.Set("Authorization", "Bearer s3cret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	r = httptest.NewRequest(http.MethodGet, "/api/books?search=hobbit", nil)
	r.Header.Set("Authorization", "Bearer s3cret")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}
