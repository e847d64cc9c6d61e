package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_NoSecretConfigured(t *testing.T) {
	h := Auth("")(okHandler())

	for _, header := range []string{"", "Bearer whatever"} {
		r := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code, "open gate passes everything")
	}
}

func TestAuth_ValidToken(t *testing.T) {
	h := Auth("s3cret")(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	r.Header.Set("Authorization", "Bearer s3cret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_WrongToken(t *testing.T) {
	h := Auth("s3cret")(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	r.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid token"}`, w.Body.String())
}

func TestAuth_MissingHeader(t *testing.T) {
	h := Auth("s3cret")(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Unauthorized"}`, w.Body.String())
}

func TestAuth_MalformedHeader(t *testing.T) {
	h := Auth("s3cret")(okHandler())

	for _, header := range []string{"s3cret", "Basic s3cret", "Bearer "} {
		r := httptest.NewRequest(http.MethodGet, "/api/books", nil)
		r.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.JSONEq(t, `{"success":false,"message":"Unauthorized"}`, w.Body.String())
	}
}

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
}

func TestRequestID_Propagated(t *testing.T) {
	h := RequestID(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))
}
