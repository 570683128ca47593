package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_CleansPath(t *testing.T) {
	router := NewRouter()

	router.Add(http.MethodGet, "/api/drivers", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		desc   string
		target string
		code   int
	}{
		{"exact", "/api/drivers", http.StatusTeapot},
		{"repeated slashes", "//api//drivers", http.StatusTeapot},
		{"trailing slash", "/api/drivers/", http.StatusTeapot},
		{"dot segments", "/api/teams/../drivers", http.StatusTeapot},
		{"unknown", "/api/drivers/7", http.StatusNotFound},
	}

	for i, tc := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, http.NoBody))

		assert.Equal(t, tc.code, rec.Code, "TEST[%d] Failed: %s", i, tc.desc)
	}
}

func TestRouter_NotFound(t *testing.T) {
	router := NewRouter()

	router.NotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		NewResponder(w, r.Method).Respond(nil, ErrorInvalidRoute{})
	}))
	router.Add(http.MethodPost, "/api/results", http.NotFoundHandler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":404,"data":null,"message":"route not registered"}`, rec.Body.String())
}

func TestRouter_Routes(t *testing.T) {
	router := NewRouter()

	router.Add(http.MethodPost, "/api/results", http.NotFoundHandler())
	router.Add(http.MethodPost, "/api/drivers", http.NotFoundHandler())
	router.Add(http.MethodGet, "/api/drivers", http.NotFoundHandler())

	routes := router.Routes()

	assert.Equal(t, []Route{
		{Method: http.MethodGet, Pattern: "/api/drivers"},
		{Method: http.MethodPost, Pattern: "/api/drivers"},
		{Method: http.MethodPost, Pattern: "/api/results"},
	}, routes)
	assert.Equal(t, "GET /api/drivers", routes[0].String())

	routes[0].Pattern = "/changed"
	assert.Equal(t, "/api/drivers", router.Routes()[0].Pattern)
}
