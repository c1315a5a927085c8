package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Point the app at a throwaway in-memory database and silence request
	// logging.
	os.Setenv("DATABASE_DRIVER", "sqlite")
	os.Setenv("DATABASE_DSN", "file:mainapp?mode=memory&cache=shared")
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestNewAppHealthCheck(t *testing.T) {
	app, err := NewApp(nil)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestNewAppRequiresAuth(t *testing.T) {
	app, err := NewApp(nil)
	assert.NoError(t, err)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users/cart"},
		{http.MethodGet, "/users/cart"},
		{http.MethodPost, "/orders"},
		{http.MethodGet, "/products/all"},
	}
	for _, route := range protected {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
		resp.Body.Close()
	}

	// The public catalog stays reachable without a token.
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
