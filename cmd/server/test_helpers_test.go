package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/users-api/internal/config"
	"github.com/stretchr/testify/require"
)

// testConfig returns a valid configuration for the given store driver.
func testConfig(driver, url string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "error",
			ShutdownTimeoutSeconds: 5,
			CORSAllowedOrigins:     []string{"*"},
		},
		Store:    config.StoreConfig{Driver: driver},
		Database: config.DatabaseConfig{URL: url},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestApp builds an application for cfg and registers its cleanup.
func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	return newTestAppWithLogger(t, cfg, discardLogger())
}

func newTestAppWithLogger(t *testing.T, cfg *config.Config, log *slog.Logger) *application {
	t.Helper()

	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

// newTestServer serves the application's router over httptest.
func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	return serveApp(t, newTestApp(t, cfg))
}

func serveApp(t *testing.T, app *application) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, baseURL, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(baseURL+"/users", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
