package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestLogger_EmitsOneLine(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/login", func(c echo.Context) error {
		return c.String(http.StatusOK, "form")
	})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one json line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "info" || entry["method"] != "GET" || entry["uri"] != "/login" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Fatalf("expected status 200, got %v", entry["status"])
	}
}

func TestRequestLogger_ErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one json line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "error" {
		t.Fatalf("expected error level, got %v", entry["level"])
	}
	if entry["status"] != float64(http.StatusInternalServerError) {
		t.Fatalf("expected status 500, got %v", entry["status"])
	}
}
