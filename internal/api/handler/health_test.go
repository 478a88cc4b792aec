package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		redisErr   error
		wantStatus int
		wantState  string
	}{
		{name: "all healthy", wantStatus: http.StatusOK, wantState: "ok"},
		{name: "redis down", redisErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantState: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewReadinessHandler(map[string]Pinger{
				"mongodb": stubPinger{},
				"redis":   stubPinger{err: tt.redisErr},
			})

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
			if err := handler.Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tt.wantState || resp.Dependencies["mongodb"].Status != "ok" {
				t.Fatalf("unexpected readiness: %+v", resp)
			}
		})
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
