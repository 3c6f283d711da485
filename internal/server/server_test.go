package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/vedicmath/internal/logging"
	"github.com/agbru/vedicmath/internal/metrics"
	"github.com/agbru/vedicmath/internal/numeric"
	"github.com/agbru/vedicmath/internal/sutra"
	"github.com/agbru/vedicmath/internal/telemetry"
)

// testLogger is a minimal logger for testing that implements logging.Logger.
type testLogger struct{}

func (testLogger) Info(string, ...logging.Field)        {}
func (testLogger) Error(string, error, ...logging.Field) {}
func (testLogger) Debug(string, ...logging.Field)       {}
func (testLogger) Printf(string, ...any)                {}
func (testLogger) Println(...any)                       {}

func newTestServer() (*Server, *metrics.Collector) {
	c := metrics.NewCollector()
	return New("127.0.0.1:0", c, testLogger{}), c
}

func TestHandleMetrics(t *testing.T) {
	t.Parallel()

	s, c := newTestServer()
	c.ObserveRecord(telemetry.Record{Op: numeric.Mul, Sutra: sutra.Urdhva})
	h := s.Handler()

	t.Run("GET returns metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `vedicmath_calls_total{op="mul",sutra="urdhva"} 1`) {
			t.Error("missing call counter")
		}
	})

	t.Run("POST returns method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", http.NoBody))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})

	t.Run("requests are counted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
		if !strings.Contains(rec.Body.String(), "vedicmath_http_requests_total") {
			t.Error("missing request counter")
		}
	})
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	next := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	handler := SecurityMiddleware(DefaultSecurityConfig(), next)
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "no-referrer"},
		{"Access-Control-Allow-Origin", "*"},
	}
	for _, tt := range tests {
		if got := rec.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config SecurityConfig
		origin string
		want   string
	}{
		{"disabled", SecurityConfig{}, "http://example.com", ""},
		{"specific allowed", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"http://a.com"}}, "http://a.com", "http://a.com"},
		{"specific refused", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"http://a.com"}}, "http://b.com", ""},
		{"no origin", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"http://a.com"}}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := SecurityMiddleware(tt.config, func(http.ResponseWriter, *http.Request) {})
			req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreflight(t *testing.T) {
	t.Parallel()

	called := false
	handler := SecurityMiddleware(DefaultSecurityConfig(), func(http.ResponseWriter, *http.Request) { called = true })
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodOptions, "/metrics", http.NoBody))
	if rec.Code != http.StatusNoContent || called {
		t.Errorf("preflight: status %d, next called %v", rec.Code, called)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
