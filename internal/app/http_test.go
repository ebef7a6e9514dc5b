package app

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/access"
	"visitor-pass-console/internal/config"
	"visitor-pass-console/internal/console"
	"visitor-pass-console/internal/credential"
	"visitor-pass-console/internal/nonce"
	"visitor-pass-console/internal/routes"
	"visitor-pass-console/internal/storage"
)

func TestSplitNetworks(t *testing.T) {
	got := splitNetworks(" 10.0.0.0/8, ,192.168.1.0/24,")
	want := []string{"10.0.0.0/8", "192.168.1.0/24"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitNetworks = %v, want %v", got, want)
	}
}

func TestIPAccessControl(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("GIN_MODE", "release")

	r := gin.New()
	r.Use(IPAccessControl([]string{"10.0.0.0/8", "not-a-cidr"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		remote string
		want   int
	}{
		{"10.1.2.3:5000", http.StatusOK},
		{"192.168.1.10:5000", http.StatusForbidden},
		{"127.0.0.1:5000", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s: status %d, want %d", tt.remote, rec.Code, tt.want)
		}
	}
}

func TestHTTPServer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Secret: "test-secret"}
	c := console.New(storage.NewMemoryProvider(), credential.Plaintext{}, access.DefaultPolicy())
	revoked := nonce.NewMemoryStore()
	defer revoked.Close()

	engine, err := HTTPServer(cfg, routes.NewHandler(c, cfg, revoked, nil))
	if err != nil {
		t.Fatalf("HTTPServer failed: %v", err)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status %d", rec.Code)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got == "" {
		t.Error("expected caching to be disabled")
	}
}
