package utils

import (
	"crypto/tls"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(host string, secure bool) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Host = host
	if secure {
		c.Request.TLS = &tls.ConnectionState{}
	}
	return c
}

func TestGetBaseURL(t *testing.T) {
	c := testContext("console.local", false)
	if got := GetBaseURL(c, ""); got != "http://console.local" {
		t.Errorf("detected base URL %q", got)
	}

	c.Request.Header.Set("X-Forwarded-Proto", "https")
	if got := GetBaseURL(c, ""); got != "https://console.local" {
		t.Errorf("forwarded base URL %q", got)
	}

	if got := GetBaseURL(testContext("console.local", true), ""); got != "https://console.local" {
		t.Errorf("TLS base URL %q", got)
	}

	if got := GetBaseURL(c, "https://visitors.example.com/"); got != "https://visitors.example.com" {
		t.Errorf("configured base URL %q", got)
	}
}

func TestGetVersion(t *testing.T) {
	BuildVersion = "v1.2.3"
	defer func() { BuildVersion = "" }()
	if got := GetVersion(); got != "v1.2.3" {
		t.Errorf("GetVersion() = %q", got)
	}
}
