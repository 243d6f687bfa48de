package common

import (
	"net/http/httptest"
	"testing"
)

func TestClientIp(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5123"
	if ip := ClientIp(r); ip != "10.0.0.1" {
		t.Errorf("Expected remote address host, got %s", ip)
	}
	r.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.2")
	if ip := ClientIp(r); ip != "1.2.3.4" {
		t.Errorf("Expected first forwarded address, got %s", ip)
	}
	r.Header.Set("X-Real-Ip", "5.6.7.8")
	if ip := ClientIp(r); ip != "5.6.7.8" {
		t.Errorf("Expected real ip header, got %s", ip)
	}
}
