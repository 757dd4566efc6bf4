package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginFromHeader_Priority(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "no headers",
			headers: nil,
			want:    UnknownOrigin,
		},
		{
			name:    "x-forwarded-for first element",
			headers: map[string]string{"X-Forwarded-For": " 203.0.113.5 , 10.0.0.1, 10.0.0.2"},
			want:    "203.0.113.5",
		},
		{
			name:    "x-forwarded-for wins over x-real-ip",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5", "X-Real-IP": "198.51.100.7"},
			want:    "203.0.113.5",
		},
		{
			name:    "empty x-forwarded-for falls through",
			headers: map[string]string{"X-Forwarded-For": " , 10.0.0.1", "X-Real-IP": "198.51.100.7"},
			want:    "198.51.100.7",
		},
		{
			name:    "cloudflare header",
			headers: map[string]string{"CF-Connecting-IP": "198.51.100.8", "X-Client-IP": "198.51.100.9"},
			want:    "198.51.100.8",
		},
		{
			name:    "x-client-ip",
			headers: map[string]string{"X-Client-IP": "198.51.100.9", "Forwarded": "for=198.51.100.10"},
			want:    "198.51.100.9",
		},
		{
			name:    "x-forwarded",
			headers: map[string]string{"X-Forwarded": "198.51.100.11"},
			want:    "198.51.100.11",
		},
		{
			name:    "forwarded-for",
			headers: map[string]string{"Forwarded-For": "198.51.100.12"},
			want:    "198.51.100.12",
		},
		{
			name:    "forwarded is used verbatim",
			headers: map[string]string{"Forwarded": "for=198.51.100.10"},
			want:    "for=198.51.100.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, OriginFromHeader(h))
		})
	}
}

func TestOriginFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	r.RemoteAddr = "203.0.113.99:5555"
	assert.Equal(t, UnknownOrigin, OriginFromRequest(r), "remote address is not consulted")

	r.Header.Set("X-Real-IP", "203.0.113.5")
	assert.Equal(t, "203.0.113.5", OriginFromRequest(r))

	assert.Equal(t, UnknownOrigin, OriginFromRequest(nil))
}

func TestIsLocalAddress(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"127.0.0.1", true},
		{"127.8.9.10", true},
		{"::1", true},
		{"::ffff:127.0.0.1", true},
		{"localhost", true},
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"172.20.10.10", true},
		{"172.31.0.1", true},
		{"192.168.0.10", true},
		{"fd00::1", true},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"203.0.113.5", false},
		{"8.8.8.8", false},
		{"2001:db8::1", false},
		{"unknown", false},
		{"", false},
		{"10.example.com", false},
		{"for=10.0.0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLocalAddress(tt.origin))
		})
	}
}
