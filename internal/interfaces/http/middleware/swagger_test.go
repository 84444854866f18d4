package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name       string
		cfg        SwaggerConfig
		remoteAddr string
		wantStatus int
	}{
		{"disabled", SwaggerConfig{Enabled: false}, "127.0.0.1:1234", http.StatusNotFound},
		{"enabled without whitelist", SwaggerConfig{Enabled: true}, "203.0.113.9:1234", http.StatusOK},
		{"exact ip allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, "127.0.0.1:1234", http.StatusOK},
		{"cidr allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.1.0/24"}}, "192.168.1.40:1234", http.StatusOK},
		{"outside whitelist", SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.1.0/24", "10.0.0.1"}}, "203.0.113.9:1234", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/swagger/*any", SwaggerProtection(tt.cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteAddr
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
