package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/pkg/config"
)

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "test"})
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/test", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	expectedHeaders := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Cache-Control":          "no-store, no-cache, must-revalidate, proxy-revalidate",
		"Pragma":                 "no-cache",
		"Expires":                "0",
	}
	for header, expected := range expectedHeaders {
		assert.Equal(t, expected, w.Header().Get(header), header)
	}
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Security-Policy"), "default-src 'none'"))
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		environment    string
		allowedOrigins string
		origin         string
		method         string
		expectedOrigin string
		expectedStatus int
	}{
		{
			name:           "development allows localhost",
			environment:    "development",
			origin:         "http://localhost:3000",
			method:         http.MethodGet,
			expectedOrigin: "http://localhost:3000",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "development rejects unknown origin",
			environment:    "development",
			origin:         "https://evil.example",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "production allows configured origin",
			environment:    "production",
			allowedOrigins: "https://hackathon.example",
			origin:         "https://hackathon.example",
			method:         http.MethodGet,
			expectedOrigin: "https://hackathon.example",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "production rejects localhost",
			environment:    "production",
			allowedOrigins: "https://hackathon.example",
			origin:         "http://localhost:3000",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "preflight short circuits",
			environment:    "development",
			origin:         "http://localhost:3000",
			method:         http.MethodOptions,
			expectedOrigin: "http://localhost:3000",
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Environment: tt.environment, AllowedOrigins: tt.allowedOrigins}
			router := gin.New()
			router.Use(CORSMiddleware(cfg))
			router.GET("/test", okHandler)
			router.OPTIONS("/test", okHandler)

			req := httptest.NewRequest(tt.method, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestInputValidationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		method         string
		contentType    string
		userAgent      string
		body           string
		expectedStatus int
	}{
		{name: "valid GET", method: http.MethodGet, userAgent: "test-agent", expectedStatus: http.StatusOK},
		{name: "valid JSON POST", method: http.MethodPost, contentType: "application/json", userAgent: "test-agent", body: "{}", expectedStatus: http.StatusOK},
		{name: "multipart POST", method: http.MethodPost, contentType: "multipart/form-data; boundary=x", userAgent: "test-agent", expectedStatus: http.StatusOK},
		{name: "missing content type", method: http.MethodPost, userAgent: "test-agent", body: "{}", expectedStatus: http.StatusBadRequest},
		{name: "unsupported content type", method: http.MethodPut, contentType: "text/xml", userAgent: "test-agent", expectedStatus: http.StatusUnsupportedMediaType},
		{name: "missing user agent", method: http.MethodGet, expectedStatus: http.StatusBadRequest},
		{name: "scanner user agent", method: http.MethodGet, userAgent: "sqlmap/1.0", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(InputValidationMiddleware(1024))
			router.Any("/test", okHandler)

			req := httptest.NewRequest(tt.method, "/test", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			req.Header.Set("User-Agent", tt.userAgent)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestInputValidationLimitsBodySize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(InputValidationMiddleware(16))
	router.POST("/test", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"key":"a value longer than sixteen bytes"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(LoggingMiddleware(logger.NewNop()))
	router.GET("/ok", okHandler)
	router.GET("/fail", func(c *gin.Context) {
		c.AbortWithStatus(http.StatusInternalServerError)
	})

	for path, expected := range map[string]int{"/ok": http.StatusOK, "/fail": http.StatusInternalServerError, "/missing": http.StatusNotFound} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, expected, w.Code, path)
	}
}
