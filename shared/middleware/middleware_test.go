package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newMiddlewareTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), CORSMiddleware(), LoggingMiddleware())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"requestId": GetRequestID(c)})
	})
	r.GET("/fail", func(c *gin.Context) {
		RespondWithInternalError(c, errors.New("connection refused"))
	})
	return r
}

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"652f1c0a9b1e8a3d4c5b6a79", true},
		{"000000000000000000000000", true},
		{"", false},
		{"not-an-id", false},
		{"652f1c0a9b1e8a3d4c5b6a7", false},
		{"652f1c0a9b1e8a3d4c5b6a7z", false},
	}
	for _, tt := range tests {
		if got := ValidateUserID(tt.id); got != tt.valid {
			t.Errorf("ValidateUserID(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := newMiddlewareTestRouter()

	req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "req-123" {
		t.Errorf("expected echoed request id, got %q", got)
	}

	req, _ = http.NewRequest(http.MethodGet, "/ok", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["requestId"] == "" || body["requestId"] != w.Header().Get(RequestIDHeader) {
		t.Errorf("expected generated request id in context and header, got body %v", body)
	}
}

func TestCORSMiddleware(t *testing.T) {
	router := newMiddlewareTestRouter()

	req, _ := http.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204 for pre-flight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("expected no credentials header, got %q", got)
	}
}

func TestRespondWithInternalError(t *testing.T) {
	router := newMiddlewareTestRouter()

	req, _ := http.NewRequest(http.MethodGet, "/fail", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	var body ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Error != "Internal Server Error" || body.Details != "connection refused" {
		t.Errorf("unexpected body: %+v", body)
	}
}
