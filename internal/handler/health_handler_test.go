package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func pingReturning(t *testing.T, err error) Pinger {
	return pingerFunc(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("ping must run with a deadline")
		}
		return err
	})
}

func TestHealth(t *testing.T) {
	down := errors.New("server selection timeout")

	tests := []struct {
		name           string
		db             error
		cache          Pinger
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "database reachable, no cache configured",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"mongodb":"ok","status":"ok"}`,
		},
		{
			name:           "database and cache reachable",
			cache:          pingReturning(t, nil),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"mongodb":"ok","redis":"ok","status":"ok"}`,
		},
		{
			name:           "cache unreachable degrades but serves",
			cache:          pingReturning(t, down),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"mongodb":"ok","redis":"unavailable","status":"degraded"}`,
		},
		{
			name:           "database unreachable",
			db:             down,
			cache:          pingReturning(t, nil),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"mongodb":"unavailable","redis":"ok","status":"unavailable"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.GET("/health", NewHealthHandler(pingReturning(t, tt.db), tt.cache).Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if w.Body.String() != tt.expectedBody {
				t.Errorf("expected body %s, got %s", tt.expectedBody, w.Body.String())
			}
		})
	}
}
