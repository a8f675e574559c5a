package http

import (
	"Conquest/internal/shared/transport/http/middleware"
	"Conquest/modules/kit/logx"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewHttpServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New(), logx.Nop(), middleware.CorsConfig{AllowAll: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusOK)
	}
}

func TestCors_只放行白名单(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New(), logx.Nop(), middleware.CorsConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	s.Handler().ServeHTTP(w, req)
	if w.Code != nethttp.StatusNoContent {
		t.Fatalf("预检请求应返回 204, got=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("期望回显白名单 origin, got=%q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example")
	s.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("非白名单 origin 不应放行, got=%q", got)
	}
}
