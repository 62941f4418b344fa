package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(zap.NewNop()))
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if seen == "" || w.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("id=%q header=%q", seen, w.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if seen != "abc-123" {
		t.Fatalf("id=%q want abc-123", seen)
	}
}

func TestWriteAudit_LogsWritesOnly(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	r := gin.New()
	r.Use(RequestID(logger), WriteAudit(logger))
	r.GET("/read", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/write", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/read", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/write", nil))

	entries := logs.FilterMessage("http write").All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d want 1", len(entries))
	}
	if entries[0].Level != zap.WarnLevel {
		t.Fatalf("level=%s want warn", entries[0].Level)
	}
	if entries[0].ContextMap()["path"] != "/write" {
		t.Fatalf("fields=%v", entries[0].ContextMap())
	}
	if _, ok := entries[0].ContextMap()["request_id"]; !ok {
		t.Fatalf("request_id missing: %v", entries[0].ContextMap())
	}
}
