package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestSetupTracingDisabledWithoutEndpoint(t *testing.T) {
	t.Parallel()

	shutdown, err := setupTracing(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("setup tracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestTracedPassesThrough(t *testing.T) {
	t.Parallel()

	var sawCode string
	h := traced("/api/rooms/:code/status", func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		sawCode = p.ByName("code")
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/api/rooms/AB12/status", nil), httprouter.Params{{Key: "code", Value: "AB12"}})

	if rec.Code != http.StatusTeapot || sawCode != "AB12" {
		t.Fatalf("status = %d, code = %q", rec.Code, sawCode)
	}
}
