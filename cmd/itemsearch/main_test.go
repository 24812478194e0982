package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/itemsearch/internal/config"
	logpkg "github.com/kailas-cloud/itemsearch/internal/logger"
	chiTransport "github.com/kailas-cloud/itemsearch/internal/transport/chi"
)

func TestJSONRecoverer(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := jsonRecoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/search?q=x", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var resp chiTransport.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != chiTransport.ErrorCodeInternalError {
		t.Errorf("code = %s", resp.Code)
	}
	if logs.Len() != 1 {
		t.Errorf("expected one panic log entry, got %d", logs.Len())
	}
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	var ctxLogger *zap.Logger
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(zap.New(core)))
	r.Get("/api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logpkg.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/search?q=hamer", http.NoBody))

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if ctxLogger == nil {
		t.Fatal("expected request logger in context")
	}
	entries := logs.FilterMessage("http_request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one http_request line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["query"] != "hamer" {
		t.Errorf("unexpected fields: %v", fields)
	}
	if fields["request_id"] == "" {
		t.Error("expected request_id field")
	}
}

func TestSearchConfigMapping(t *testing.T) {
	var cfg config.Config
	cfg.ApplyDefaults()

	mc := matchConfig(cfg.Search)
	if mc.Tolerance.OneEditMaxLen != 5 || mc.SubstringBonus != 0.9 || mc.DefaultLimit != 20 {
		t.Errorf("unexpected matcher config: %+v", mc)
	}

	sc := searchConfig(cfg.Search)
	if sc.FuzzyLimit != 20 || sc.SuggestBelow != 3 || sc.Suggester.MaxDistance != 3 {
		t.Errorf("unexpected search config: %+v", sc)
	}
	if len(sc.Fields) != 5 {
		t.Errorf("expected default fields, got %v", sc.Fields)
	}
}
