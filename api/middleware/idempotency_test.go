package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type memoryStore struct {
	mu      sync.Mutex
	records map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]string{}}
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.records[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (m *memoryStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[key]; ok {
		return false, nil
	}
	m.records[key] = value.(string)
	return true, nil
}

func (m *memoryStore) IdempotencyKey(scope, id string) string {
	return "test:idmp:" + scope + ":" + id
}

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":1}}`))
	})
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	handler := Idempotency(store, nil)(countingHandler(&calls))

	body := `{"title":"Summer Sale"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/campaigns", bytes.NewBufferString(body))
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201 got %d", i, rec.Code)
		}
		if rec.Body.String() != `{"data":{"id":1}}` {
			t.Fatalf("request %d: unexpected body %q", i, rec.Body.String())
		}
	}
	if calls != 1 {
		t.Fatalf("handler should run once, ran %d times", calls)
	}
}

func TestIdempotencyKeyReuseWithDifferentBody(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	handler := Idempotency(store, nil)(countingHandler(&calls))

	first := httptest.NewRequest(http.MethodPost, "/api/campaigns", bytes.NewBufferString(`{"title":"A"}`))
	first.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)

	second := httptest.NewRequest(http.MethodPost, "/api/campaigns", bytes.NewBufferString(`{"title":"B"}`))
	second.Header.Set("Idempotency-Key", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("handler should run once, ran %d times", calls)
	}
}

func TestIdempotencySkipsWithoutHeader(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	handler := Idempotency(store, nil)(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/campaigns", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}
	if calls != 2 {
		t.Fatalf("handler should run twice, ran %d times", calls)
	}
}

func TestIdempotencySkipsUnmatchedRoutes(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	handler := Idempotency(store, nil)(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/api/campaigns", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if calls != 1 {
		t.Fatalf("GET must pass through, ran %d times", calls)
	}
	if len(store.records) != 0 {
		t.Fatalf("nothing should be stored for GET, got %v", store.records)
	}
}

func TestIdempotencyMatchesToggleRoute(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	handler := Idempotency(store, nil)(countingHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPatch, "/api/campaigns/5/toggle", nil)
		req.Header.Set("Idempotency-Key", "toggle-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}
	if calls != 1 {
		t.Fatalf("toggle should replay, handler ran %d times", calls)
	}
}
