package synonym

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

// --- Mocks ---

type mockStore struct {
	mu     sync.Mutex
	groups []domsyn.Group
	err    error
	calls  int
}

func (m *mockStore) ListActive(_ context.Context) ([]domsyn.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.groups, m.err
}

func (m *mockStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// --- Tests ---

func TestService_EmptyBeforeRefresh(t *testing.T) {
	svc := New(&mockStore{}, zap.NewNop())

	q := svc.Expand("wrench")
	if q.SynonymsFound() {
		t.Error("expected no synonyms before first load")
	}
	if err := svc.HealthCheck(context.Background()); err == nil {
		t.Error("expected health check to fail before first load")
	}
}

func TestService_Refresh(t *testing.T) {
	store := &mockStore{groups: seeded(t)}
	svc := New(store, zap.NewNop())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	spanner := svc.Expand("spanner")
	if !spanner.SynonymsFound() {
		t.Error("expected synonyms after refresh")
	}
	if len(svc.FindGroupsContaining("pipe wrench")) != 1 {
		t.Error("expected one group for pipe wrench")
	}
	if len(svc.Vocabulary()) == 0 {
		t.Error("expected non-empty vocabulary")
	}
	if err := svc.HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected health error: %v", err)
	}
}

func TestService_RefreshErrorKeepsIndex(t *testing.T) {
	store := &mockStore{groups: seeded(t)}
	svc := New(store, zap.NewNop())
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	store.err = errors.New("connection refused")
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	wrench := svc.Expand("wrench")
	if !wrench.SynonymsFound() {
		t.Error("previous index must survive a failed refresh")
	}
}

func TestService_ConcurrentExpandDuringRefresh(t *testing.T) {
	store := &mockStore{groups: seeded(t)}
	svc := New(store, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = svc.Expand("spanner")
			}
		}()
	}
	for i := 0; i < 10; i++ {
		_ = svc.Refresh(context.Background())
	}
	wg.Wait()
}

func TestService_RunStopsOnCancel(t *testing.T) {
	store := &mockStore{groups: seeded(t)}
	svc := New(store, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for store.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("refresh never ran")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
