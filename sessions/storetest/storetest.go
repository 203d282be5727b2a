package storetest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/ggoodman/fortune-compass/sessions"
)

// StoreFactory creates a new, empty Store instance for testing.
type StoreFactory func(t *testing.T) sessions.Store

// NopTransport is a Transport that answers every request with 204.
type NopTransport struct{}

func (NopTransport) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (NopTransport) Close() error { return nil }

// RunStoreTests runs the complete Store test suite against the provided factory.
func RunStoreTests(t *testing.T, factory StoreFactory) {
	t.Run("PutThenGet", func(t *testing.T) { testPutThenGet(t, factory) })
	t.Run("GetUnknown", func(t *testing.T) { testGetUnknown(t, factory) })
	t.Run("ContainsTracksPut", func(t *testing.T) { testContainsTracksPut(t, factory) })
	t.Run("DuplicatePutRejected", func(t *testing.T) { testDuplicatePutRejected(t, factory) })
	t.Run("InvalidPutRejected", func(t *testing.T) { testInvalidPutRejected(t, factory) })
	t.Run("IsolationBetweenSessions", func(t *testing.T) { testIsolation(t, factory) })
	t.Run("ConcurrentAccess", func(t *testing.T) { testConcurrentAccess(t, factory) })
}

func testPutThenGet(t *testing.T, factory StoreFactory) {
	s := factory(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tr := &recordingTransport{}
	in := &sessions.Session{ID: "sess-1", UserID: "user-1", Transport: tr, CreatedAt: time.Now()}
	if err := s.Put(ctx, in); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := s.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != "sess-1" || got.UserID != "user-1" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Transport != tr {
		t.Fatalf("expected the same transport instance to be returned")
	}
}

func testGetUnknown(t *testing.T, factory StoreFactory) {
	s := factory(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.Get(ctx, "does-not-exist")
	if !errors.Is(err, sessions.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func testContainsTracksPut(t *testing.T, factory StoreFactory) {
	s := factory(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ok, err := s.Contains(ctx, "sess-2")
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if ok {
		t.Fatalf("expected unknown session to be absent")
	}

	if err := s.Put(ctx, &sessions.Session{ID: "sess-2", Transport: NopTransport{}}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	ok, err = s.Contains(ctx, "sess-2")
	if err != nil {
		t.Fatalf("contains failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected registered session to be present")
	}
}

func testDuplicatePutRejected(t *testing.T, factory StoreFactory) {
	s := factory(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first := &recordingTransport{}
	if err := s.Put(ctx, &sessions.Session{ID: "sess-3", Transport: first}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	err := s.Put(ctx, &sessions.Session{ID: "sess-3", Transport: &recordingTransport{}})
	if !errors.Is(err, sessions.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}

	got, err := s.Get(ctx, "sess-3")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Transport != first {
		t.Fatalf("duplicate put replaced the original transport")
	}
}

func testInvalidPutRejected(t *testing.T, factory StoreFactory) {
	s := factory(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Put(ctx, nil); err == nil {
		t.Fatalf("expected nil session to be rejected")
	}
	if err := s.Put(ctx, &sessions.Session{Transport: NopTransport{}}); err == nil {
		t.Fatalf("expected empty id to be rejected")
	}
	if err := s.Put(ctx, &sessions.Session{ID: "sess-4"}); err == nil {
		t.Fatalf("expected missing transport to be rejected")
	}
	if ok, _ := s.Contains(ctx, "sess-4"); ok {
		t.Fatalf("rejected put must not register the session")
	}
}

func testIsolation(t *testing.T, factory StoreFactory) {
	s := factory(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, b := &recordingTransport{}, &recordingTransport{}
	if err := s.Put(ctx, &sessions.Session{ID: "sess-5a", Transport: a}); err != nil {
		t.Fatalf("put a: %v", err)
	}
	if err := s.Put(ctx, &sessions.Session{ID: "sess-5b", Transport: b}); err != nil {
		t.Fatalf("put b: %v", err)
	}

	gotA, err := s.Get(ctx, "sess-5a")
	if err != nil {
		t.Fatalf("get a: %v", err)
	}
	gotB, err := s.Get(ctx, "sess-5b")
	if err != nil {
		t.Fatalf("get b: %v", err)
	}
	if gotA.Transport != a || gotB.Transport != b {
		t.Fatalf("sessions crossed transports")
	}
}

func testConcurrentAccess(t *testing.T, factory StoreFactory) {
	s := factory(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const n = 64
	var wg sync.WaitGroup
	errs := make(chan error, n*2)
	for i := 0; i < n; i++ {
		wg.Add(2)
		id := fmt.Sprintf("sess-c-%d", i)
		go func() {
			defer wg.Done()
			if err := s.Put(ctx, &sessions.Session{ID: id, Transport: NopTransport{}}); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := s.Contains(ctx, id); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent op failed: %v", err)
	}

	for i := 0; i < n; i++ {
		id := fmt.Sprintf("sess-c-%d", i)
		if ok, err := s.Contains(ctx, id); err != nil || !ok {
			t.Fatalf("expected %s to be registered (err=%v)", id, err)
		}
	}
}

type recordingTransport struct {
	mu    sync.Mutex
	calls int
}

func (r *recordingTransport) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (r *recordingTransport) Close() error { return nil }
