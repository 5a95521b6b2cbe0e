package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "players:search:saka:5", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	mock := clock.NewMock()
	store := NewStoreWithClock(time.Minute, mock)
	ctx := context.Background()

	store.Set(ctx, "standings:2024", 20)
	if _, ok := store.Get(ctx, "standings:2024"); !ok {
		t.Fatalf("expected fresh entry")
	}

	mock.Add(2 * time.Minute)
	if _, ok := store.Get(ctx, "standings:2024"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_DeletePrefixAndFlush(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "teams:results:arsenal:5", 1)
	store.Set(ctx, "teams:h2h:arsenal:chelsea:5", 2)
	store.Set(ctx, "standings:2024", 3)

	store.DeletePrefix(ctx, "teams:")
	if store.Len() != 1 {
		t.Fatalf("expected one entry after prefix delete, got %d", store.Len())
	}

	store.Flush(ctx)
	if store.Len() != 0 {
		t.Fatalf("expected empty store after flush, got %d", store.Len())
	}
}

func TestLoad_Typed(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	got, err := Load(context.Background(), store, "k", func(context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected value: %+v", got)
	}

	store.Set(context.Background(), "wrong", "text")
	if _, err := Load(context.Background(), store, "wrong", func(context.Context) ([]int, error) {
		return nil, nil
	}); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
