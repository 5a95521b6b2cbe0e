package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesIdenticalRequests(t *testing.T) {
	var g SingleFlight
	var calls, shared int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, wasShared := g.Do("/teams?league=39&season=2023", func() (any, error) {
				atomic.AddInt32(&calls, 1)
				time.Sleep(50 * time.Millisecond)
				return 20, nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if v != 20 {
				t.Errorf("unexpected value %v", v)
			}
			if wasShared {
				atomic.AddInt32(&shared, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if got := atomic.LoadInt32(&shared); got != workers {
		t.Fatalf("expected every caller to see a shared result, got %d", got)
	}
}

func TestSingleFlight_SequentialCallsRunAgain(t *testing.T) {
	var g SingleFlight
	var calls int
	for i := 0; i < 3; i++ {
		_, _, _ = g.Do("/standings?league=39&season=2024", func() (any, error) {
			calls++
			return nil, nil
		})
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls after completion, got %d", calls)
	}
}

func TestSingleFlight_DoContextReturnsOnCancel(t *testing.T) {
	var g SingleFlight
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err, _ := g.DoContext(ctx, "/players/profiles?page=1", func() (any, error) {
		<-release
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSingleFlight_DoContextReturnsResult(t *testing.T) {
	var g SingleFlight
	v, err, _ := g.DoContext(context.Background(), "/leagues?id=39", func() (any, error) {
		return "premier league", nil
	})
	if err != nil || v != "premier league" {
		t.Fatalf("unexpected result %v, %v", v, err)
	}
}
