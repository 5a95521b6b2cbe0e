package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// SingleFlight collapses concurrent calls that share a key into one execution.
// Completed calls are forgotten, so a later call with the same key runs again.
// The zero value is ready to use.
type SingleFlight struct {
	group singleflight.Group
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	return g.group.Do(key, fn)
}

// DoContext is Do, except that a caller whose ctx ends stops waiting and gets
// ctx.Err(). The shared call keeps running for the remaining waiters.
func (g *SingleFlight) DoContext(ctx context.Context, key string, fn func() (any, error)) (any, error, bool) {
	ch := g.group.DoChan(key, fn)
	select {
	case res := <-ch:
		return res.Val, res.Err, res.Shared
	case <-ctx.Done():
		return nil, ctx.Err(), false
	}
}
