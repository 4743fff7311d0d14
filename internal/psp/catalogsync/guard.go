package catalogsync

import (
	"context"
	"sync/atomic"
)

// RunGuard grants exclusive ownership of a sync run. TryAcquire reports
// ok=false when another owner holds the guard; release must be called exactly
// once after a successful acquire.
type RunGuard interface {
	TryAcquire(ctx context.Context) (release func(), ok bool, err error)
}

// LocalGuard serializes runs inside one process.
type LocalGuard struct {
	running atomic.Bool
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{}
}

func (g *LocalGuard) TryAcquire(context.Context) (func(), bool, error) {
	if !g.running.CompareAndSwap(false, true) {
		return nil, false, nil
	}
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			g.running.Store(false)
		}
	}, true, nil
}

// Held reports whether a run currently owns the guard.
func (g *LocalGuard) Held() bool {
	return g.running.Load()
}
