package styledtree

import (
	"context"
	"sync"

	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/threadstate"
)

// SnapshotPool recycles element snapshots. Snapshots are taken and reclaimed
// by the main role only. During a traversal, workers hand released snapshots
// back with Defer; they become available again after Reclaim.
type SnapshotPool struct {
	mx       sync.Mutex
	free     []*restyle.Snapshot
	deferred []*restyle.Snapshot
	created  int
}

// NewSnapshotPool creates an empty pool.
func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{}
}

// Take returns an empty snapshot. The context has to carry the main role.
func (p *SnapshotPool) Take(ctx context.Context) *restyle.Snapshot {
	assertThat(threadstate.FromContext(ctx).IsScript(), "snapshot taken outside of main role")
	p.mx.Lock()
	defer p.mx.Unlock()
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free = p.free[:n-1]
		return s
	}
	p.created++
	return &restyle.Snapshot{}
}

// Defer hands back snapshots no longer referenced by element data. It may be
// called from any goroutine; nil snapshots are ignored.
func (p *SnapshotPool) Defer(snaps ...*restyle.Snapshot) {
	p.mx.Lock()
	defer p.mx.Unlock()
	for _, s := range snaps {
		if s != nil {
			p.deferred = append(p.deferred, s)
		}
	}
}

// Reclaim makes deferred snapshots available again and returns their number.
// The context has to carry the main role, and no traversal may be running.
func (p *SnapshotPool) Reclaim(ctx context.Context) int {
	assertThat(threadstate.FromContext(ctx).IsScript(), "snapshots reclaimed outside of main role")
	p.mx.Lock()
	defer p.mx.Unlock()
	n := len(p.deferred)
	for _, s := range p.deferred {
		s.Reset()
		p.free = append(p.free, s)
	}
	p.deferred = p.deferred[:0]
	if n > 0 {
		tracer().Debugf("reclaimed %d snapshots", n)
	}
	return n
}

// Stats returns the number of free snapshots, of deferred snapshots, and of
// snapshots created so far.
func (p *SnapshotPool) Stats() (free, deferred, created int) {
	p.mx.Lock()
	defer p.mx.Unlock()
	return len(p.free), len(p.deferred), p.created
}
