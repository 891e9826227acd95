package styledata

import (
	"context"

	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/threadstate"
)

// SnapshotOption is an optional snapshot with deferred release.
//
// Snapshots may be created by layout workers during a traversal, but must
// only be recycled by the owner of the snapshot pool once the traversal is
// done. Destroy therefore just hides the snapshot; the backing value is
// handed out to the owner by Release.
type SnapshotOption struct {
	snapshot  *restyle.Snapshot
	destroyed bool
	displaced []*restyle.Snapshot // destroyed snapshots replaced by Ensure, not yet released
}

// EmptySnapshot returns an option without a snapshot.
func EmptySnapshot() SnapshotOption {
	return SnapshotOption{}
}

// Ensure returns the snapshot, creating it if absent. The context has to
// carry the layout role.
func (so *SnapshotOption) Ensure(ctx context.Context, create func() *restyle.Snapshot) *restyle.Snapshot {
	assertThat(threadstate.FromContext(ctx).IsLayout(), "snapshot ensured outside of layout role")
	if so.IsNone() {
		if so.snapshot != nil {
			so.displaced = append(so.displaced, so.snapshot)
		}
		so.snapshot = create()
		so.destroyed = false
	}
	return so.snapshot
}

// Destroy hides the snapshot. The backing value lives on until released.
func (so *SnapshotOption) Destroy() {
	so.destroyed = true
	assertThat(so.IsNone(), "destroyed snapshot still visible")
}

// Get returns the snapshot, or nil if absent or destroyed.
func (so *SnapshotOption) Get() *restyle.Snapshot {
	if so.destroyed {
		return nil
	}
	return so.snapshot
}

// IsSome is true if a snapshot is visible.
func (so *SnapshotOption) IsSome() bool {
	return so.Get() != nil
}

// IsNone is true if no snapshot is visible.
func (so *SnapshotOption) IsNone() bool {
	return so.Get() == nil
}

// Release hands out the backing snapshots, destroyed or not, and empties the
// option. Every backing snapshot is handed out exactly once, including
// destroyed ones replaced by Ensure. Release returns nil for an empty option.
func (so *SnapshotOption) Release() []*restyle.Snapshot {
	released := so.displaced
	if so.snapshot != nil {
		released = append(released, so.snapshot)
	}
	so.snapshot = nil
	so.destroyed = false
	so.displaced = nil
	return released
}
