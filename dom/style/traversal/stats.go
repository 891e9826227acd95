package traversal

import (
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/restyle/dom/style/restyle"
)

// Stats summarizes the work of a traversal.
type Stats struct {
	Visited    int            // elements visited
	Matched    int            // elements with selector matching and cascade
	Replaced   int            // elements with replaced rules
	Recascaded int            // elements cascaded only
	Cleared    int            // elements of display:none subtrees with dropped styles
	Snapshots  int            // snapshots expanded into restyle hints
	Damage     restyle.Damage // union of the damage of all elements
}

func (s Stats) String() string {
	return fmt.Sprintf("visited=%d matched=%d replaced=%d recascaded=%d cleared=%d snapshots=%d damage=%v",
		s.Visited, s.Matched, s.Replaced, s.Recascaded, s.Cleared, s.Snapshots, s.Damage)
}

// add sums up the stats of two passes.
func (s Stats) add(other Stats) Stats {
	s.Visited += other.Visited
	s.Matched += other.Matched
	s.Replaced += other.Replaced
	s.Recascaded += other.Recascaded
	s.Cleared += other.Cleared
	s.Snapshots += other.Snapshots
	s.Damage |= other.Damage
	return s
}

// counters are updated concurrently by the workers.
type counters struct {
	visited, matched, replaced, recascaded, cleared atomic.Int64
	damage                                          atomic.Uint32
}

func (c *counters) addDamage(d restyle.Damage) {
	c.damage.Or(uint32(d))
}

func (c *counters) stats(snapshots int) Stats {
	return Stats{
		Visited:    int(c.visited.Load()),
		Matched:    int(c.matched.Load()),
		Replaced:   int(c.replaced.Load()),
		Recascaded: int(c.recascaded.Load()),
		Cleared:    int(c.cleared.Load()),
		Snapshots:  snapshots,
		Damage:     restyle.Damage(c.damage.Load()),
	}
}
