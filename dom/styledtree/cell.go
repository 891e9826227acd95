package styledtree

import (
	"sync/atomic"

	"github.com/npillmayer/restyle/dom/style/restyle"
	"github.com/npillmayer/restyle/dom/styledata"
)

// ElementDataCell guards the element data of a node with a borrow flag,
// checked at runtime: any number of shared borrows, or one exclusive borrow.
//
// The cell does not block. Conflicting borrows are a bug and panic.
type ElementDataCell struct {
	borrow atomic.Int32 // > 0: shared borrows, -1: exclusive borrow
	data   *styledata.ElementData
}

// Borrow borrows the element data for reading. data is nil if the element
// has no data. Clients must call release when done.
func (c *ElementDataCell) Borrow() (data *styledata.ElementData, release func()) {
	for {
		b := c.borrow.Load()
		assertThat(b >= 0, "element data already mutably borrowed")
		if c.borrow.CompareAndSwap(b, b+1) {
			break
		}
	}
	return c.data, func() { c.borrow.Add(-1) }
}

// BorrowMut borrows the element data exclusively. data is nil if the element
// has no data. Clients must call release when done.
func (c *ElementDataCell) BorrowMut() (data *styledata.ElementData, release func()) {
	c.lock()
	return c.data, c.unlock
}

// Ensure borrows the element data exclusively, creating it if absent.
func (c *ElementDataCell) Ensure() (data *styledata.ElementData, release func()) {
	c.lock()
	if c.data == nil {
		c.data = styledata.NewElementData(nil)
	}
	return c.data, c.unlock
}

// Clear drops the element data. It returns the backing snapshots of the
// data, if any.
func (c *ElementDataCell) Clear() []*restyle.Snapshot {
	c.lock()
	defer c.unlock()
	if c.data == nil {
		return nil
	}
	snap := c.data.ClearStyles()
	c.data = nil
	return snap
}

// HasData is true if the element has data.
func (c *ElementDataCell) HasData() bool {
	data, release := c.Borrow()
	defer release()
	return data != nil
}

func (c *ElementDataCell) lock() {
	assertThat(c.borrow.CompareAndSwap(0, -1), "element data already borrowed")
}

func (c *ElementDataCell) unlock() {
	c.borrow.Store(0)
}
