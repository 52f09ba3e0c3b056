package pebbledb

import (
	"github.com/cockroachdb/pebble"
	"github.com/kaspanet/ldbview/infrastructure/db/database"
)

// PebbleCursor is a thin wrapper around native pebble iterators.
type PebbleCursor struct {
	iterator *pebble.Iterator
	value    []byte
	err      error
	isClosed bool
}

var _ database.RawCursor = (*PebbleCursor)(nil)

func newPebbleCursor(iterator *pebble.Iterator) *PebbleCursor {
	return &PebbleCursor{iterator: iterator}
}

// Seek moves the iterator to the first key that is greater
// than or equal to the given key.
func (c *PebbleCursor) Seek(target []byte) bool {
	return c.position(func() bool { return c.iterator.SeekGE(target) })
}

// First moves the iterator to the first key.
func (c *PebbleCursor) First() bool {
	return c.position(c.iterator.First)
}

// Last moves the iterator to the last key.
func (c *PebbleCursor) Last() bool {
	return c.position(c.iterator.Last)
}

// Next moves the iterator to the next key.
func (c *PebbleCursor) Next() bool {
	return c.position(c.iterator.Next)
}

// Prev moves the iterator to the previous key.
func (c *PebbleCursor) Prev() bool {
	return c.position(c.iterator.Prev)
}

// position runs a positioning call and loads the value of the element it
// lands on, since pebble may fail to read it.
func (c *PebbleCursor) position(move func() bool) bool {
	if c.isClosed {
		return false
	}
	c.value, c.err = nil, nil
	if !move() {
		return false
	}
	c.value, c.err = c.iterator.ValueAndErr()
	return c.err == nil
}

// Valid returns whether the iterator is at a key.
func (c *PebbleCursor) Valid() bool {
	return !c.isClosed && c.err == nil && c.iterator.Valid()
}

// Key returns the key of the current element.
func (c *PebbleCursor) Key() []byte {
	if !c.Valid() {
		return nil
	}
	return c.iterator.Key()
}

// Value returns the value of the current element.
func (c *PebbleCursor) Value() []byte {
	if !c.Valid() {
		return nil
	}
	return c.value
}

// Error returns the error that made the iterator invalid, if any.
func (c *PebbleCursor) Error() error {
	if c.isClosed {
		return database.ErrHandleClosed
	}
	if c.err != nil {
		return convertError(c.err)
	}
	return convertError(c.iterator.Error())
}

// Close releases the iterator.
func (c *PebbleCursor) Close() error {
	if c.isClosed {
		return nil
	}
	c.isClosed = true
	return convertError(c.iterator.Close())
}
