package ldb

import (
	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/syndtr/goleveldb/leveldb/iterator"
)

// LevelDBCursor is a thin wrapper around native leveldb iterators.
type LevelDBCursor struct {
	ldbIterator iterator.Iterator
	isClosed    bool
}

var _ database.RawCursor = (*LevelDBCursor)(nil)

func newLevelDBCursor(ldbIterator iterator.Iterator) *LevelDBCursor {
	return &LevelDBCursor{ldbIterator: ldbIterator}
}

// Seek moves the iterator to the first key that is greater
// than or equal to the given key.
func (c *LevelDBCursor) Seek(target []byte) bool {
	return !c.isClosed && c.ldbIterator.Seek(target)
}

// First moves the iterator to the first key.
func (c *LevelDBCursor) First() bool {
	return !c.isClosed && c.ldbIterator.First()
}

// Last moves the iterator to the last key.
func (c *LevelDBCursor) Last() bool {
	return !c.isClosed && c.ldbIterator.Last()
}

// Next moves the iterator to the next key.
func (c *LevelDBCursor) Next() bool {
	return !c.isClosed && c.ldbIterator.Next()
}

// Prev moves the iterator to the previous key.
func (c *LevelDBCursor) Prev() bool {
	return !c.isClosed && c.ldbIterator.Prev()
}

// Valid returns whether the iterator is at a key.
func (c *LevelDBCursor) Valid() bool {
	return !c.isClosed && c.ldbIterator.Valid()
}

// Key returns the key of the current element.
func (c *LevelDBCursor) Key() []byte {
	if c.isClosed {
		return nil
	}
	return c.ldbIterator.Key()
}

// Value returns the value of the current element.
func (c *LevelDBCursor) Value() []byte {
	if c.isClosed {
		return nil
	}
	return c.ldbIterator.Value()
}

// Error returns the error that made the iterator invalid, if any.
func (c *LevelDBCursor) Error() error {
	if c.isClosed {
		return database.ErrHandleClosed
	}
	return convertError(c.ldbIterator.Error())
}

// Close releases the iterator.
func (c *LevelDBCursor) Close() error {
	if c.isClosed {
		return nil
	}
	c.isClosed = true
	c.ldbIterator.Release()
	return nil
}
