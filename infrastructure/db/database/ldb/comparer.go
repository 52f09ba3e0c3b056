package ldb

import (
	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/syndtr/goleveldb/leveldb/comparer"
)

// keyOrderComparer adapts a database.KeyOrder to leveldb's comparer.
// Keys are never shortened, since shortening depends on the order.
type keyOrderComparer struct {
	order database.KeyOrder
}

var _ comparer.Comparer = (*keyOrderComparer)(nil)

func newComparer(order database.KeyOrder) comparer.Comparer {
	if order == database.BytewiseOrder {
		return comparer.DefaultComparer
	}
	return &keyOrderComparer{order: order}
}

func (c *keyOrderComparer) Compare(a, b []byte) int {
	return c.order.Compare(a, b)
}

func (c *keyOrderComparer) Name() string {
	return c.order.Name()
}

func (c *keyOrderComparer) Separator(dst, a, b []byte) []byte {
	return nil
}

func (c *keyOrderComparer) Successor(dst, b []byte) []byte {
	return nil
}
