package pebbledb

import (
	"github.com/cockroachdb/pebble"
	"github.com/kaspanet/ldbview/infrastructure/db/database"
)

// newComparer adapts a database.KeyOrder to a pebble comparer. Custom
// orders never shorten keys and have no abbreviated form, since both depend
// on the order.
func newComparer(order database.KeyOrder) *pebble.Comparer {
	if order == database.BytewiseOrder {
		return pebble.DefaultComparer
	}

	comparer := *pebble.DefaultComparer
	comparer.Name = order.Name()
	comparer.Compare = order.Compare
	comparer.Equal = func(a, b []byte) bool {
		return order.Compare(a, b) == 0
	}
	comparer.AbbreviatedKey = func(key []byte) uint64 {
		return 0
	}
	comparer.Separator = func(dst, a, b []byte) []byte {
		return append(dst, a...)
	}
	comparer.Successor = func(dst, a []byte) []byte {
		return append(dst, a...)
	}
	comparer.ImmediateSuccessor = func(dst, a []byte) []byte {
		return immediateSuccessor(order, dst, a)
	}
	comparer.Split = func(a []byte) int {
		return len(a)
	}
	return &comparer
}

// immediateSuccessor returns a followed by a zero byte when the order sorts
// that key right after a, as bytewise-like orders do. Otherwise it returns
// a itself, so the result never sorts before a.
func immediateSuccessor(order database.KeyOrder, dst, a []byte) []byte {
	start := len(dst)
	dst = append(dst, a...)
	dst = append(dst, 0x00)
	if order.Compare(dst[start:], a) > 0 {
		return dst
	}
	return dst[:len(dst)-1]
}
