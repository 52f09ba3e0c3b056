package database

import "bytes"

// BytewiseOrderName is the name of the default key order. It matches the
// name LevelDB stores for its built-in comparator, so databases created
// with the default order stay readable by other LevelDB implementations.
const BytewiseOrderName = "leveldb.BytewiseComparator"

// KeyOrder is the total order over keys used by a database. Every bound
// comparison, seek and prefix computation made by this package goes
// through the database's KeyOrder.
//
// The name identifies the order on disk: a database must always be opened
// with an order of the same name and the same behavior. A mismatch is a
// caller error that cannot always be detected.
type KeyOrder interface {
	// Compare returns -1, 0 or +1 depending on whether a is less than,
	// equal to or greater than b.
	Compare(a, b []byte) int

	// Name returns the stable name of the order.
	Name() string
}

// BytewiseOrder orders keys lexicographically by their bytes.
var BytewiseOrder KeyOrder = bytewiseOrder{}

type bytewiseOrder struct{}

func (bytewiseOrder) Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

func (bytewiseOrder) Name() string {
	return BytewiseOrderName
}

type funcOrder struct {
	name    string
	compare func(a, b []byte) int
}

func (o *funcOrder) Compare(a, b []byte) int {
	switch result := o.compare(a, b); {
	case result < 0:
		return -1
	case result > 0:
		return 1
	default:
		return 0
	}
}

func (o *funcOrder) Name() string {
	return o.name
}

// NewKeyOrder creates a KeyOrder from a comparison function. compare may
// return any negative or positive number; the result is normalized to -1
// and +1.
func NewKeyOrder(name string, compare func(a, b []byte) int) (KeyOrder, error) {
	if name == "" {
		return nil, invalidArgumentf("key order name cannot be empty")
	}
	if compare == nil {
		return nil, invalidArgumentf("key order %s has no compare function", name)
	}
	return &funcOrder{name: name, compare: compare}, nil
}
