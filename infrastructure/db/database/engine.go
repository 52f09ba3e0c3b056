package database

// Reader is the read side of a storage engine, implemented by both the
// engine itself and its snapshots.
type Reader interface {
	// Get returns the value stored under key. It returns an error that
	// matches ErrNotFound if the key does not exist.
	Get(key []byte, options *ReadOptions) ([]byte, error)

	// NewRawCursor creates an unpositioned raw cursor over the whole
	// keyspace.
	NewRawCursor(options *ReadOptions) (RawCursor, error)
}

// Engine is the contract a storage driver implements. Every method may be
// called concurrently, except Close, which is called exactly once after
// every other call has returned.
//
// Errors returned by an engine must already be classified with
// NewStorageIOError, NewCorruptionError or ErrNotFound.
type Engine interface {
	Reader

	// Put sets the value for the given key, overwriting any previous value.
	Put(key, value []byte, options *WriteOptions) error

	// Delete removes the given key. Deleting a missing key is not an error.
	Delete(key []byte, options *WriteOptions) error

	// Snapshot pins the current state of the engine.
	Snapshot() (EngineSnapshot, error)

	// ApplyBatch applies all the given operations atomically, in order.
	ApplyBatch(operations []Operation, options *WriteOptions) error

	// EstimateSizes returns the approximate on-disk size of every given
	// range.
	EstimateSizes(ranges []KeyRange) ([]uint64, error)

	// Property returns the value of an engine-specific property, or an
	// error matching ErrNotFound if the engine does not know it.
	Property(name string) ([]byte, error)

	// Compact compacts the underlying storage for the given range. nil
	// means unbounded.
	Compact(start, limit []byte) error

	// Close releases the engine.
	Close() error
}

// EngineSnapshot is a read-only view of an engine pinned at one point in
// time.
type EngineSnapshot interface {
	Reader

	// Release frees the snapshot. It is safe to call more than once.
	Release()
}

// RawCursor is the primitive cursor an engine exposes over its ordered
// keyspace. Positioning methods return whether the cursor ended up on an
// element.
//
// The slices returned by Key and Value are only valid until the next
// positioning call.
type RawCursor interface {
	// Seek positions the cursor at the first key that is greater than or
	// equal to target.
	Seek(target []byte) bool

	// First positions the cursor at the first key.
	First() bool

	// Last positions the cursor at the last key.
	Last() bool

	// Next moves the cursor to the following key.
	Next() bool

	// Prev moves the cursor to the preceding key.
	Prev() bool

	// Valid reports whether the cursor is positioned at an element.
	Valid() bool

	Key() []byte
	Value() []byte

	// Error returns the error, if any, that made the cursor invalid.
	Error() error

	// Close releases the cursor. It is safe to call more than once.
	Close() error
}

// OperationType is the kind of a buffered batch operation.
type OperationType byte

// The operation types a Batch buffers.
const (
	OperationPut OperationType = iota
	OperationDelete
)

func (t OperationType) String() string {
	switch t {
	case OperationPut:
		return "put"
	case OperationDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Operation is a single buffered batch operation. Value is nil for deletes.
type Operation struct {
	Type  OperationType
	Key   []byte
	Value []byte
}
