package database

import (
	"github.com/kaspanet/ldbview/infrastructure/logger"
)

// DB is a handle to an open database. It is safe for concurrent use.
//
// Every object derived from a DB (cursors, snapshots, batches and prefix
// views) is bound to it: once the DB is closed, their methods return
// ErrHandleClosed.
type DB struct {
	engine Engine
	order  KeyOrder
	lc     *lifecycle
	view   view
}

// NewDB wraps an open engine whose keys are sorted by order. The DB takes
// ownership of the engine.
func NewDB(engine Engine, order KeyOrder) *DB {
	if order == nil {
		order = BytewiseOrder
	}
	lc := newLifecycle()
	return &DB{
		engine: engine,
		order:  order,
		lc:     lc,
		view: view{
			lc:     lc,
			epoch:  lc.currentEpoch(),
			reader: engine,
			order:  order,
		},
	}
}

// KeyOrder returns the key order of the database.
func (db *DB) KeyOrder() KeyOrder {
	return db.order
}

// Get returns the value stored under key, or an error matching ErrNotFound
// if there is none.
func (db *DB) Get(key []byte, options *ReadOptions) ([]byte, error) {
	return db.view.get(key, options)
}

// Has returns true if the database contains the given key.
func (db *DB) Has(key []byte, options *ReadOptions) (bool, error) {
	return db.view.has(key, options)
}

// Put sets the value for the given key. It overwrites any previous value
// for that key.
func (db *DB) Put(key, value []byte, options *WriteOptions) error {
	return db.put(db.view.epoch, key, value, options)
}

// Delete deletes the value for the given key. Deleting a missing key does
// nothing.
func (db *DB) Delete(key []byte, options *WriteOptions) error {
	return db.delete(db.view.epoch, key, options)
}

func (db *DB) put(epoch uint64, key, value []byte, options *WriteOptions) error {
	release, err := db.lc.acquire(epoch)
	if err != nil {
		return err
	}
	defer release()

	if value == nil {
		value = []byte{}
	}
	return db.engine.Put(key, value, options)
}

func (db *DB) delete(epoch uint64, key []byte, options *WriteOptions) error {
	release, err := db.lc.acquire(epoch)
	if err != nil {
		return err
	}
	defer release()

	return db.engine.Delete(key, options)
}

// Iterate creates a cursor over the keys selected by r.
func (db *DB) Iterate(r Range, direction Direction, projection Projection) (*Cursor, error) {
	return db.view.iterate(r, direction, projection, nil)
}

// IterateWithOptions is Iterate with explicit read options.
func (db *DB) IterateWithOptions(r Range, direction Direction, projection Projection,
	options *ReadOptions) (*Cursor, error) {

	return db.view.iterate(r, direction, projection, options)
}

// Snapshot pins the current state of the database. The snapshot must be
// closed once it is no longer needed.
func (db *DB) Snapshot() (*SnapshotView, error) {
	return newSnapshotView(db, nil)
}

// NewBatch creates an empty batch writing to the database.
func (db *DB) NewBatch(options *BatchOptions) (*Batch, error) {
	return newBatch(db, nil, options)
}

// Update runs fn with a fresh batch and writes the batch once fn returns.
// See BatchOptions.Transactional for what happens when fn fails.
func (db *DB) Update(options *BatchOptions, fn func(batch *Batch) error) error {
	batch, err := db.NewBatch(options)
	if err != nil {
		return err
	}
	return batch.run(fn)
}

// SubKeyspace returns a view of the keys beginning with prefix, with the
// prefix removed.
func (db *DB) SubKeyspace(prefix []byte) *PrefixView {
	return &PrefixView{
		db:   db,
		view: db.view.sub(prefix),
	}
}

// EstimateSize returns the approximate on-disk size of the keys in
// [start, limit). nil means unbounded.
func (db *DB) EstimateSize(start, limit []byte) (uint64, error) {
	sizes, err := db.EstimateSizes([]KeyRange{{Start: start, Limit: limit}})
	if err != nil {
		return 0, err
	}
	return sizes[0], nil
}

// EstimateSizes returns the approximate on-disk size of every given range.
func (db *DB) EstimateSizes(ranges []KeyRange) ([]uint64, error) {
	release, err := db.lc.acquire(db.view.epoch)
	if err != nil {
		return nil, err
	}
	defer release()

	return db.engine.EstimateSizes(ranges)
}

// Property returns the value of an engine-specific property. It returns an
// error matching ErrNotFound for properties the engine does not know.
func (db *DB) Property(name string) ([]byte, error) {
	release, err := db.lc.acquire(db.view.epoch)
	if err != nil {
		return nil, err
	}
	defer release()

	return db.engine.Property(name)
}

// Compact compacts the underlying storage for the keys in [start, limit].
// nil means unbounded.
func (db *DB) Compact(start, limit []byte) error {
	release, err := db.lc.acquire(db.view.epoch)
	if err != nil {
		return err
	}
	defer release()

	onEnd := logger.LogAndMeasureExecutionTime(log, "Compact")
	defer onEnd()

	return db.engine.Compact(start, limit)
}

// Close closes the database. Outstanding cursors and snapshots are released
// first. Closing a closed database does nothing.
func (db *DB) Close() error {
	return db.lc.close(func() error {
		log.Debugf("Closing database")
		return db.engine.Close()
	})
}

// Closed returns whether the database has been closed.
func (db *DB) Closed() bool {
	return !db.lc.isValid(db.view.epoch)
}
