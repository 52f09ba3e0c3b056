package pebbledb

import (
	"bytes"
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
)

const (
	engineName = "pebble"

	// memDirectory is where in-memory databases live within their
	// in-memory file system.
	memDirectory = "db"

	// MetricsProperty is the property holding pebble's metrics report.
	MetricsProperty = "pebble.metrics"
)

// PebbleDB defines a thin wrapper around pebble.
type PebbleDB struct {
	db  *pebble.DB
	cmp func(a, b []byte) int
}

var _ database.Engine = (*PebbleDB)(nil)

// NewPebbleDB opens a pebble instance defined by the given path.
func NewPebbleDB(path string, options *database.Options) (*PebbleDB, error) {
	pebbleOptions, cache, err := Options(options)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		defer cache.Unref()
	}
	if options.InMemory {
		path = memDirectory
	}

	db, err := pebble.Open(path, pebbleOptions)
	if err != nil {
		err = convertError(err)
		if database.IsCorruptionError(err) {
			log.Warnf("Pebble corruption detected for path %s: %s", path, err)
		}
		return nil, err
	}
	return &PebbleDB{db: db, cmp: pebbleOptions.Comparer.Compare}, nil
}

// Close closes the pebble instance.
func (p *PebbleDB) Close() error {
	return convertError(p.db.Close())
}

// Get gets the value for the given key. It returns
// ErrNotFound if the given key does not exist.
func (p *PebbleDB) Get(key []byte, options *database.ReadOptions) ([]byte, error) {
	logIgnoredReadOptions(options)
	return get(p.db.Get, key)
}

func get(getFunc func(key []byte) ([]byte, io.Closer, error), key []byte) ([]byte, error) {
	value, closer, err := getFunc(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound,
				"key %x not found", key)
		}
		return nil, convertError(err)
	}
	defer closer.Close()

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
func (p *PebbleDB) Put(key, value []byte, options *database.WriteOptions) error {
	return convertError(p.db.Set(key, value, writeOptions(options)))
}

// Delete deletes the value for the given key.
func (p *PebbleDB) Delete(key []byte, options *database.WriteOptions) error {
	return convertError(p.db.Delete(key, writeOptions(options)))
}

// NewRawCursor creates a new cursor over the whole database.
func (p *PebbleDB) NewRawCursor(options *database.ReadOptions) (database.RawCursor, error) {
	logIgnoredReadOptions(options)
	iterator, err := p.db.NewIter(nil)
	if err != nil {
		return nil, convertError(err)
	}
	return newPebbleCursor(iterator), nil
}

// Snapshot pins the current state of the database.
func (p *PebbleDB) Snapshot() (database.EngineSnapshot, error) {
	return &pebbleSnapshot{snapshot: p.db.NewSnapshot()}, nil
}

// ApplyBatch writes the given operations atomically.
func (p *PebbleDB) ApplyBatch(operations []database.Operation, options *database.WriteOptions) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	for _, operation := range operations {
		var err error
		switch operation.Type {
		case database.OperationPut:
			err = batch.Set(operation.Key, operation.Value, nil)
		case database.OperationDelete:
			err = batch.Delete(operation.Key, nil)
		default:
			return errors.Wrapf(database.ErrInvalidArgument,
				"unknown operation type %d", operation.Type)
		}
		if err != nil {
			return convertError(err)
		}
	}
	return convertError(batch.Commit(writeOptions(options)))
}

// EstimateSizes returns the approximate disk space used
// by the given ranges.
func (p *PebbleDB) EstimateSizes(ranges []database.KeyRange) ([]uint64, error) {
	sizes := make([]uint64, len(ranges))
	for i, keyRange := range ranges {
		start, limit, empty, err := p.resolveRange(keyRange.Start, keyRange.Limit)
		if err != nil {
			return nil, err
		}
		if empty {
			continue
		}
		sizes[i], err = p.db.EstimateDiskUsage(start, limit)
		if err != nil {
			return nil, convertError(err)
		}
	}
	return sizes, nil
}

// Property returns the value of a pebble property. The
// only supported property is MetricsProperty.
func (p *PebbleDB) Property(name string) ([]byte, error) {
	if name != MetricsProperty {
		return nil, errors.Wrapf(database.ErrNotFound,
			"unknown property %s", name)
	}
	return []byte(p.db.Metrics().String()), nil
}

// Compact compacts the given key range. nil means unbounded.
func (p *PebbleDB) Compact(start, limit []byte) error {
	start, limit, empty, err := p.resolveRange(start, limit)
	if err != nil {
		return err
	}
	if empty {
		return nil
	}
	return convertError(p.db.Compact(start, limit, false))
}

// resolveRange replaces the unbounded sides of [start, limit) with the
// edges of the data currently in the database. It reports whether the
// range is empty.
func (p *PebbleDB) resolveRange(start, limit []byte) (resolvedStart, resolvedLimit []byte, empty bool, err error) {
	if start == nil || limit == nil {
		iterator, err := p.db.NewIter(nil)
		if err != nil {
			return nil, nil, false, convertError(err)
		}
		defer iterator.Close()

		if start == nil {
			if !iterator.First() {
				return nil, nil, true, convertError(iterator.Error())
			}
			start = bytes.Clone(iterator.Key())
		}
		if limit == nil {
			if !iterator.Last() {
				return nil, nil, true, convertError(iterator.Error())
			}
			limit = append(bytes.Clone(iterator.Key()), 0)
		}
	}
	return start, limit, p.cmp(start, limit) >= 0, nil
}
