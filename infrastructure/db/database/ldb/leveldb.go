package ldb

import (
	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDB defines a thin wrapper around leveldb.
type LevelDB struct {
	ldb *leveldb.DB

	// memStorage is set for in-memory databases, whose storage leveldb
	// does not close by itself.
	memStorage storage.Storage
}

var _ database.Engine = (*LevelDB)(nil)

// NewLevelDB opens a leveldb instance defined by the given path.
func NewLevelDB(path string, options *database.Options) (*LevelDB, error) {
	ldbOptions, err := Options(options)
	if err != nil {
		return nil, err
	}

	db := &LevelDB{}
	if options.InMemory {
		db.memStorage = storage.NewMemStorage()
		db.ldb, err = leveldb.Open(db.memStorage, ldbOptions)
	} else {
		db.ldb, err = leveldb.OpenFile(path, ldbOptions)
	}
	if err != nil {
		if db.memStorage != nil {
			_ = db.memStorage.Close()
		}
		// Corrupted databases are left to Repair.
		err = convertError(err)
		if database.IsCorruptionError(err) {
			log.Warnf("LevelDB corruption detected for path %s: %s", path, err)
		}
		return nil, err
	}
	return db, nil
}

// Close closes the leveldb instance.
func (db *LevelDB) Close() error {
	err := db.ldb.Close()
	if db.memStorage != nil {
		closeErr := db.memStorage.Close()
		if err == nil {
			err = closeErr
		}
	}
	return convertError(err)
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
func (db *LevelDB) Put(key, value []byte, options *database.WriteOptions) error {
	return convertError(db.ldb.Put(key, value, writeOptions(options)))
}

// Get gets the value for the given key. It returns
// ErrNotFound if the given key does not exist.
func (db *LevelDB) Get(key []byte, options *database.ReadOptions) ([]byte, error) {
	data, err := db.ldb.Get(key, readOptions(options))
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound,
				"key %x not found", key)
		}
		return nil, convertError(err)
	}
	return data, nil
}

// Delete deletes the value for the given key. Will not
// return an error if the key doesn't exist.
func (db *LevelDB) Delete(key []byte, options *database.WriteOptions) error {
	return convertError(db.ldb.Delete(key, writeOptions(options)))
}

// NewRawCursor creates a new cursor over the whole database.
func (db *LevelDB) NewRawCursor(options *database.ReadOptions) (database.RawCursor, error) {
	return newLevelDBCursor(db.ldb.NewIterator(nil, readOptions(options))), nil
}

// Snapshot pins the current state of the database.
func (db *LevelDB) Snapshot() (database.EngineSnapshot, error) {
	snapshot, err := db.ldb.GetSnapshot()
	if err != nil {
		return nil, convertError(err)
	}
	return &levelDBSnapshot{snapshot: snapshot}, nil
}

// ApplyBatch writes the given operations atomically.
func (db *LevelDB) ApplyBatch(operations []database.Operation, options *database.WriteOptions) error {
	batch := new(leveldb.Batch)
	for _, operation := range operations {
		switch operation.Type {
		case database.OperationPut:
			batch.Put(operation.Key, operation.Value)
		case database.OperationDelete:
			batch.Delete(operation.Key)
		default:
			return errors.Wrapf(database.ErrInvalidArgument,
				"unknown operation type %d", operation.Type)
		}
	}
	return convertError(db.ldb.Write(batch, writeOptions(options)))
}

// EstimateSizes returns the approximate file system space
// used by the given ranges.
func (db *LevelDB) EstimateSizes(ranges []database.KeyRange) ([]uint64, error) {
	ldbRanges := make([]util.Range, len(ranges))
	for i, keyRange := range ranges {
		limit := keyRange.Limit
		if limit == nil {
			// leveldb reads a nil limit as the empty key
			var err error
			limit, err = db.keyAfterLast()
			if err != nil {
				return nil, err
			}
		}
		ldbRanges[i] = util.Range{Start: keyRange.Start, Limit: limit}
	}

	sizes, err := db.ldb.SizeOf(ldbRanges)
	if err != nil {
		return nil, convertError(err)
	}
	result := make([]uint64, len(sizes))
	for i, size := range sizes {
		if size > 0 {
			result[i] = uint64(size)
		}
	}
	return result, nil
}

// keyAfterLast returns a key sorting after every key currently in the
// database under the bytewise order, or an empty key if the database is
// empty.
func (db *LevelDB) keyAfterLast() ([]byte, error) {
	iterator := db.ldb.NewIterator(nil, nil)
	defer iterator.Release()

	if !iterator.Last() {
		return []byte{}, convertError(iterator.Error())
	}
	last := iterator.Key()
	key := make([]byte, len(last)+1)
	copy(key, last)
	return key, nil
}

// Property returns the value of a leveldb property, such as
// "leveldb.stats".
func (db *LevelDB) Property(name string) ([]byte, error) {
	value, err := db.ldb.GetProperty(name)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound,
				"unknown property %s", name)
		}
		return nil, convertError(err)
	}
	return []byte(value), nil
}

// Compact compacts the given key range. nil means unbounded.
func (db *LevelDB) Compact(start, limit []byte) error {
	return convertError(db.ldb.CompactRange(util.Range{Start: start, Limit: limit}))
}
