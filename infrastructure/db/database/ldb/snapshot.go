package ldb

import (
	"sync"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

type levelDBSnapshot struct {
	snapshot    *leveldb.Snapshot
	releaseOnce sync.Once
}

func (s *levelDBSnapshot) Get(key []byte, options *database.ReadOptions) ([]byte, error) {
	data, err := s.snapshot.Get(key, readOptions(options))
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound,
				"key %x not found", key)
		}
		return nil, convertError(err)
	}
	return data, nil
}

func (s *levelDBSnapshot) NewRawCursor(options *database.ReadOptions) (database.RawCursor, error) {
	return newLevelDBCursor(s.snapshot.NewIterator(nil, readOptions(options))), nil
}

func (s *levelDBSnapshot) Release() {
	s.releaseOnce.Do(s.snapshot.Release)
}
