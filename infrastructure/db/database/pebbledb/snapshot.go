package pebbledb

import (
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/kaspanet/ldbview/infrastructure/db/database"
)

type pebbleSnapshot struct {
	snapshot    *pebble.Snapshot
	releaseOnce sync.Once
}

func (s *pebbleSnapshot) Get(key []byte, options *database.ReadOptions) ([]byte, error) {
	logIgnoredReadOptions(options)
	return get(s.snapshot.Get, key)
}

func (s *pebbleSnapshot) NewRawCursor(options *database.ReadOptions) (database.RawCursor, error) {
	logIgnoredReadOptions(options)
	iterator, err := s.snapshot.NewIter(nil)
	if err != nil {
		return nil, convertError(err)
	}
	return newPebbleCursor(iterator), nil
}

func (s *pebbleSnapshot) Release() {
	s.releaseOnce.Do(func() {
		err := s.snapshot.Close()
		if err != nil {
			log.Warnf("Failed releasing a pebble snapshot: %s", err)
		}
	})
}
