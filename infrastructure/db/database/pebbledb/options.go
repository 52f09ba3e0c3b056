package pebbledb

import (
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
)

const numLevels = 7

// Options converts database options to pebble options. The returned cache,
// if any, must be unreferenced once the database is open.
func Options(options *database.Options) (*pebble.Options, *pebble.Cache, error) {
	compression, err := compression(options.Compression)
	if err != nil {
		return nil, nil, err
	}

	pebbleOptions := &pebble.Options{
		ErrorIfExists:    options.ErrorIfExists,
		ErrorIfNotExists: !options.CreateIfMissing && !options.InMemory,
		MaxOpenFiles:     options.MaxOpenFiles,
		MemTableSize:     uint64(options.WriteBufferSize),
		Comparer:         newComparer(options.KeyOrder()),
		Logger:           pebbleLogger{},
	}
	if options.InMemory {
		pebbleOptions.FS = vfs.NewMem()
	}

	var cache *pebble.Cache
	if options.LRUCacheSize > 0 {
		cache = pebble.NewCache(int64(options.LRUCacheSize))
		pebbleOptions.Cache = cache
	}

	pebbleOptions.Levels = make([]pebble.LevelOptions, numLevels)
	for i := range pebbleOptions.Levels {
		level := &pebbleOptions.Levels[i]
		level.BlockSize = options.BlockSize
		level.BlockRestartInterval = options.BlockRestartInterval
		level.Compression = compression
		if options.BloomFilterBits > 0 {
			level.FilterPolicy = bloom.FilterPolicy(options.BloomFilterBits)
		}
	}
	if options.ParanoidChecks {
		log.Debugf("Pebble always verifies checksums; paranoid checks add nothing")
	}

	return pebbleOptions.EnsureDefaults(), cache, nil
}

func compression(compression database.Compression) (pebble.Compression, error) {
	switch compression {
	case database.DefaultCompression:
		return pebble.DefaultCompression, nil
	case database.NoCompression:
		return pebble.NoCompression, nil
	case database.SnappyCompression:
		return pebble.SnappyCompression, nil
	case database.ZstdCompression:
		return pebble.ZstdCompression, nil
	default:
		return 0, errors.Wrapf(database.ErrInvalidArgument,
			"pebble does not support %s compression", compression)
	}
}

func writeOptions(options *database.WriteOptions) *pebble.WriteOptions {
	if options != nil && options.Sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

var ignoredReadOptionsOnce sync.Once

// logIgnoredReadOptions notes, the first time it happens, that pebble has
// no per-read counterpart for the requested read options. It returns
// whether it logged.
func logIgnoredReadOptions(options *database.ReadOptions) (logged bool) {
	if options == nil || (!options.VerifyChecksums && !options.DontFillCache) {
		return false
	}
	ignoredReadOptionsOnce.Do(func() {
		log.Debugf("Pebble ignores read options (verify checksums: %t, don't fill cache: %t); "+
			"it always verifies block checksums", options.VerifyChecksums, options.DontFillCache)
		logged = true
	})
	return logged
}
