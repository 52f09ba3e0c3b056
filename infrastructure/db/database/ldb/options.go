package ldb

import (
	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

var (
	defaultOptions = opt.Options{
		DisableSeeksCompaction: true,
	}

	// Options is a function that returns a leveldb
	// opt.Options struct for opening a database.
	// It's defined as a variable for the sake of testing.
	Options = func(options *database.Options) (*opt.Options, error) {
		ldbOptions := defaultOptions

		ldbOptions.ErrorIfMissing = !options.CreateIfMissing && !options.InMemory
		ldbOptions.ErrorIfExist = options.ErrorIfExists
		if options.ParanoidChecks {
			ldbOptions.Strict = opt.StrictAll
		}

		ldbOptions.WriteBuffer = options.WriteBufferSize
		ldbOptions.OpenFilesCacheCapacity = options.MaxOpenFiles
		ldbOptions.BlockCacheCapacity = options.LRUCacheSize
		ldbOptions.BlockSize = options.BlockSize
		ldbOptions.BlockRestartInterval = options.BlockRestartInterval

		switch options.Compression {
		case database.DefaultCompression:
			ldbOptions.Compression = opt.DefaultCompression
		case database.NoCompression:
			ldbOptions.Compression = opt.NoCompression
		case database.SnappyCompression:
			ldbOptions.Compression = opt.SnappyCompression
		default:
			return nil, errors.Wrapf(database.ErrInvalidArgument,
				"leveldb does not support %s compression", options.Compression)
		}

		if options.BloomFilterBits > 0 {
			ldbOptions.Filter = filter.NewBloomFilter(options.BloomFilterBits)
		}
		if options.Comparator != nil {
			ldbOptions.Comparer = newComparer(options.Comparator)
		}
		return &ldbOptions, nil
	}
)

func readOptions(options *database.ReadOptions) *opt.ReadOptions {
	if options == nil {
		return nil
	}
	ldbOptions := &opt.ReadOptions{
		DontFillCache: options.DontFillCache,
	}
	if options.VerifyChecksums {
		ldbOptions.Strict = opt.StrictBlockChecksum
	}
	return ldbOptions
}

func writeOptions(options *database.WriteOptions) *opt.WriteOptions {
	if options == nil {
		return nil
	}
	return &opt.WriteOptions{
		Sync: options.Sync,
	}
}
