package ldb

import (
	"bytes"
	"testing"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

func TestOptions(t *testing.T) {
	ldbOptions, err := Options(&database.Options{
		CreateIfMissing:      true,
		ParanoidChecks:       true,
		WriteBufferSize:      1 << 20,
		MaxOpenFiles:         64,
		LRUCacheSize:         8 << 20,
		BlockSize:            4096,
		BlockRestartInterval: 8,
		Compression:          database.NoCompression,
		BloomFilterBits:      10,
	})
	require.NoError(t, err)
	require.True(t, ldbOptions.DisableSeeksCompaction)
	require.False(t, ldbOptions.ErrorIfMissing)
	require.Equal(t, opt.StrictAll, ldbOptions.Strict)
	require.Equal(t, 1<<20, ldbOptions.WriteBuffer)
	require.Equal(t, 64, ldbOptions.OpenFilesCacheCapacity)
	require.Equal(t, 8<<20, ldbOptions.BlockCacheCapacity)
	require.Equal(t, 4096, ldbOptions.BlockSize)
	require.Equal(t, 8, ldbOptions.BlockRestartInterval)
	require.Equal(t, opt.NoCompression, ldbOptions.Compression)
	require.NotNil(t, ldbOptions.Filter)
	require.Nil(t, ldbOptions.Comparer)

	ldbOptions, err = Options(&database.Options{})
	require.NoError(t, err)
	require.True(t, ldbOptions.ErrorIfMissing)

	// The defaults are copied, never modified
	require.False(t, defaultOptions.ErrorIfMissing)

	_, err = Options(&database.Options{Compression: database.ZstdCompression})
	require.True(t, database.IsInvalidArgumentError(err))
}

func TestComparer(t *testing.T) {
	require.Equal(t, comparer.DefaultComparer, newComparer(database.BytewiseOrder))

	order, err := database.NewKeyOrder("test.Reverse", func(a, b []byte) int {
		return bytes.Compare(b, a)
	})
	require.NoError(t, err)
	cmp := newComparer(order)
	require.Equal(t, "test.Reverse", cmp.Name())
	require.Equal(t, -1, cmp.Compare([]byte("b"), []byte("a")))
	require.Nil(t, cmp.Separator(nil, []byte("a"), []byte("c")))
	require.Nil(t, cmp.Successor(nil, []byte("a")))

	// Borrowing the default comparer's name does not select it
	impostor, err := database.NewKeyOrder(database.BytewiseOrderName, func(a, b []byte) int {
		return bytes.Compare(b, a)
	})
	require.NoError(t, err)
	impostorCmp := newComparer(impostor)
	require.NotEqual(t, comparer.DefaultComparer, impostorCmp)
	require.Equal(t, 1, impostorCmp.Compare([]byte("a"), []byte("b")))
}

func TestOpenAndProperty(t *testing.T) {
	path := t.TempDir()

	ldb, err := NewLevelDB(path, &database.Options{CreateIfMissing: true})
	require.NoError(t, err)
	require.NoError(t, ldb.Put([]byte("key"), []byte("value"), &database.WriteOptions{Sync: true}))

	stats, err := ldb.Property("leveldb.stats")
	require.NoError(t, err)
	require.NotEmpty(t, stats)
	_, err = ldb.Property("leveldb.unknown")
	require.True(t, database.IsNotFoundError(err))

	sizes, err := ldb.EstimateSizes([]database.KeyRange{{Start: []byte("zzz")}})
	require.NoError(t, err)
	require.Equal(t, []uint64{0}, sizes)
	require.NoError(t, ldb.Close())

	_, err = NewLevelDB(path, &database.Options{ErrorIfExists: true})
	require.Error(t, err)

	err = Destroy(path, &database.Options{})
	require.NoError(t, err)
}

func TestApplyBatch(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestApplyBatch")
	defer teardownFunc()

	err := ldb.ApplyBatch([]database.Operation{
		{Type: database.OperationPut, Key: []byte("a"), Value: []byte("1")},
		{Type: database.OperationPut, Key: []byte("b"), Value: []byte("2")},
		{Type: database.OperationDelete, Key: []byte("a")},
	}, nil)
	require.NoError(t, err)

	_, err = ldb.Get([]byte("a"), nil)
	require.True(t, database.IsNotFoundError(err))
	value, err := ldb.Get([]byte("b"), &database.ReadOptions{DontFillCache: true})
	require.NoError(t, err)
	require.Equal(t, []byte("2"), value)

	err = ldb.ApplyBatch([]database.Operation{{Type: database.OperationType(9), Key: []byte("c")}}, nil)
	require.True(t, database.IsInvalidArgumentError(err))
}
