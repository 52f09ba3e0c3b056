package database

import "strings"

// DefaultEngine is the driver used when Options.Engine is empty.
const DefaultEngine = "leveldb"

// Compression is the block compression algorithm requested from the engine.
type Compression int

// The compression algorithms a database may be opened with. Not every driver
// supports every algorithm.
const (
	DefaultCompression Compression = iota
	NoCompression
	SnappyCompression
	ZstdCompression
)

var compressionNames = map[Compression]string{
	DefaultCompression: "default",
	NoCompression:      "none",
	SnappyCompression:  "snappy",
	ZstdCompression:    "zstd",
}

func (c Compression) String() string {
	name, ok := compressionNames[c]
	if !ok {
		return "unknown"
	}
	return name
}

// ParseCompression returns the Compression named by s.
func ParseCompression(s string) (Compression, error) {
	for compression, name := range compressionNames {
		if strings.EqualFold(s, name) {
			return compression, nil
		}
	}
	return 0, invalidArgumentf("unknown compression %q", s)
}

// Options configures how a database is opened. Zero sizes leave the choice
// to the engine.
type Options struct {
	// Engine is the name of the registered driver to open the database
	// with. Empty means DefaultEngine.
	Engine string

	// InMemory opens a database that lives in memory only. The path is
	// ignored.
	InMemory bool

	CreateIfMissing bool
	ErrorIfExists   bool
	ParanoidChecks  bool

	WriteBufferSize      int
	MaxOpenFiles         int
	LRUCacheSize         int
	BlockSize            int
	BlockRestartInterval int
	Compression          Compression
	BloomFilterBits      int

	// Comparator is the key order of the database. nil means
	// BytewiseOrder.
	Comparator KeyOrder
}

// DefaultOptions returns the options used when Open is given nil options.
func DefaultOptions() *Options {
	return &Options{
		Engine:          DefaultEngine,
		CreateIfMissing: true,
	}
}

// Validate checks the options for values no engine accepts.
func (o *Options) Validate() error {
	sizes := []struct {
		name  string
		value int
	}{
		{"write buffer size", o.WriteBufferSize},
		{"max open files", o.MaxOpenFiles},
		{"LRU cache size", o.LRUCacheSize},
		{"block size", o.BlockSize},
		{"block restart interval", o.BlockRestartInterval},
		{"bloom filter bits", o.BloomFilterBits},
	}
	for _, size := range sizes {
		if size.value < 0 {
			return invalidArgumentf("%s cannot be negative, got %d", size.name, size.value)
		}
	}
	if _, ok := compressionNames[o.Compression]; !ok {
		return invalidArgumentf("unknown compression %d", o.Compression)
	}
	return nil
}

// KeyOrder returns the configured key order, or BytewiseOrder if none is
// set.
func (o *Options) KeyOrder() KeyOrder {
	if o.Comparator == nil {
		return BytewiseOrder
	}
	return o.Comparator
}

func (o *Options) engineName() string {
	if o.Engine == "" {
		return DefaultEngine
	}
	return o.Engine
}

// ReadOptions configures a read. nil means the zero value.
type ReadOptions struct {
	// VerifyChecksums asks the engine to verify the checksums of every
	// block it reads.
	VerifyChecksums bool

	// DontFillCache keeps the blocks read out of the engine's cache.
	DontFillCache bool
}

// WriteOptions configures a write. nil means the zero value.
type WriteOptions struct {
	// Sync makes the write durable before it returns.
	Sync bool
}

// BatchOptions configures a Batch. nil means the zero value.
type BatchOptions struct {
	// Sync makes every Write of the batch durable before it returns.
	Sync bool

	// Transactional makes Update discard the buffered operations instead
	// of writing them when its function fails.
	Transactional bool
}
