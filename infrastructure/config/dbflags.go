package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
)

// ReverseBytewiseOrderName is the name of the built-in key order that sorts
// keys by their bytes in descending order.
const ReverseBytewiseOrderName = "ldbview.ReverseBytewiseComparator"

var knownKeyOrders = map[string]database.KeyOrder{
	database.BytewiseOrderName: database.BytewiseOrder,
	ReverseBytewiseOrderName:   mustNewKeyOrder(ReverseBytewiseOrderName, func(a, b []byte) int { return bytes.Compare(b, a) }),
}

func mustNewKeyOrder(name string, compare func(a, b []byte) int) database.KeyOrder {
	order, err := database.NewKeyOrder(name, compare)
	if err != nil {
		panic(err)
	}
	return order
}

// DBFlags holds the options a database is opened with.
type DBFlags struct {
	ConfigFile string `long:"configfile" short:"C" description:"Path to an ini file holding any of these options"`

	DBPath   string `long:"db" short:"d" description:"Path to the database directory"`
	Engine   string `long:"engine" description:"Storage engine to open the database with" default:"leveldb"`
	InMemory bool   `long:"in-memory" description:"Use a database that lives in memory only"`

	CreateIfMissing bool `long:"create-if-missing" description:"Create the database if it does not exist"`
	ErrorIfExists   bool `long:"error-if-exists" description:"Fail if the database already exists"`
	ParanoidChecks  bool `long:"paranoid-checks" description:"Make the engine check its data aggressively"`

	WriteBufferSize      int    `long:"write-buffer-size" description:"Size in bytes of the in-memory write buffer (0 for the engine default)"`
	MaxOpenFiles         int    `long:"max-open-files" description:"Number of files the engine may keep open (0 for the engine default)"`
	LRUCacheSize         int    `long:"lru-cache-size" description:"Size in bytes of the block cache (0 for the engine default)"`
	BlockSize            int    `long:"block-size" description:"Approximate size in bytes of table blocks (0 for the engine default)"`
	BlockRestartInterval int    `long:"block-restart-interval" description:"Number of keys between restart points (0 for the engine default)"`
	Compression          string `long:"compression" description:"Block compression: default, none, snappy or zstd" default:"default"`
	BloomFilterBits      int    `long:"bloom-filter-bits" description:"Bits per key of the bloom filter (0 disables it)"`
	Comparator           string `long:"comparator" description:"Name of the key order of the database" default:"leveldb.BytewiseComparator"`
}

// LoadConfigFile parses the ini file named by --configfile, if any, into
// the options of parser. Options given on the command line should be parsed
// again afterwards so that they take precedence.
func (dbFlags *DBFlags) LoadConfigFile(parser *flags.Parser) error {
	if dbFlags.ConfigFile == "" {
		return nil
	}
	err := flags.NewIniParser(parser).ParseFile(dbFlags.ConfigFile)
	if err != nil {
		if _, ok := err.(*os.PathError); ok {
			return errors.Wrapf(err, "error reading config file %s", dbFlags.ConfigFile)
		}
		return ConvertParseError(errors.Wrapf(err, "error parsing config file %s", dbFlags.ConfigFile))
	}
	return nil
}

// ResolveOptions converts the flags to database options. It returns an
// error matching database.ErrInvalidArgument if any of them is invalid.
func (dbFlags *DBFlags) ResolveOptions() (*database.Options, error) {
	compression, err := database.ParseCompression(dbFlags.Compression)
	if err != nil {
		return nil, err
	}

	comparatorName := dbFlags.Comparator
	if comparatorName == "" {
		comparatorName = database.BytewiseOrderName
	}
	keyOrder, ok := knownKeyOrders[comparatorName]
	if !ok {
		return nil, errors.Wrapf(database.ErrInvalidArgument,
			"unknown comparator %s", comparatorName)
	}

	if dbFlags.DBPath == "" && !dbFlags.InMemory {
		return nil, errors.Wrapf(database.ErrInvalidArgument,
			"either --db or --in-memory must be set")
	}

	options := &database.Options{
		Engine:               dbFlags.Engine,
		InMemory:             dbFlags.InMemory,
		CreateIfMissing:      dbFlags.CreateIfMissing,
		ErrorIfExists:        dbFlags.ErrorIfExists,
		ParanoidChecks:       dbFlags.ParanoidChecks,
		WriteBufferSize:      dbFlags.WriteBufferSize,
		MaxOpenFiles:         dbFlags.MaxOpenFiles,
		LRUCacheSize:         dbFlags.LRUCacheSize,
		BlockSize:            dbFlags.BlockSize,
		BlockRestartInterval: dbFlags.BlockRestartInterval,
		Compression:          compression,
		BloomFilterBits:      dbFlags.BloomFilterBits,
		Comparator:           keyOrder,
	}
	err = options.Validate()
	if err != nil {
		return nil, err
	}
	return options, nil
}

// ConvertParseError marks go-flags errors caused by malformed option values
// as database.ErrInvalidArgument. Other errors are returned as-is.
func ConvertParseError(err error) error {
	var flagsErr *flags.Error
	if !errors.As(err, &flagsErr) {
		return err
	}
	switch flagsErr.Type {
	case flags.ErrMarshal, flags.ErrInvalidChoice, flags.ErrExpectedArgument:
		return errors.Wrapf(database.ErrInvalidArgument, "%s", err)
	default:
		return err
	}
}

// KnownKeyOrders returns the names of the key orders --comparator accepts.
func KnownKeyOrders() []string {
	names := make([]string, 0, len(knownKeyOrders))
	for name := range knownKeyOrders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (dbFlags *DBFlags) String() string {
	if dbFlags.InMemory {
		return fmt.Sprintf("in-memory %s database", dbFlags.Engine)
	}
	return fmt.Sprintf("%s database at %s", dbFlags.Engine, dbFlags.DBPath)
}
