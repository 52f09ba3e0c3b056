package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/ldbview/infrastructure/config"
	"github.com/kaspanet/ldbview/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	getSubCmd      = "get"
	putSubCmd      = "put"
	deleteSubCmd   = "delete"
	scanSubCmd     = "scan"
	batchSubCmd    = "batch"
	propertySubCmd = "property"
	estimateSubCmd = "estimate"
	compactSubCmd  = "compact"
	repairSubCmd   = "repair"
	destroySubCmd  = "destroy"
	versionSubCmd  = "version"
)

type configFlags struct {
	config.DBFlags
	Hex      bool         `long:"hex" short:"x" description:"Read and print keys and values as hex"`
	LogLevel logger.Level `long:"loglevel" description:"Logging level: trace, debug, info, warn, error, critical or off" default:"warn"`
	LogDir   string       `long:"logdir" description:"Directory to write rotated log files to, in addition to stderr"`
	Sync     bool         `long:"sync" description:"Make writes durable before returning"`
	Profile  string       `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65536"`
}

type getConfig struct {
	Key string `long:"key" short:"k" description:"The key to read" required:"true"`
}

type putConfig struct {
	Key   string `long:"key" short:"k" description:"The key to write" required:"true"`
	Value string `long:"value" short:"v" description:"The value to write" required:"true"`
}

type deleteConfig struct {
	Key string `long:"key" short:"k" description:"The key to delete" required:"true"`
}

type scanConfig struct {
	Start          string `long:"start" description:"Start bound of the scan"`
	StartExclusive bool   `long:"start-exclusive" description:"Exclude the start bound"`
	Stop           string `long:"stop" description:"Stop bound of the scan"`
	StopInclusive  bool   `long:"stop-inclusive" description:"Include the stop bound"`
	Prefix         string `long:"prefix" description:"Only scan keys beginning with this prefix (cannot be used with --start or --stop)"`
	SubKeyspace    string `long:"sub-keyspace" description:"Scan keys relative to this prefix"`
	Reverse        bool   `long:"reverse" short:"r" description:"Scan in descending key order"`
	KeysOnly       bool   `long:"keys-only" description:"Print keys only"`
	ValuesOnly     bool   `long:"values-only" description:"Print values only"`
	Limit          int    `long:"limit" short:"n" description:"Maximum number of elements to print (0 for no limit)"`
	Snapshot       bool   `long:"snapshot" description:"Scan a snapshot taken before the scan starts"`
}

type batchConfig struct {
	Transactional bool `long:"transactional" description:"Write nothing if any line of the input is invalid"`
}

type propertyConfig struct {
	Name string `long:"name" short:"p" description:"The property to print, such as leveldb.stats or pebble.metrics" required:"true"`
}

type estimateConfig struct {
	Start string `long:"start" description:"Start of the range (inclusive)"`
	Limit string `long:"limit" description:"Limit of the range (exclusive)"`
}

type compactConfig struct {
	Start string `long:"start" description:"Start of the range to compact"`
	Limit string `long:"limit" description:"Limit of the range to compact"`
}

type repairConfig struct{}

type versionConfig struct{}

type destroyConfig struct {
	Force bool `long:"force" short:"f" description:"Do not ask for confirmation"`
}

func parseCommandLine() (subCommand string, cfg *configFlags, subConfig interface{}) {
	cfg = &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	getConf := &getConfig{}
	parser.AddCommand(getSubCmd, "Prints the value of a key",
		"Prints the value stored under a key", getConf)

	putConf := &putConfig{}
	parser.AddCommand(putSubCmd, "Sets the value of a key",
		"Sets the value of a key, overwriting any previous value", putConf)

	deleteConf := &deleteConfig{}
	parser.AddCommand(deleteSubCmd, "Deletes a key",
		"Deletes a key. Deleting a missing key is not an error", deleteConf)

	scanConf := &scanConfig{}
	parser.AddCommand(scanSubCmd, "Prints a range of keys",
		"Prints the keys, and optionally the values, of a range of the database", scanConf)

	batchConf := &batchConfig{}
	parser.AddCommand(batchSubCmd, "Applies operations read from stdin atomically",
		"Reads lines of the form 'put <key> <value>' or 'delete <key>' from stdin and applies them as one batch", batchConf)

	propertyConf := &propertyConfig{}
	parser.AddCommand(propertySubCmd, "Prints an engine property",
		"Prints the value of an engine-specific property", propertyConf)

	estimateConf := &estimateConfig{}
	parser.AddCommand(estimateSubCmd, "Estimates the size of a range",
		"Prints the approximate on-disk size of a range of keys", estimateConf)

	compactConf := &compactConfig{}
	parser.AddCommand(compactSubCmd, "Compacts a range",
		"Compacts the underlying storage of a range of keys", compactConf)

	repairConf := &repairConfig{}
	parser.AddCommand(repairSubCmd, "Repairs a corrupted database",
		"Recovers as much data as possible from a corrupted database", repairConf)

	destroyConf := &destroyConfig{}
	parser.AddCommand(destroySubCmd, "Deletes a database",
		"Deletes a database and all of its files", destroyConf)

	versionConf := &versionConfig{}
	parser.AddCommand(versionSubCmd, "Prints the version",
		"Prints the version of ldbctl", versionConf)

	_, err := parser.Parse()
	if err == nil {
		err = cfg.LoadConfigFile(parser)
		if err == nil {
			// Parse the command line again so that it takes precedence
			// over the config file.
			_, err = parser.Parse()
		}
	}
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			// go-flags already printed the error
			os.Exit(1)
		}
		printErrorAndExit(err)
	}

	switch parser.Command.Active.Name {
	case getSubCmd:
		subConfig = getConf
	case putSubCmd:
		subConfig = putConf
	case deleteSubCmd:
		subConfig = deleteConf
	case scanSubCmd:
		subConfig = scanConf
	case batchSubCmd:
		subConfig = batchConf
	case propertySubCmd:
		subConfig = propertyConf
	case estimateSubCmd:
		subConfig = estimateConf
	case compactSubCmd:
		subConfig = compactConf
	case repairSubCmd:
		subConfig = repairConf
	case destroySubCmd:
		subConfig = destroyConf
	case versionSubCmd:
		subConfig = versionConf
	}

	return parser.Command.Active.Name, cfg, subConfig
}
