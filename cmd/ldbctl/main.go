package main

import (
	"fmt"

	"github.com/kaspanet/ldbview/infrastructure/logger"
	"github.com/kaspanet/ldbview/util/profiling"
	"github.com/kaspanet/ldbview/version"
	"github.com/pkg/errors"

	_ "github.com/kaspanet/ldbview/infrastructure/db/database/ldb"
	_ "github.com/kaspanet/ldbview/infrastructure/db/database/pebbledb"
)

func main() {
	subCmd, cfg, subConfig := parseCommandLine()
	initLog(cfg)
	defer logger.BackendLog().Close()

	if cfg.Profile != "" {
		profiling.Start(cfg.Profile, log)
	}

	var err error
	switch subCmd {
	case getSubCmd:
		err = get(cfg, subConfig.(*getConfig))
	case putSubCmd:
		err = put(cfg, subConfig.(*putConfig))
	case deleteSubCmd:
		err = del(cfg, subConfig.(*deleteConfig))
	case scanSubCmd:
		err = scan(cfg, subConfig.(*scanConfig))
	case batchSubCmd:
		err = batch(cfg, subConfig.(*batchConfig))
	case propertySubCmd:
		err = property(cfg, subConfig.(*propertyConfig))
	case estimateSubCmd:
		err = estimate(cfg, subConfig.(*estimateConfig))
	case compactSubCmd:
		err = compact(cfg, subConfig.(*compactConfig))
	case repairSubCmd:
		err = repair(cfg)
	case destroySubCmd:
		err = destroy(cfg, subConfig.(*destroyConfig))
	case versionSubCmd:
		fmt.Printf("ldbctl version %s\n", version.Version())
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		printErrorAndExit(err)
	}
}
