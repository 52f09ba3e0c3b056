package main

import (
	"path/filepath"

	"github.com/kaspanet/ldbview/infrastructure/logger"
)

const (
	defaultLogFilename    = "ldbctl.log"
	defaultErrLogFilename = "ldbctl_err.log"
)

var log = logger.RegisterSubSystem("LCTL")

func initLog(cfg *configFlags) {
	logger.InitLogStdout(cfg.LogLevel)
	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		errLogFile := filepath.Join(cfg.LogDir, defaultErrLogFilename)
		err := logger.InitLog(logFile, errLogFile)
		if err != nil {
			printErrorAndExit(err)
		}
	}
	err := logger.SetLogLevels(cfg.LogLevel.String())
	if err != nil {
		printErrorAndExit(err)
	}
}
