package pebbledb

import (
	"fmt"
	"os"
)

// pebbleLogger forwards pebble's own log output to the PBDB subsystem.
type pebbleLogger struct{}

func (pebbleLogger) Infof(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func (pebbleLogger) Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

func (pebbleLogger) Fatalf(format string, args ...interface{}) {
	log.Criticalf(format, args...)
	fmt.Fprintf(os.Stderr, "pebble: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
