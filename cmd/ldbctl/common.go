package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/kaspanet/ldbview/infrastructure/os/signal"
	"github.com/kaspanet/ldbview/util/panics"
	"github.com/pkg/errors"
)

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func openDatabase(cfg *configFlags) (*database.DB, error) {
	options, err := cfg.ResolveOptions()
	if err != nil {
		return nil, err
	}
	log.Debugf("Opening %s", &cfg.DBFlags)
	return database.Open(cfg.DBPath, options)
}

// withDatabase opens the database, runs fn and closes the database. An
// interrupt closes the database early, which makes fn fail with
// database.ErrHandleClosed at its next database call.
func withDatabase(cfg *configFlags, fn func(db *database.DB) error) (err error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	interrupt := signal.InterruptListener()
	spawn := panics.GoroutineWrapperFunc(log)
	spawn("withDatabase-closeOnInterrupt", func() {
		select {
		case <-interrupt:
			log.Warnf("Interrupted, closing the database")
			closeErr := db.Close()
			if closeErr != nil {
				log.Errorf("Failed closing the database: %s", closeErr)
			}
		case <-done:
		}
	})

	defer func() {
		closeErr := db.Close()
		if err == nil {
			err = closeErr
		}
	}()
	return fn(db)
}

// decode converts a key or value given on the command line to bytes.
func decode(cfg *configFlags, s string) ([]byte, error) {
	if !cfg.Hex {
		return []byte(s), nil
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(database.ErrInvalidArgument, "%q is not valid hex: %s", s, err)
	}
	return decoded, nil
}

// decodeOptional is decode for arguments where an empty string means
// unset.
func decodeOptional(cfg *configFlags, s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return decode(cfg, s)
}

// encode converts a key or value to the form it is printed in.
func encode(cfg *configFlags, b []byte) string {
	if cfg.Hex {
		return hex.EncodeToString(b)
	}
	return string(b)
}

func writeOptions(cfg *configFlags) *database.WriteOptions {
	return &database.WriteOptions{Sync: cfg.Sync}
}
