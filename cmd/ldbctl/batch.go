package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
)

func batch(cfg *configFlags, conf *batchConfig) error {
	options := &database.BatchOptions{
		Sync:          cfg.Sync,
		Transactional: conf.Transactional,
	}
	return withDatabase(cfg, func(db *database.DB) error {
		return db.Update(options, func(batch *database.Batch) error {
			return readOperations(os.Stdin, cfg, batch)
		})
	})
}

// readOperations buffers the operations read from r into batch, stopping
// at the first invalid line.
func readOperations(r io.Reader, cfg *configFlags, batch *database.Batch) error {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch {
		case fields[0] == "put" && len(fields) == 3:
			err = bufferPut(cfg, batch, fields[1], fields[2])
		case fields[0] == "delete" && len(fields) == 2:
			err = bufferDelete(cfg, batch, fields[1])
		default:
			err = errors.Wrapf(database.ErrInvalidArgument, "malformed operation %q", scanner.Text())
		}
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNumber)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.WithStack(err)
	}
	log.Debugf("Read %d operations", batch.Len())
	return nil
}

func bufferPut(cfg *configFlags, batch *database.Batch, encodedKey, encodedValue string) error {
	key, err := decode(cfg, encodedKey)
	if err != nil {
		return err
	}
	value, err := decode(cfg, encodedValue)
	if err != nil {
		return err
	}
	return batch.Put(key, value)
}

func bufferDelete(cfg *configFlags, batch *database.Batch, encodedKey string) error {
	key, err := decode(cfg, encodedKey)
	if err != nil {
		return err
	}
	return batch.Delete(key)
}
