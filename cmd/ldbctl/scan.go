package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
)

// iterator is implemented by every view a scan can run on.
type iterator interface {
	Iterate(r database.Range, direction database.Direction, projection database.Projection) (*database.Cursor, error)
}

func scan(cfg *configFlags, conf *scanConfig) error {
	r, err := scanRange(cfg, conf)
	if err != nil {
		return err
	}
	if conf.KeysOnly && conf.ValuesOnly {
		return errors.Wrapf(database.ErrInvalidArgument, "--keys-only and --values-only cannot be used together")
	}
	subKeyspace, err := decodeOptional(cfg, conf.SubKeyspace)
	if err != nil {
		return err
	}

	direction := database.Forward
	if conf.Reverse {
		direction = database.Reverse
	}
	projection := database.KeysAndValues
	switch {
	case conf.KeysOnly:
		projection = database.KeysOnly
	case conf.ValuesOnly:
		projection = database.ValuesOnly
	}

	return withDatabase(cfg, func(db *database.DB) error {
		var view iterator = db
		if conf.Snapshot {
			snapshot, err := db.Snapshot()
			if err != nil {
				return err
			}
			defer snapshot.Close()
			view = snapshot
			if subKeyspace != nil {
				view = snapshot.SubKeyspace(subKeyspace)
			}
		} else if subKeyspace != nil {
			view = db.SubKeyspace(subKeyspace)
		}

		cursor, err := view.Iterate(r, direction, projection)
		if err != nil {
			return err
		}
		defer cursor.Close()

		count, err := printCursor(os.Stdout, cfg, cursor, projection, conf.Limit)
		log.Debugf("Printed %d elements", count)
		return err
	})
}

func scanRange(cfg *configFlags, conf *scanConfig) (database.Range, error) {
	r := database.Range{}
	if conf.Prefix != "" {
		prefix, err := decode(cfg, conf.Prefix)
		if err != nil {
			return r, err
		}
		r.Prefix = prefix
	}
	if conf.Start != "" {
		start, err := decode(cfg, conf.Start)
		if err != nil {
			return r, err
		}
		r.Start = &database.Bound{Key: start, Inclusive: !conf.StartExclusive}
	}
	if conf.Stop != "" {
		stop, err := decode(cfg, conf.Stop)
		if err != nil {
			return r, err
		}
		r.Stop = &database.Bound{Key: stop, Inclusive: conf.StopInclusive}
	}
	return r, nil
}

func printCursor(w io.Writer, cfg *configFlags, cursor *database.Cursor,
	projection database.Projection, limit int) (count int, err error) {

	for limit == 0 || count < limit {
		key, value, err := cursor.Next()
		if err != nil {
			if database.IsExhaustedError(err) {
				return count, nil
			}
			return count, err
		}
		count++

		switch projection {
		case database.KeysOnly:
			_, err = fmt.Fprintln(w, encode(cfg, key))
		case database.ValuesOnly:
			_, err = fmt.Fprintln(w, encode(cfg, value))
		default:
			_, err = fmt.Fprintf(w, "%s\t%s\n", encode(cfg, key), encode(cfg, value))
		}
		if err != nil {
			return count, errors.WithStack(err)
		}
	}
	return count, nil
}
