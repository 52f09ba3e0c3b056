package pebbledb

import (
	"strings"

	"github.com/cockroachdb/pebble"
	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
)

// convertError classifies an error returned by pebble. Pebble marks
// corruption through an internal error type, so corruption is recognized by
// its message.
func convertError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pebble.ErrNotFound):
		return errors.WithStack(database.ErrNotFound)
	case strings.Contains(strings.ToLower(err.Error()), "corrupt"):
		return database.NewCorruptionError(err)
	default:
		return database.NewStorageIOError(err)
	}
}
