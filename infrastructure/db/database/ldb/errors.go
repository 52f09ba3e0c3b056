package ldb

import (
	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
)

// convertError classifies an error returned by leveldb.
func convertError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, leveldb.ErrNotFound):
		return errors.WithStack(database.ErrNotFound)
	case ldbErrors.IsCorrupted(err):
		return database.NewCorruptionError(err)
	default:
		return database.NewStorageIOError(err)
	}
}
