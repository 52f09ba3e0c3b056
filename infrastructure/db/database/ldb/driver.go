package ldb

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

const engineName = "leveldb"

func openDriver(path string, options *database.Options) (database.Engine, error) {
	return NewLevelDB(path, options)
}

// Repair recovers as much data as possible from the leveldb
// database at path by rebuilding its manifest.
func Repair(path string, options *database.Options) error {
	if options.InMemory {
		return errors.Wrapf(database.ErrInvalidArgument, "cannot repair an in-memory database")
	}
	ldbOptions, err := Options(options)
	if err != nil {
		return err
	}
	ldbOptions.ErrorIfMissing = true
	ldbOptions.ErrorIfExist = false

	ldb, err := leveldb.RecoverFile(path, ldbOptions)
	if err != nil {
		return convertError(err)
	}
	log.Infof("LevelDB recovered from corruption for path %s", path)
	return convertError(ldb.Close())
}

// Destroy deletes the leveldb database at path. Destroying a
// missing database does nothing.
func Destroy(path string, options *database.Options) error {
	if options.InMemory {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	manifests, err := filepath.Glob(filepath.Join(path, "MANIFEST-*"))
	if err != nil {
		return errors.WithStack(err)
	}
	if len(manifests) == 0 {
		return errors.Wrapf(database.ErrInvalidArgument,
			"%s does not contain a leveldb database", path)
	}
	return database.NewStorageIOError(os.RemoveAll(path))
}

func registerDriver() {
	driver := database.Driver{
		Name:    engineName,
		Open:    openDriver,
		Repair:  Repair,
		Destroy: Destroy,
	}
	if err := database.RegisterDriver(driver); err != nil {
		panic(fmt.Sprintf("Failed to register database driver '%s': %s",
			engineName, err))
	}
}

func init() {
	registerDriver()
}
