package pebbledb

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
)

func openDriver(path string, options *database.Options) (database.Engine, error) {
	return NewPebbleDB(path, options)
}

// Repair is not supported by pebble.
func Repair(path string, options *database.Options) error {
	return errors.Wrapf(database.ErrNotSupported, "pebble cannot repair %s", path)
}

// Destroy deletes the pebble database at path. Destroying a
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
			"%s does not contain a pebble database", path)
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
