package database

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Driver defines a storage engine that databases can be opened with.
// Drivers register themselves from their package's init function.
type Driver struct {
	// Name is the value of Options.Engine that selects the driver.
	Name string

	// Open opens or creates the engine stored at path. options has
	// already been validated.
	Open func(path string, options *Options) (Engine, error)

	// Repair tries to recover as much data as possible from a corrupted
	// database. Drivers that cannot repair return ErrNotSupported.
	Repair func(path string, options *Options) error

	// Destroy deletes the database stored at path.
	Destroy func(path string, options *Options) error
}

var (
	driversLock sync.RWMutex
	drivers     = make(map[string]*Driver)
)

// RegisterDriver adds a driver to the available drivers. It returns an
// error if a driver with the same name is already registered.
func RegisterDriver(driver Driver) error {
	if driver.Name == "" || driver.Open == nil {
		return errors.Errorf("driver %q is incomplete", driver.Name)
	}

	driversLock.Lock()
	defer driversLock.Unlock()

	if _, exists := drivers[driver.Name]; exists {
		return errors.Errorf("driver %q is already registered", driver.Name)
	}
	drivers[driver.Name] = &driver
	return nil
}

// SupportedDrivers returns a sorted slice of the names of the registered
// drivers.
func SupportedDrivers() []string {
	driversLock.RLock()
	defer driversLock.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveDriver validates options, filling in the defaults if it is nil,
// and returns the driver it selects.
func resolveDriver(options *Options) (*Driver, *Options, error) {
	if options == nil {
		options = DefaultOptions()
	}
	err := options.Validate()
	if err != nil {
		return nil, nil, err
	}

	driversLock.RLock()
	driver, ok := drivers[options.engineName()]
	driversLock.RUnlock()
	if !ok {
		return nil, nil, invalidArgumentf("unknown engine %q, supported engines: %v",
			options.engineName(), SupportedDrivers())
	}
	return driver, options, nil
}

// Open opens the database stored at path with the engine selected by
// options. nil options mean DefaultOptions.
func Open(path string, options *Options) (*DB, error) {
	driver, options, err := resolveDriver(options)
	if err != nil {
		return nil, err
	}

	log.Debugf("Opening %s database at %s", driver.Name, path)
	engine, err := driver.Open(path, options)
	if err != nil {
		return nil, err
	}
	return NewDB(engine, options.KeyOrder()), nil
}

// Repair tries to recover the database stored at path.
func Repair(path string, options *Options) error {
	driver, options, err := resolveDriver(options)
	if err != nil {
		return err
	}
	if driver.Repair == nil {
		return errors.Wrapf(ErrNotSupported, "engine %s cannot repair databases", driver.Name)
	}

	log.Infof("Repairing %s database at %s", driver.Name, path)
	return driver.Repair(path, options)
}

// Destroy deletes the database stored at path.
func Destroy(path string, options *Options) error {
	driver, options, err := resolveDriver(options)
	if err != nil {
		return err
	}
	if driver.Destroy == nil {
		return errors.Wrapf(ErrNotSupported, "engine %s cannot destroy databases", driver.Name)
	}

	log.Infof("Destroying %s database at %s", driver.Name, path)
	return driver.Destroy(path, options)
}
