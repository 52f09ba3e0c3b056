package database_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/ldbview/infrastructure/db/database"

	_ "github.com/kaspanet/ldbview/infrastructure/db/database/ldb"
	_ "github.com/kaspanet/ldbview/infrastructure/db/database/pebbledb"
)

type databasePrepareFunc func(t *testing.T, testName string) (db *database.DB, name string, teardownFunc func())

// databasePrepareFuncs is a set of functions, in which each function
// prepares a separate database type for testing.
// See testForAllDatabaseTypes for further details.
var databasePrepareFuncs = []databasePrepareFunc{
	prepareLDBForTest,
	prepareInMemoryLDBForTest,
	prepareInMemoryPebbleForTest,
}

func prepareLDBForTest(t *testing.T, testName string) (db *database.DB, name string, teardownFunc func()) {
	// Create a temp db to run tests against
	path, err := os.MkdirTemp("", "ldbview")
	if err != nil {
		t.Fatalf("%s: MkdirTemp unexpectedly "+
			"failed: %s", testName, err)
	}
	db, err = database.Open(path, &database.Options{
		Engine:          "leveldb",
		CreateIfMissing: true,
	})
	if err != nil {
		t.Fatalf("%s: Open unexpectedly "+
			"failed: %s", testName, err)
	}
	teardownFunc = func() {
		err = db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly "+
				"failed: %s", testName, err)
		}
		err = os.RemoveAll(path)
		if err != nil {
			t.Fatalf("%s: RemoveAll unexpectedly "+
				"failed: %s", testName, err)
		}
	}
	return db, "ldb", teardownFunc
}

func prepareInMemoryLDBForTest(t *testing.T, testName string) (db *database.DB, name string, teardownFunc func()) {
	db, teardownFunc = prepareInMemoryForTest(t, testName, "leveldb")
	return db, "ldb-memory", teardownFunc
}

func prepareInMemoryPebbleForTest(t *testing.T, testName string) (db *database.DB, name string, teardownFunc func()) {
	db, teardownFunc = prepareInMemoryForTest(t, testName, "pebble")
	return db, "pebble-memory", teardownFunc
}

func prepareInMemoryForTest(t *testing.T, testName string, engine string) (db *database.DB, teardownFunc func()) {
	db, err := database.Open("", &database.Options{
		Engine:   engine,
		InMemory: true,
	})
	if err != nil {
		t.Fatalf("%s: Open unexpectedly "+
			"failed: %s", testName, err)
	}
	teardownFunc = func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly "+
				"failed: %s", testName, err)
		}
	}
	return db, teardownFunc
}

// testForAllDatabaseTypes runs the given testFunc for every database
// type defined in databasePrepareFuncs. This is to make sure that
// all supported database types adhere to the assumptions defined in
// the interfaces in this package.
func testForAllDatabaseTypes(t *testing.T, testName string,
	testFunc func(t *testing.T, db *database.DB, testName string)) {

	for _, prepareDatabase := range databasePrepareFuncs {
		func() {
			db, dbType, teardownFunc := prepareDatabase(t, testName)
			defer teardownFunc()

			testName := fmt.Sprintf("%s: %s", dbType, testName)
			testFunc(t, db, testName)
		}()
	}
}

type keyValuePair struct {
	key   string
	value string
}

// putter is implemented by DB and PrefixView.
type putter interface {
	Put(key, value []byte, options *database.WriteOptions) error
}

func populateDatabaseForTest(t *testing.T, db putter, testName string, keys ...string) []keyValuePair {
	entries := make([]keyValuePair, len(keys))
	for i, key := range keys {
		entries[i] = keyValuePair{key: key, value: "value-" + key}
	}

	for _, entry := range entries {
		err := db.Put([]byte(entry.key), []byte(entry.value), nil)
		if err != nil {
			t.Fatalf("%s: Put unexpectedly "+
				"failed: %s", testName, err)
		}
	}
	return entries
}

// collectKeys steps the cursor forward until it is exhausted and returns
// the keys it yielded.
func collectKeys(t *testing.T, testName string, cursor *database.Cursor) []string {
	keys := []string{}
	for {
		key, _, err := cursor.Next()
		if err != nil {
			if database.IsExhaustedError(err) {
				return keys
			}
			t.Fatalf("%s: Next unexpectedly "+
				"failed: %s", testName, err)
		}
		keys = append(keys, string(key))
	}
}

// iterateKeys creates a cursor, collects its keys and closes it.
func iterateKeys(t *testing.T, testName string, view interface {
	Iterate(database.Range, database.Direction, database.Projection) (*database.Cursor, error)
}, r database.Range, direction database.Direction) []string {

	cursor, err := view.Iterate(r, direction, database.KeysAndValues)
	if err != nil {
		t.Fatalf("%s: Iterate unexpectedly "+
			"failed: %s", testName, err)
	}
	defer cursor.Close()
	return collectKeys(t, testName, cursor)
}

func expectKeys(t *testing.T, testName string, got []string, want ...string) {
	if len(want) == 0 {
		want = []string{}
	}
	if len(got) != len(want) {
		t.Fatalf("%s: unexpected keys.\nWant: %s\nGot: %s",
			testName, spew.Sdump(want), spew.Sdump(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: unexpected keys.\nWant: %s\nGot: %s",
				testName, spew.Sdump(want), spew.Sdump(got))
		}
	}
}

// expectStep calls step and checks that it yielded wantKey.
func expectStep(t *testing.T, testName string,
	step func() ([]byte, []byte, error), wantKey string) {

	key, _, err := step()
	if err != nil {
		t.Fatalf("%s: step to %q unexpectedly "+
			"failed: %s", testName, wantKey, err)
	}
	if string(key) != wantKey {
		t.Fatalf("%s: step returned the wrong key. "+
			"Want: %q, got: %q", testName, wantKey, key)
	}
}

// expectExhausted calls step and checks that it failed with ErrExhausted.
func expectExhausted(t *testing.T, testName string, step func() ([]byte, []byte, error)) {
	key, _, err := step()
	if err == nil {
		t.Fatalf("%s: step unexpectedly "+
			"succeeded with key %q", testName, key)
	}
	if !database.IsExhaustedError(err) {
		t.Fatalf("%s: step returned the "+
			"wrong error: %s", testName, err)
	}
}

func expectHandleClosed(t *testing.T, testName string, err error) {
	if err == nil {
		t.Fatalf("%s: operation unexpectedly "+
			"succeeded after close", testName)
	}
	if !database.IsHandleClosedError(err) {
		t.Fatalf("%s: operation returned the "+
			"wrong error: %s", testName, err)
	}
}
