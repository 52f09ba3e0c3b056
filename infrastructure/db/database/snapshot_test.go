package database_test

import (
	"testing"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
)

func TestSnapshotIsolation(t *testing.T) {
	testForAllDatabaseTypes(t, "TestSnapshotIsolation", testSnapshotIsolation)
}

func testSnapshotIsolation(t *testing.T, db *database.DB, testName string) {
	populateDatabaseForTest(t, db, testName, "a", "b", "c")

	snapshot, err := db.Snapshot()
	if err != nil {
		t.Fatalf("%s: Snapshot unexpectedly failed: %s", testName, err)
	}
	defer snapshot.Close()

	err = db.Put([]byte("d"), []byte("value-d"), nil)
	if err != nil {
		t.Fatalf("%s: Put unexpectedly failed: %s", testName, err)
	}
	err = db.Delete([]byte("a"), nil)
	if err != nil {
		t.Fatalf("%s: Delete unexpectedly failed: %s", testName, err)
	}
	err = db.Put([]byte("b"), []byte("changed"), nil)
	if err != nil {
		t.Fatalf("%s: Put unexpectedly failed: %s", testName, err)
	}

	expectKeys(t, testName, iterateKeys(t, testName, snapshot, database.Range{}, database.Forward), "a", "b", "c")
	expectKeys(t, testName, iterateKeys(t, testName, db, database.Range{}, database.Forward), "b", "c", "d")

	value, err := snapshot.Get([]byte("b"), nil)
	if err != nil {
		t.Fatalf("%s: Get unexpectedly failed: %s", testName, err)
	}
	if string(value) != "value-b" {
		t.Fatalf("%s: snapshot sees a later write: %q", testName, value)
	}
	_, err = snapshot.Get([]byte("d"), nil)
	if !database.IsNotFoundError(err) {
		t.Fatalf("%s: snapshot Get of a later key returned %v", testName, err)
	}
	exists, err := snapshot.Has([]byte("a"), nil)
	if err != nil {
		t.Fatalf("%s: Has unexpectedly failed: %s", testName, err)
	}
	if !exists {
		t.Fatalf("%s: snapshot lost a key deleted after it was taken", testName)
	}

	sub := snapshot.SubKeyspace([]byte("b"))
	expectKeys(t, testName, iterateKeys(t, testName, sub, database.Range{}, database.Forward), "")
}

func TestSnapshotClose(t *testing.T) {
	testForAllDatabaseTypes(t, "TestSnapshotClose", testSnapshotClose)
}

func testSnapshotClose(t *testing.T, db *database.DB, testName string) {
	populateDatabaseForTest(t, db, testName, "a", "b")

	snapshot, err := db.Snapshot()
	if err != nil {
		t.Fatalf("%s: Snapshot unexpectedly failed: %s", testName, err)
	}
	sub := snapshot.SubKeyspace([]byte("a"))
	cursor, err := snapshot.Iterate(database.Range{}, database.Forward, database.KeysAndValues)
	if err != nil {
		t.Fatalf("%s: Iterate unexpectedly failed: %s", testName, err)
	}
	expectStep(t, testName, cursor.Next, "a")

	err = snapshot.Close()
	if err != nil {
		t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
	}
	if !snapshot.Closed() || !sub.Closed() {
		t.Fatalf("%s: snapshot is not closed after Close", testName)
	}
	if db.Closed() {
		t.Fatalf("%s: closing a snapshot closed the database", testName)
	}

	_, _, err = cursor.Next()
	expectHandleClosed(t, testName, err)
	_, err = snapshot.Get([]byte("a"), nil)
	expectHandleClosed(t, testName, err)
	_, err = sub.Has([]byte(""), nil)
	expectHandleClosed(t, testName, err)
	_, err = snapshot.Iterate(database.Range{}, database.Forward, database.KeysAndValues)
	expectHandleClosed(t, testName, err)

	err = cursor.Close()
	if err != nil {
		t.Fatalf("%s: closing a cursor of a closed snapshot failed: %s", testName, err)
	}
	err = snapshot.Close()
	if err != nil {
		t.Fatalf("%s: second Close unexpectedly failed: %s", testName, err)
	}
	err = sub.Close()
	if err != nil {
		t.Fatalf("%s: closing a derived snapshot failed: %s", testName, err)
	}

	_, err = db.Get([]byte("a"), nil)
	if err != nil {
		t.Fatalf("%s: Get after closing a snapshot failed: %s", testName, err)
	}
}
