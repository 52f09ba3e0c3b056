package database_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
)

func TestCursorScenario(t *testing.T) {
	testForAllDatabaseTypes(t, "TestCursorScenario", testCursorScenario)
}

func testCursorScenario(t *testing.T, db *database.DB, testName string) {
	populateDatabaseForTest(t, db, testName, "1", "2", "3", "4", "5")

	bounded := database.Range{
		Start: database.Inclusive([]byte("2")),
		Stop:  database.Exclusive([]byte("5")),
	}
	expectKeys(t, testName, iterateKeys(t, testName, db, bounded, database.Forward), "2", "3", "4")
	expectKeys(t, testName, iterateKeys(t, testName, db, bounded, database.Reverse), "4", "3", "2")

	all := database.KeyPrefix([]byte(""))
	expectKeys(t, testName, iterateKeys(t, testName, db, all, database.Forward), "1", "2", "3", "4", "5")

	missing := database.KeyPrefix([]byte("8"))
	expectKeys(t, testName, iterateKeys(t, testName, db, missing, database.Forward))
	expectKeys(t, testName, iterateKeys(t, testName, db, missing, database.Reverse))
}

// TestCursorRangeClip checks every combination of bounds and inclusivity
// against a brute-force filter of the inserted keys.
func TestCursorRangeClip(t *testing.T) {
	testForAllDatabaseTypes(t, "TestCursorRangeClip", testCursorRangeClip)
}

func testCursorRangeClip(t *testing.T, db *database.DB, testName string) {
	keys := []string{"b", "d", "f", "h"}
	populateDatabaseForTest(t, db, testName, keys...)

	// Bound keys both on and between the inserted keys, and outside them.
	boundKeys := []string{"a", "b", "c", "d", "h", "i"}
	var bounds []*database.Bound
	bounds = append(bounds, nil)
	for _, key := range boundKeys {
		bounds = append(bounds, database.Inclusive([]byte(key)), database.Exclusive([]byte(key)))
	}

	for _, start := range bounds {
		for _, stop := range bounds {
			r := database.Range{Start: start, Stop: stop}
			want := []string{}
			for _, key := range keys {
				if inRange(key, start, stop) {
					want = append(want, key)
				}
			}
			caseName := fmt.Sprintf("%s [%s, %s]", testName, describeBound(start), describeBound(stop))

			expectKeys(t, caseName, iterateKeys(t, caseName, db, r, database.Forward), want...)

			reversed := make([]string, len(want))
			for i, key := range want {
				reversed[len(want)-1-i] = key
			}
			expectKeys(t, caseName, iterateKeys(t, caseName, db, r, database.Reverse), reversed...)
		}
	}
}

func inRange(key string, start, stop *database.Bound) bool {
	if start != nil {
		comparison := bytes.Compare([]byte(key), start.Key)
		if comparison < 0 || (comparison == 0 && !start.Inclusive) {
			return false
		}
	}
	if stop != nil {
		comparison := bytes.Compare([]byte(key), stop.Key)
		if comparison > 0 || (comparison == 0 && !stop.Inclusive) {
			return false
		}
	}
	return true
}

func describeBound(bound *database.Bound) string {
	if bound == nil {
		return "unbounded"
	}
	if bound.Inclusive {
		return fmt.Sprintf("incl %s", bound.Key)
	}
	return fmt.Sprintf("excl %s", bound.Key)
}

func TestCursorSentinels(t *testing.T) {
	testForAllDatabaseTypes(t, "TestCursorSentinels", testCursorSentinels)
}

func testCursorSentinels(t *testing.T, db *database.DB, testName string) {
	populateDatabaseForTest(t, db, testName, "1", "2", "3", "4", "5")

	r := database.Range{
		Start: database.Exclusive([]byte("1")),
		Stop:  database.Inclusive([]byte("4")),
	}
	for _, direction := range []database.Direction{database.Forward, database.Reverse} {
		caseName := fmt.Sprintf("%s (%s)", testName, direction)
		cursor, err := db.Iterate(r, direction, database.KeysOnly)
		if err != nil {
			t.Fatalf("%s: Iterate unexpectedly failed: %s", caseName, err)
		}

		// SeekToStop then stepping toward the start yields the last element
		// of the range, whatever the direction.
		stepUp, stepDown := cursor.Next, cursor.Prev
		if direction == database.Reverse {
			stepUp, stepDown = cursor.Prev, cursor.Next
		}

		err = cursor.SeekToStop()
		if err != nil {
			t.Fatalf("%s: SeekToStop unexpectedly failed: %s", caseName, err)
		}
		if cursor.State() != database.AfterStop {
			t.Fatalf("%s: unexpected state after SeekToStop: %s", caseName, cursor.State())
		}
		expectExhausted(t, caseName, stepUp)
		expectExhausted(t, caseName, stepUp)
		expectStep(t, caseName, stepDown, "4")
		expectStep(t, caseName, stepUp, "4")
		expectStep(t, caseName, stepDown, "4")
		expectStep(t, caseName, stepUp, "4")
		expectExhausted(t, caseName, stepUp)
		expectStep(t, caseName, stepDown, "4")

		err = cursor.SeekToStart()
		if err != nil {
			t.Fatalf("%s: SeekToStart unexpectedly failed: %s", caseName, err)
		}
		if cursor.State() != database.BeforeStart {
			t.Fatalf("%s: unexpected state after SeekToStart: %s", caseName, cursor.State())
		}
		expectExhausted(t, caseName, stepDown)
		expectStep(t, caseName, stepUp, "2")
		expectStep(t, caseName, stepDown, "2")
		expectExhausted(t, caseName, stepDown)
		expectExhausted(t, caseName, stepDown)
		expectStep(t, caseName, stepUp, "2")
		expectStep(t, caseName, stepUp, "3")
		expectStep(t, caseName, stepUp, "4")
		expectExhausted(t, caseName, stepUp)

		err = cursor.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", caseName, err)
		}
	}
}

func TestCursorSingleEntry(t *testing.T) {
	testForAllDatabaseTypes(t, "TestCursorSingleEntry", testCursorSingleEntry)
}

func testCursorSingleEntry(t *testing.T, db *database.DB, testName string) {
	populateDatabaseForTest(t, db, testName, "1")

	cursor, err := db.Iterate(database.Range{}, database.Forward, database.KeysAndValues)
	if err != nil {
		t.Fatalf("%s: Iterate unexpectedly failed: %s", testName, err)
	}
	defer cursor.Close()

	expectStep(t, testName, cursor.Next, "1")
	expectStep(t, testName, cursor.Prev, "1")
	expectStep(t, testName, cursor.Next, "1")
	expectStep(t, testName, cursor.Prev, "1")
	expectExhausted(t, testName, cursor.Prev)
	expectStep(t, testName, cursor.Next, "1")
	expectExhausted(t, testName, cursor.Next)
	expectStep(t, testName, cursor.Prev, "1")
	expectExhausted(t, testName, cursor.Prev)

	reverse, err := db.Iterate(database.Range{}, database.Reverse, database.KeysAndValues)
	if err != nil {
		t.Fatalf("%s: Iterate unexpectedly failed: %s", testName, err)
	}
	defer reverse.Close()

	expectExhausted(t, testName, reverse.Prev)
	expectStep(t, testName, reverse.Next, "1")
	expectStep(t, testName, reverse.Prev, "1")
	expectStep(t, testName, reverse.Next, "1")
	expectExhausted(t, testName, reverse.Next)
}

func TestCursorSeek(t *testing.T) {
	testForAllDatabaseTypes(t, "TestCursorSeek", testCursorSeek)
}

func testCursorSeek(t *testing.T, db *database.DB, testName string) {
	populateDatabaseForTest(t, db, testName, "1", "3", "5", "7")

	r := database.Range{
		Start: database.Inclusive([]byte("3")),
		Stop:  database.Exclusive([]byte("7")),
	}
	tests := []struct {
		direction database.Direction
		target    string
		// want is the key the following Next yields, or empty for
		// ErrExhausted.
		want      string
		wantState database.CursorState
	}{
		{direction: database.Forward, target: "3", want: "3", wantState: database.Positioned},
		{direction: database.Forward, target: "4", want: "5", wantState: database.Positioned},
		{direction: database.Forward, target: "5", want: "5", wantState: database.Positioned},
		{direction: database.Forward, target: "6", want: "", wantState: database.AfterStop},
		{direction: database.Forward, target: "0", want: "3", wantState: database.BeforeStart},
		{direction: database.Forward, target: "9", want: "", wantState: database.AfterStop},
		{direction: database.Reverse, target: "5", want: "5", wantState: database.Positioned},
		{direction: database.Reverse, target: "4", want: "3", wantState: database.Positioned},
		{direction: database.Reverse, target: "6", want: "5", wantState: database.Positioned},
		{direction: database.Reverse, target: "7", want: "5", wantState: database.AfterStop},
		{direction: database.Reverse, target: "9", want: "5", wantState: database.AfterStop},
		{direction: database.Reverse, target: "0", want: "", wantState: database.BeforeStart},
	}

	for _, test := range tests {
		caseName := fmt.Sprintf("%s: %s seek to %s", testName, test.direction, test.target)
		cursor, err := db.Iterate(r, test.direction, database.KeysAndValues)
		if err != nil {
			t.Fatalf("%s: Iterate unexpectedly failed: %s", caseName, err)
		}

		err = cursor.Seek([]byte(test.target))
		if err != nil {
			t.Fatalf("%s: Seek unexpectedly failed: %s", caseName, err)
		}
		if cursor.State() != test.wantState {
			t.Fatalf("%s: unexpected state. Want: %s, got: %s", caseName, test.wantState, cursor.State())
		}
		if test.want == "" {
			expectExhausted(t, caseName, cursor.Next)
		} else {
			expectStep(t, caseName, cursor.Next, test.want)
		}
		cursor.Close()
	}

	// Seeking does not stop a cursor from stepping back.
	cursor, err := db.Iterate(database.Range{}, database.Forward, database.KeysOnly)
	if err != nil {
		t.Fatalf("%s: Iterate unexpectedly failed: %s", testName, err)
	}
	defer cursor.Close()
	err = cursor.Seek([]byte("4"))
	if err != nil {
		t.Fatalf("%s: Seek unexpectedly failed: %s", testName, err)
	}
	expectStep(t, testName, cursor.Prev, "3")
	expectStep(t, testName, cursor.Prev, "1")
	expectExhausted(t, testName, cursor.Prev)
}

func TestCursorEmptyDatabase(t *testing.T) {
	testForAllDatabaseTypes(t, "TestCursorEmptyDatabase", testCursorEmptyDatabase)
}

func testCursorEmptyDatabase(t *testing.T, db *database.DB, testName string) {
	for _, direction := range []database.Direction{database.Forward, database.Reverse} {
		cursor, err := db.Iterate(database.Range{}, direction, database.KeysAndValues)
		if err != nil {
			t.Fatalf("%s: Iterate unexpectedly failed: %s", testName, err)
		}
		expectExhausted(t, testName, cursor.Next)
		expectExhausted(t, testName, cursor.Prev)
		expectExhausted(t, testName, cursor.Prev)

		for _, seek := range []func() error{cursor.SeekToStart, cursor.SeekToStop} {
			err = seek()
			if err != nil {
				t.Fatalf("%s: seek unexpectedly failed: %s", testName, err)
			}
			expectExhausted(t, testName, cursor.Next)
			expectExhausted(t, testName, cursor.Prev)
		}
		err = cursor.Seek([]byte("foo"))
		if err != nil {
			t.Fatalf("%s: Seek unexpectedly failed: %s", testName, err)
		}
		expectExhausted(t, testName, cursor.Next)
		cursor.Close()
	}
}

func TestCursorProjection(t *testing.T) {
	testForAllDatabaseTypes(t, "TestCursorProjection", testCursorProjection)
}

func testCursorProjection(t *testing.T, db *database.DB, testName string) {
	populateDatabaseForTest(t, db, testName, "k")

	tests := []struct {
		projection database.Projection
		wantKey    []byte
		wantValue  []byte
	}{
		{projection: database.KeysAndValues, wantKey: []byte("k"), wantValue: []byte("value-k")},
		{projection: database.KeysOnly, wantKey: []byte("k"), wantValue: nil},
		{projection: database.ValuesOnly, wantKey: nil, wantValue: []byte("value-k")},
		{projection: database.NoKeysNoValues, wantKey: nil, wantValue: nil},
	}

	for _, test := range tests {
		cursor, err := db.Iterate(database.Range{}, database.Forward, test.projection)
		if err != nil {
			t.Fatalf("%s: Iterate unexpectedly failed: %s", testName, err)
		}
		key, value, err := cursor.Next()
		if err != nil {
			t.Fatalf("%s: Next unexpectedly failed: %s", testName, err)
		}
		if !bytes.Equal(key, test.wantKey) || (key == nil) != (test.wantKey == nil) {
			t.Fatalf("%s: projection %d returned the wrong key. Want: %q, got: %q",
				testName, test.projection, test.wantKey, key)
		}
		if !bytes.Equal(value, test.wantValue) || (value == nil) != (test.wantValue == nil) {
			t.Fatalf("%s: projection %d returned the wrong value. Want: %q, got: %q",
				testName, test.projection, test.wantValue, value)
		}
		expectExhausted(t, testName, cursor.Next)
		cursor.Close()
	}
}

func TestCursorReturnsCopies(t *testing.T) {
	testForAllDatabaseTypes(t, "TestCursorReturnsCopies", testCursorReturnsCopies)
}

func testCursorReturnsCopies(t *testing.T, db *database.DB, testName string) {
	populateDatabaseForTest(t, db, testName, "a", "b")

	cursor, err := db.Iterate(database.Range{}, database.Forward, database.KeysAndValues)
	if err != nil {
		t.Fatalf("%s: Iterate unexpectedly failed: %s", testName, err)
	}
	defer cursor.Close()

	key, value, err := cursor.Next()
	if err != nil {
		t.Fatalf("%s: Next unexpectedly failed: %s", testName, err)
	}
	expectStep(t, testName, cursor.Next, "b")
	if string(key) != "a" || string(value) != "value-a" {
		t.Fatalf("%s: an earlier element changed after stepping: %q=%q", testName, key, value)
	}

	key[0] = 'z'
	got, err := db.Get([]byte("a"), nil)
	if err != nil {
		t.Fatalf("%s: Get unexpectedly failed: %s", testName, err)
	}
	if string(got) != "value-a" {
		t.Fatalf("%s: modifying a returned key changed the database", testName)
	}
}

func TestCursorClose(t *testing.T) {
	testForAllDatabaseTypes(t, "TestCursorClose", testCursorClose)
}

func testCursorClose(t *testing.T, db *database.DB, testName string) {
	populateDatabaseForTest(t, db, testName, "a")

	cursor, err := db.Iterate(database.Range{}, database.Forward, database.KeysAndValues)
	if err != nil {
		t.Fatalf("%s: Iterate unexpectedly failed: %s", testName, err)
	}
	err = cursor.Close()
	if err != nil {
		t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
	}
	if cursor.State() != database.Closed {
		t.Fatalf("%s: unexpected state after Close: %s", testName, cursor.State())
	}

	_, _, err = cursor.Next()
	expectHandleClosed(t, testName, err)
	_, _, err = cursor.Prev()
	expectHandleClosed(t, testName, err)
	expectHandleClosed(t, testName, cursor.Seek([]byte("a")))
	expectHandleClosed(t, testName, cursor.SeekToStart())
	expectHandleClosed(t, testName, cursor.SeekToStop())

	err = cursor.Close()
	if err != nil {
		t.Fatalf("%s: second Close unexpectedly failed: %s", testName, err)
	}
}

func TestRangeWithPrefixAndBound(t *testing.T) {
	testForAllDatabaseTypes(t, "TestRangeWithPrefixAndBound", testRangeWithPrefixAndBound)
}

func testRangeWithPrefixAndBound(t *testing.T, db *database.DB, testName string) {
	ranges := []database.Range{
		{Prefix: []byte("p"), Start: database.Inclusive([]byte("p1"))},
		{Prefix: []byte("p"), Stop: database.Exclusive([]byte("p9"))},
		{Prefix: []byte{}, Start: database.Inclusive([]byte("a"))},
	}
	for _, r := range ranges {
		_, err := db.Iterate(r, database.Forward, database.KeysAndValues)
		if err == nil {
			t.Fatalf("%s: Iterate unexpectedly accepted a prefix with a bound", testName)
		}
		if !database.IsInvalidArgumentError(err) {
			t.Fatalf("%s: Iterate returned the wrong error: %s", testName, err)
		}
	}

	_, err := db.Iterate(database.Range{}, database.Direction(7), database.KeysAndValues)
	if !database.IsInvalidArgumentError(err) {
		t.Fatalf("%s: Iterate accepted an unknown direction: %v", testName, err)
	}
	_, err = db.Iterate(database.Range{}, database.Forward, database.Projection(7))
	if !database.IsInvalidArgumentError(err) {
		t.Fatalf("%s: Iterate accepted an unknown projection: %v", testName, err)
	}
}

// TestPrefixMatchesExpandedBounds checks that a prefix range traverses the
// same keys as the bounds it expands to, including prefixes ending with
// 0xff bytes.
func TestPrefixMatchesExpandedBounds(t *testing.T) {
	testForAllDatabaseTypes(t, "TestPrefixMatchesExpandedBounds", testPrefixMatchesExpandedBounds)
}

func testPrefixMatchesExpandedBounds(t *testing.T, db *database.DB, testName string) {
	keys := []string{"a", "a\x00", "ab", "a\xff", "a\xff\xff", "b", "\xff", "\xff\x01", "\xff\xff"}
	populateDatabaseForTest(t, db, testName, keys...)

	prefixes := []string{"", "a", "a\xff", "\xff", "\xff\xff", "c"}
	for _, prefix := range prefixes {
		expanded := database.Range{Start: database.Inclusive([]byte(prefix))}
		if limit := database.PrefixUpperBound([]byte(prefix)); limit != nil {
			expanded.Stop = database.Exclusive(limit)
		}

		for _, direction := range []database.Direction{database.Forward, database.Reverse} {
			caseName := fmt.Sprintf("%s: prefix %q %s", testName, prefix, direction)
			want := iterateKeys(t, caseName, db, expanded, direction)
			got := iterateKeys(t, caseName, db, database.KeyPrefix([]byte(prefix)), direction)
			expectKeys(t, caseName, got, want...)
			for _, key := range got {
				if !bytes.HasPrefix([]byte(key), []byte(prefix)) {
					t.Fatalf("%s: key %q does not have the prefix", caseName, key)
				}
			}
		}
	}
}
