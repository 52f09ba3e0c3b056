/*
Package database provides ordered key-value databases backed by a pluggable
storage engine.

Overview

The engine itself (goleveldb or pebble, see the ldb and pebbledb packages)
owns storage. This package builds the traversal and isolation layer on top
of the raw cursors, snapshots and batches engines expose.

Cursors

A Cursor traverses a Range of keys forward or in reverse and can be stepped
both ways, one element at a time. Stepping past an edge of the range
returns ErrExhausted and leaves the cursor at that edge.

Views

SubKeyspace returns a PrefixView, which reads and writes the keys beginning
with a prefix using keys relative to it. Snapshot returns a SnapshotView,
which reads the database as it was when the snapshot was taken.

Batches

A Batch buffers puts and deletes and writes them atomically. Update wraps
the common pattern of filling a batch inside a function and writing it
afterwards.

Closing

Closing a DB invalidates every object derived from it. Using any of them
afterwards returns ErrHandleClosed.
*/
package database
