package database

// pinnedSnapshot is an engine snapshot shared by a SnapshotView and the
// views derived from it.
type pinnedSnapshot struct {
	db         *DB
	lc         *lifecycle
	snapshot   EngineSnapshot
	resourceID uint64
}

func (p *pinnedSnapshot) release() error {
	p.snapshot.Release()
	return nil
}

// SnapshotView is a read-only view of a DB pinned at the moment it was
// created. Writes made to the DB afterwards are never visible through it.
//
// A SnapshotView, and every view returned by its SubKeyspace, stays valid
// until any of them is closed or the DB is closed.
type SnapshotView struct {
	pinned *pinnedSnapshot
	view   view
}

func newSnapshotView(db *DB, prefix []byte) (*SnapshotView, error) {
	release, err := db.lc.acquire(db.view.epoch)
	if err != nil {
		return nil, err
	}
	defer release()

	snapshot, err := db.engine.Snapshot()
	if err != nil {
		return nil, err
	}

	lc := db.lc.newChild(db.view.epoch)
	pinned := &pinnedSnapshot{
		db:       db,
		lc:       lc,
		snapshot: snapshot,
	}
	pinned.resourceID = db.lc.track(func() {
		_ = lc.close(pinned.release)
	})

	return &SnapshotView{
		pinned: pinned,
		view: view{
			lc:     lc,
			epoch:  lc.currentEpoch(),
			reader: snapshot,
			order:  db.order,
			prefix: copyBytes(prefix),
		},
	}, nil
}

// Prefix returns the absolute prefix of the snapshot, if any.
func (s *SnapshotView) Prefix() []byte {
	return copyBytes(s.view.prefix)
}

// Get returns the value stored under key when the snapshot was taken, or
// an error matching ErrNotFound if there was none.
func (s *SnapshotView) Get(key []byte, options *ReadOptions) ([]byte, error) {
	return s.view.get(key, options)
}

// Has returns true if key existed when the snapshot was taken.
func (s *SnapshotView) Has(key []byte, options *ReadOptions) (bool, error) {
	return s.view.has(key, options)
}

// Iterate creates a cursor over the keys selected by r, as they were when
// the snapshot was taken.
func (s *SnapshotView) Iterate(r Range, direction Direction, projection Projection) (*Cursor, error) {
	return s.view.iterate(r, direction, projection, nil)
}

// IterateWithOptions is Iterate with explicit read options.
func (s *SnapshotView) IterateWithOptions(r Range, direction Direction, projection Projection,
	options *ReadOptions) (*Cursor, error) {

	return s.view.iterate(r, direction, projection, options)
}

// SubKeyspace returns a view of the keys of the snapshot beginning with
// prefix. It shares the pinned state of s.
func (s *SnapshotView) SubKeyspace(prefix []byte) *SnapshotView {
	return &SnapshotView{
		pinned: s.pinned,
		view:   s.view.sub(prefix),
	}
}

// Close releases the snapshot and invalidates its cursors. Closing a closed
// snapshot, or a snapshot whose DB was closed, does nothing.
func (s *SnapshotView) Close() error {
	db := s.pinned.db
	release, err := db.lc.acquire(db.view.epoch)
	if err != nil {
		// The DB released the snapshot when it closed.
		return nil
	}
	defer release()

	db.lc.untrack(s.pinned.resourceID)
	return s.pinned.lc.close(s.pinned.release)
}

// Closed returns whether the snapshot, or its DB, has been closed.
func (s *SnapshotView) Closed() bool {
	return !s.view.lc.isValid(s.view.epoch)
}
