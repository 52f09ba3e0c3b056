package database

// PrefixView is a view of the keys of a DB beginning with a prefix. Keys
// given to and returned by a PrefixView are relative: the prefix is added
// on the way in and removed on the way out.
//
// A PrefixView holds no resources of its own; it is valid as long as its DB
// is open.
type PrefixView struct {
	db   *DB
	view view
}

// DB returns the database the view belongs to.
func (p *PrefixView) DB() *DB {
	return p.db
}

// Prefix returns the absolute prefix of the view.
func (p *PrefixView) Prefix() []byte {
	return copyBytes(p.view.prefix)
}

// Get returns the value stored under the relative key, or an error
// matching ErrNotFound if there is none.
func (p *PrefixView) Get(key []byte, options *ReadOptions) ([]byte, error) {
	return p.view.get(key, options)
}

// Has returns true if the view contains the given relative key.
func (p *PrefixView) Has(key []byte, options *ReadOptions) (bool, error) {
	return p.view.has(key, options)
}

// Put sets the value for the given relative key.
func (p *PrefixView) Put(key, value []byte, options *WriteOptions) error {
	return p.db.put(p.view.epoch, p.view.absoluteKey(key), value, options)
}

// Delete deletes the value for the given relative key.
func (p *PrefixView) Delete(key []byte, options *WriteOptions) error {
	return p.db.delete(p.view.epoch, p.view.absoluteKey(key), options)
}

// Iterate creates a cursor over the relative keys selected by r. Unbounded
// sides of r stop at the edges of the view.
func (p *PrefixView) Iterate(r Range, direction Direction, projection Projection) (*Cursor, error) {
	return p.view.iterate(r, direction, projection, nil)
}

// IterateWithOptions is Iterate with explicit read options.
func (p *PrefixView) IterateWithOptions(r Range, direction Direction, projection Projection,
	options *ReadOptions) (*Cursor, error) {

	return p.view.iterate(r, direction, projection, options)
}

// Snapshot pins the current state of the database and returns a snapshot
// with the same prefix as the view.
func (p *PrefixView) Snapshot() (*SnapshotView, error) {
	return newSnapshotView(p.db, p.view.prefix)
}

// NewBatch creates an empty batch whose keys are relative to the view.
func (p *PrefixView) NewBatch(options *BatchOptions) (*Batch, error) {
	return newBatch(p.db, p.view.prefix, options)
}

// Update is DB.Update with keys relative to the view.
func (p *PrefixView) Update(options *BatchOptions, fn func(batch *Batch) error) error {
	batch, err := p.NewBatch(options)
	if err != nil {
		return err
	}
	return batch.run(fn)
}

// SubKeyspace returns a view of the relative keys beginning with prefix.
// It is equivalent to a view created from the DB with the two prefixes
// concatenated.
func (p *PrefixView) SubKeyspace(prefix []byte) *PrefixView {
	return &PrefixView{
		db:   p.db,
		view: p.view.sub(prefix),
	}
}
