package database

// view is the read path shared by DB, PrefixView and SnapshotView: the
// reader serving it, the lifecycle guarding it and the prefix its keys are
// relative to.
type view struct {
	lc     *lifecycle
	epoch  uint64
	reader Reader
	order  KeyOrder
	prefix []byte
}

func (v *view) get(key []byte, options *ReadOptions) ([]byte, error) {
	release, err := v.lc.acquire(v.epoch)
	if err != nil {
		return nil, err
	}
	defer release()

	return v.reader.Get(v.absoluteKey(key), options)
}

func (v *view) has(key []byte, options *ReadOptions) (bool, error) {
	_, err := v.get(key, options)
	if err != nil {
		if IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (v *view) iterate(r Range, direction Direction, projection Projection, options *ReadOptions) (*Cursor, error) {
	absolute, err := r.withPrefix(v.prefix)
	if err != nil {
		return nil, err
	}

	release, err := v.lc.acquire(v.epoch)
	if err != nil {
		return nil, err
	}
	defer release()

	return newCursor(v.lc, v.epoch, v.reader, v.order, &cursorParams{
		start:      absolute.Start,
		stop:       absolute.Stop,
		prefix:     v.prefix,
		direction:  direction,
		projection: projection,
		options:    options,
	})
}

// sub returns a view of the keys of v beginning with prefix.
func (v *view) sub(prefix []byte) view {
	sub := *v
	sub.prefix = concat(v.prefix, prefix)
	return sub
}

func (v *view) absoluteKey(key []byte) []byte {
	if len(v.prefix) == 0 {
		return key
	}
	return concat(v.prefix, key)
}
