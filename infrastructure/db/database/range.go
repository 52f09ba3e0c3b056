package database

// Bound delimits one edge of a Range.
type Bound struct {
	Key       []byte
	Inclusive bool
}

// Inclusive returns a bound that includes key.
func Inclusive(key []byte) *Bound {
	return &Bound{Key: key, Inclusive: true}
}

// Exclusive returns a bound that excludes key.
func Exclusive(key []byte) *Bound {
	return &Bound{Key: key, Inclusive: false}
}

// Range selects the keys a cursor traverses. A nil Start or Stop leaves that
// side unbounded.
//
// A non-nil Prefix (an empty one included) selects every key beginning with
// it and cannot be combined with Start or Stop.
type Range struct {
	Start  *Bound
	Stop   *Bound
	Prefix []byte
}

// KeyPrefix returns a Range over all keys beginning with prefix. A nil
// prefix selects every key.
//
// The upper bound of the range is computed bytewise, so under a custom
// KeyOrder the prefix must still group its keys contiguously.
func KeyPrefix(prefix []byte) Range {
	if prefix == nil {
		prefix = []byte{}
	}
	return Range{Prefix: prefix}
}

// KeyRange is a half-open [Start, Limit) interval used for size estimation
// and compaction. A nil Start or Limit is unbounded.
type KeyRange struct {
	Start []byte
	Limit []byte
}

// PrefixUpperBound returns the smallest key that sorts after every key
// beginning with prefix, under the bytewise order. It returns nil when no
// such key exists, i.e. when prefix is empty or made only of 0xff bytes.
func PrefixUpperBound(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			limit := make([]byte, i+1)
			copy(limit, prefix)
			limit[i]++
			return limit
		}
	}
	return nil
}

// bounds returns the start and stop bounds described by r, expanding its
// prefix if it has one.
func (r Range) bounds() (start, stop *Bound, err error) {
	if r.Prefix == nil {
		return r.Start, r.Stop, nil
	}
	if r.Start != nil || r.Stop != nil {
		return nil, nil, invalidArgumentf("a range cannot have both a prefix and a start or stop bound")
	}
	start = Inclusive(r.Prefix)
	if limit := PrefixUpperBound(r.Prefix); limit != nil {
		stop = Exclusive(limit)
	}
	return start, stop, nil
}

// withPrefix translates r, whose keys are relative to prefix, into a range of
// absolute keys. Unbounded sides are clipped to the keys beginning with
// prefix.
func (r Range) withPrefix(prefix []byte) (Range, error) {
	start, stop, err := r.bounds()
	if err != nil {
		return Range{}, err
	}
	if len(prefix) == 0 {
		return Range{Start: start, Stop: stop}, nil
	}

	absolute := Range{}
	if start != nil {
		absolute.Start = &Bound{Key: concat(prefix, start.Key), Inclusive: start.Inclusive}
	} else {
		absolute.Start = Inclusive(prefix)
	}
	if stop != nil {
		absolute.Stop = &Bound{Key: concat(prefix, stop.Key), Inclusive: stop.Inclusive}
	} else if limit := PrefixUpperBound(prefix); limit != nil {
		absolute.Stop = Exclusive(limit)
	}
	return absolute, nil
}

// concat returns a new slice holding a followed by b.
func concat(a, b []byte) []byte {
	joined := make([]byte, len(a)+len(b))
	copy(joined, a)
	copy(joined[len(a):], b)
	return joined
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
