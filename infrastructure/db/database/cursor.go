package database

import "bytes"

// Direction is the traversal direction of a Cursor.
type Direction int

// The traversal directions. A Forward cursor steps in ascending key order,
// a Reverse one in descending key order.
const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Projection selects which parts of an element a Cursor reports. Parts that
// are not selected are returned as nil.
type Projection int

// The supported projections.
const (
	KeysAndValues Projection = iota
	KeysOnly
	ValuesOnly
	NoKeysNoValues
)

func (p Projection) includesKeys() bool {
	return p == KeysAndValues || p == KeysOnly
}

func (p Projection) includesValues() bool {
	return p == KeysAndValues || p == ValuesOnly
}

// CursorState is the position of a Cursor relative to its range.
type CursorState int

// The states of a cursor. BeforeStart and AfterStop are one step past the
// start and stop edges of the range, whatever the traversal direction.
const (
	BeforeStart CursorState = iota
	Positioned
	AfterStop
	Closed
)

func (s CursorState) String() string {
	switch s {
	case BeforeStart:
		return "before start"
	case Positioned:
		return "positioned"
	case AfterStop:
		return "after stop"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// rawSide records where the raw cursor sits relative to the cursor's
// position. A cursor is always positioned in a gap between two adjacent
// elements (or before the first, or after the last); the raw cursor sits
// either on the element just below that gap, on the element just above it,
// or somewhere that has to be re-seeked.
type rawSide int

const (
	rawUnknown rawSide = iota
	rawBelow
	rawAbove
)

// Cursor traverses the elements of a Range in a Direction.
//
// Next returns the following element in traversal direction and moves past
// it; Prev moves back and returns the element it moved past. Calling Next
// then Prev therefore returns the same element twice. Stepping past an edge
// of the range returns ErrExhausted and leaves the cursor at that edge,
// from which stepping the other way returns the edge element again.
//
// A Cursor must not be used by more than one goroutine at a time. It stays
// usable until it is closed or until the handle (or snapshot) it was
// created from is closed; from then on every method returns
// ErrHandleClosed.
type Cursor struct {
	lc         *lifecycle
	epoch      uint64
	resourceID uint64

	raw   RawCursor
	order KeyOrder

	// start and stop are absolute.
	start *Bound
	stop  *Bound

	// prefix is stripped from the keys the cursor returns and prepended to
	// Seek targets.
	prefix []byte

	direction  Direction
	projection Projection

	position cursorPosition
}

type cursorPosition struct {
	state CursorState
	side  rawSide
}

// cursorParams describes a cursor to create. start, stop and prefix are
// absolute.
type cursorParams struct {
	start      *Bound
	stop       *Bound
	prefix     []byte
	direction  Direction
	projection Projection
	options    *ReadOptions
}

// newCursor creates a cursor reading from reader. The caller must hold lc
// acquired at epoch.
func newCursor(lc *lifecycle, epoch uint64, reader Reader, order KeyOrder, params *cursorParams) (*Cursor, error) {
	if params.direction != Forward && params.direction != Reverse {
		return nil, invalidArgumentf("unknown direction %d", params.direction)
	}
	if params.projection < KeysAndValues || params.projection > NoKeysNoValues {
		return nil, invalidArgumentf("unknown projection %d", params.projection)
	}

	raw, err := reader.NewRawCursor(params.options)
	if err != nil {
		return nil, err
	}

	cursor := &Cursor{
		lc:         lc,
		epoch:      epoch,
		raw:        raw,
		order:      order,
		start:      copyBound(params.start),
		stop:       copyBound(params.stop),
		prefix:     copyBytes(params.prefix),
		direction:  params.direction,
		projection: params.projection,
	}

	// Position the raw cursor at the edge traversal starts from, so that
	// engine errors surface here and the first step needs no seek.
	if cursor.direction == Forward {
		cursor.seekLowEdge()
		cursor.position = cursorPosition{state: BeforeStart, side: rawAbove}
	} else {
		cursor.seekHighEdge()
		cursor.position = cursorPosition{state: AfterStop, side: rawBelow}
	}
	if !raw.Valid() {
		if err := raw.Error(); err != nil {
			_ = raw.Close()
			return nil, err
		}
	}

	cursor.resourceID = lc.track(func() {
		_ = raw.Close()
	})
	return cursor, nil
}

func copyBound(bound *Bound) *Bound {
	if bound == nil {
		return nil
	}
	return &Bound{Key: copyBytes(bound.Key), Inclusive: bound.Inclusive}
}

// State returns the current state of the cursor.
func (c *Cursor) State() CursorState {
	return c.position.state
}

// Direction returns the traversal direction of the cursor.
func (c *Cursor) Direction() Direction {
	return c.direction
}

// Next returns the following element in traversal direction. It returns
// ErrExhausted once the cursor steps past the last element of its range.
func (c *Cursor) Next() (key, value []byte, err error) {
	if c.direction == Forward {
		return c.step(c.moveUp)
	}
	return c.step(c.moveDown)
}

// Prev returns the preceding element in traversal direction. It returns
// ErrExhausted once the cursor steps back past the first element of its
// range.
func (c *Cursor) Prev() (key, value []byte, err error) {
	if c.direction == Forward {
		return c.step(c.moveDown)
	}
	return c.step(c.moveUp)
}

func (c *Cursor) step(move func() error) (key, value []byte, err error) {
	release, err := c.acquire()
	if err != nil {
		return nil, nil, err
	}
	defer release()

	err = move()
	if err != nil {
		return nil, nil, err
	}
	return c.element()
}

// Seek positions the cursor so that the following call to Next returns the
// first element greater than or equal to target (Forward), or the last
// element less than or equal to target (Reverse). A target outside the
// range puts the cursor at the nearer edge.
func (c *Cursor) Seek(target []byte) error {
	release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()

	absoluteTarget := concat(c.prefix, target)
	if c.violatesLow(absoluteTarget) {
		c.position = cursorPosition{state: BeforeStart}
		return nil
	}
	if c.violatesHigh(absoluteTarget) {
		c.position = cursorPosition{state: AfterStop}
		return nil
	}

	if !c.raw.Seek(absoluteTarget) {
		c.position = cursorPosition{state: AfterStop}
		return c.raw.Error()
	}
	if c.direction == Forward {
		if c.violatesHigh(c.raw.Key()) {
			c.position = cursorPosition{state: AfterStop}
			return nil
		}
		c.position = cursorPosition{state: Positioned, side: rawAbove}
		return nil
	}

	if c.order.Compare(c.raw.Key(), absoluteTarget) == 0 {
		c.position = cursorPosition{state: Positioned, side: rawBelow}
		return nil
	}
	c.position = cursorPosition{state: Positioned, side: rawAbove}
	return nil
}

// SeekToStart puts the cursor before the start edge of its range. For a
// Forward cursor the following Next returns the first element; for a Reverse
// one the following Prev does.
func (c *Cursor) SeekToStart() error {
	release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()

	c.position = cursorPosition{state: BeforeStart}
	return nil
}

// SeekToStop puts the cursor after the stop edge of its range. For a Forward
// cursor the following Prev returns the last element; for a Reverse one the
// following Next does.
func (c *Cursor) SeekToStop() error {
	release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()

	c.position = cursorPosition{state: AfterStop}
	return nil
}

// Close releases the cursor. Closing a closed cursor, or a cursor whose
// handle was closed, does nothing.
func (c *Cursor) Close() error {
	if c.position.state == Closed {
		return nil
	}
	c.position = cursorPosition{state: Closed}

	release, err := c.lc.acquire(c.epoch)
	if err != nil {
		// The handle released the raw cursor when it closed.
		return nil
	}
	defer release()

	c.lc.untrack(c.resourceID)
	return c.raw.Close()
}

func (c *Cursor) acquire() (release func(), err error) {
	if c.position.state == Closed {
		return nil, ErrHandleClosed
	}
	return c.lc.acquire(c.epoch)
}

// moveUp moves the cursor over the element just above its position, in key
// order.
func (c *Cursor) moveUp() error {
	switch c.position.state {
	case AfterStop:
		return ErrExhausted
	case BeforeStart:
		if c.position.side != rawAbove {
			c.seekLowEdge()
		}
	case Positioned:
		if c.position.side == rawBelow {
			c.raw.Next()
		}
	}

	if !c.raw.Valid() || c.violatesHigh(c.raw.Key()) {
		c.position = cursorPosition{state: AfterStop}
		if err := c.raw.Error(); err != nil {
			return err
		}
		return ErrExhausted
	}
	c.position = cursorPosition{state: Positioned, side: rawBelow}
	return nil
}

// moveDown moves the cursor over the element just below its position, in
// key order.
func (c *Cursor) moveDown() error {
	switch c.position.state {
	case BeforeStart:
		return ErrExhausted
	case AfterStop:
		if c.position.side != rawBelow {
			c.seekHighEdge()
		}
	case Positioned:
		if c.position.side == rawAbove {
			c.raw.Prev()
		}
	}

	if !c.raw.Valid() || c.violatesLow(c.raw.Key()) {
		c.position = cursorPosition{state: BeforeStart}
		if err := c.raw.Error(); err != nil {
			return err
		}
		return ErrExhausted
	}
	c.position = cursorPosition{state: Positioned, side: rawAbove}
	return nil
}

// seekLowEdge positions the raw cursor at the lowest element of the range,
// or past the end of the keyspace.
func (c *Cursor) seekLowEdge() {
	if c.start == nil {
		c.raw.First()
		return
	}
	if c.raw.Seek(c.start.Key) && !c.start.Inclusive &&
		c.order.Compare(c.raw.Key(), c.start.Key) == 0 {

		c.raw.Next()
	}
}

// seekHighEdge positions the raw cursor at the highest element of the
// range, or before the start of the keyspace.
func (c *Cursor) seekHighEdge() {
	if c.stop == nil {
		c.raw.Last()
		return
	}
	if !c.raw.Seek(c.stop.Key) {
		if c.raw.Error() != nil {
			return
		}
		c.raw.Last()
		return
	}
	comparison := c.order.Compare(c.raw.Key(), c.stop.Key)
	if comparison > 0 || (comparison == 0 && !c.stop.Inclusive) {
		c.raw.Prev()
	}
}

func (c *Cursor) violatesLow(key []byte) bool {
	if c.start == nil {
		return false
	}
	comparison := c.order.Compare(key, c.start.Key)
	return comparison < 0 || (comparison == 0 && !c.start.Inclusive)
}

func (c *Cursor) violatesHigh(key []byte) bool {
	if c.stop == nil {
		return false
	}
	comparison := c.order.Compare(key, c.stop.Key)
	return comparison > 0 || (comparison == 0 && !c.stop.Inclusive)
}

// element returns copies of the projected parts of the raw cursor's
// element.
func (c *Cursor) element() (key, value []byte, err error) {
	if c.projection.includesKeys() {
		key = copyBytes(bytes.TrimPrefix(c.raw.Key(), c.prefix))
	}
	if c.projection.includesValues() {
		value = copyBytes(c.raw.Value())
		if value == nil {
			value = []byte{}
		}
	}
	return key, value, nil
}
