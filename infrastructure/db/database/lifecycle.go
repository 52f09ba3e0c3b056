package database

import "sync"

// lifecycle is the epoch shared by a handle and every object derived from
// it. Derived objects remember the epoch they were created in; closing the
// lifecycle bumps the epoch, which turns every later use of those objects
// into an ErrHandleClosed.
//
// A lifecycle may have a parent (a snapshot's lifecycle is a child of its
// handle's). An epoch is valid only if every lifecycle up the chain is still
// open.
//
// Operations that touch engine state run between acquire and the returned
// release func, which holds the lifecycle's lock in shared mode. close takes
// it exclusively, so a handle is never torn down in the middle of an engine
// call. Locks are always taken from the root down.
type lifecycle struct {
	parent      *lifecycle
	parentEpoch uint64

	mu     sync.RWMutex
	epoch  uint64
	closed bool

	resourcesLock  sync.Mutex
	nextResourceID uint64
	resources      map[uint64]func()
}

func newLifecycle() *lifecycle {
	return &lifecycle{
		epoch:     1,
		resources: make(map[uint64]func()),
	}
}

// newChild creates a lifecycle that ends when either itself or lc closes.
// The caller must hold lc acquired.
func (lc *lifecycle) newChild(parentEpoch uint64) *lifecycle {
	child := newLifecycle()
	child.parent = lc
	child.parentEpoch = parentEpoch
	return child
}

// currentEpoch returns the live epoch. Objects created while the lifecycle is
// acquired store it.
func (lc *lifecycle) currentEpoch() uint64 {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	return lc.epoch
}

// acquire checks that epoch is still the live epoch of lc and of all of its
// ancestors and keeps them that way until release is called.
func (lc *lifecycle) acquire(epoch uint64) (release func(), err error) {
	releaseParent := func() {}
	if lc.parent != nil {
		releaseParent, err = lc.parent.acquire(lc.parentEpoch)
		if err != nil {
			return nil, err
		}
	}

	lc.mu.RLock()
	if lc.closed || lc.epoch != epoch {
		lc.mu.RUnlock()
		releaseParent()
		return nil, ErrHandleClosed
	}
	return func() {
		lc.mu.RUnlock()
		releaseParent()
	}, nil
}

// isValid reports whether epoch is still live, without holding anything.
func (lc *lifecycle) isValid(epoch uint64) bool {
	release, err := lc.acquire(epoch)
	if err != nil {
		return false
	}
	release()
	return true
}

// track registers a function releasing an engine resource owned by an object
// derived from lc. It runs when lc closes, unless untrack is called first.
// The caller must hold lc acquired.
func (lc *lifecycle) track(releaseResource func()) (id uint64) {
	lc.resourcesLock.Lock()
	defer lc.resourcesLock.Unlock()

	lc.nextResourceID++
	id = lc.nextResourceID
	lc.resources[id] = releaseResource
	return id
}

// untrack forgets a resource registered with track. The caller must hold lc
// acquired, which guarantees the resource was not released by close.
func (lc *lifecycle) untrack(id uint64) {
	lc.resourcesLock.Lock()
	defer lc.resourcesLock.Unlock()

	delete(lc.resources, id)
}

// close ends lc: it bumps the epoch, releases every tracked resource and
// finally runs finalize. Closing an already closed lifecycle does nothing
// and returns nil.
func (lc *lifecycle) close(finalize func() error) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if lc.closed {
		return nil
	}
	lc.closed = true
	lc.epoch++

	lc.resourcesLock.Lock()
	resources := lc.resources
	lc.resources = make(map[uint64]func())
	lc.resourcesLock.Unlock()

	for _, releaseResource := range resources {
		releaseResource()
	}
	if finalize == nil {
		return nil
	}
	return finalize()
}
