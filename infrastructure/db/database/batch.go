package database

import (
	"fmt"

	"github.com/pkg/errors"
)

// Batch buffers put and delete operations and writes them to its DB as a
// single atomic unit. It holds no engine resources until Write is called.
//
// A Batch must not be used by more than one goroutine at a time. Once its
// DB is closed, every method returning an error returns ErrHandleClosed.
type Batch struct {
	db         *DB
	epoch      uint64
	prefix     []byte
	options    BatchOptions
	operations []Operation
}

func newBatch(db *DB, prefix []byte, options *BatchOptions) (*Batch, error) {
	if !db.lc.isValid(db.view.epoch) {
		return nil, ErrHandleClosed
	}
	batch := &Batch{
		db:     db,
		epoch:  db.view.epoch,
		prefix: copyBytes(prefix),
	}
	if options != nil {
		batch.options = *options
	}
	return batch, nil
}

// Put buffers setting the value of key. key and value are copied.
func (b *Batch) Put(key, value []byte) error {
	if !b.db.lc.isValid(b.epoch) {
		return ErrHandleClosed
	}
	if value == nil {
		value = []byte{}
	}
	b.operations = append(b.operations, Operation{
		Type:  OperationPut,
		Key:   concat(b.prefix, key),
		Value: copyBytes(value),
	})
	return nil
}

// Delete buffers deleting key. key is copied.
func (b *Batch) Delete(key []byte) error {
	if !b.db.lc.isValid(b.epoch) {
		return ErrHandleClosed
	}
	b.operations = append(b.operations, Operation{
		Type: OperationDelete,
		Key:  concat(b.prefix, key),
	})
	return nil
}

// Write applies every buffered operation atomically, in the order they were
// buffered. The buffer is kept; call Clear to empty it.
func (b *Batch) Write() error {
	release, err := b.db.lc.acquire(b.epoch)
	if err != nil {
		return err
	}
	defer release()

	return b.db.engine.ApplyBatch(b.operations, &WriteOptions{Sync: b.options.Sync})
}

// Clear discards every buffered operation.
func (b *Batch) Clear() error {
	if !b.db.lc.isValid(b.epoch) {
		return ErrHandleClosed
	}
	b.operations = nil
	return nil
}

// Len returns the number of buffered operations.
func (b *Batch) Len() int {
	return len(b.operations)
}

// run calls fn and writes the batch afterwards. If fn returns an error or
// panics, the batch is still written unless it is transactional, in which
// case it is discarded. fn's error or panic is passed on to the caller. If
// writing after a failed fn also fails, the returned error wraps fn's error
// and names the write failure.
func (b *Batch) run(fn func(batch *Batch) error) (err error) {
	panicked := true
	defer func() {
		if !panicked {
			return
		}
		r := recover()
		if r == nil {
			// fn called runtime.Goexit
			b.logWriteFailure(b.finishAfterFailure(), "goroutine exit")
			return
		}
		b.logWriteFailure(b.finishAfterFailure(), fmt.Sprintf("panic: %s", r))
		panic(r)
	}()

	err = fn(b)
	panicked = false
	if err != nil {
		writeErr := b.finishAfterFailure()
		if writeErr != nil {
			return errors.Wrapf(err, "writing %d buffered operations failed (%s) after",
				len(b.operations), writeErr)
		}
		return err
	}
	return b.Write()
}

// finishAfterFailure writes a non-transactional batch, or discards a
// transactional one.
func (b *Batch) finishAfterFailure() error {
	if b.options.Transactional {
		log.Debugf("Discarding %d operations of a transactional batch", len(b.operations))
		b.operations = nil
		return nil
	}
	return b.Write()
}

func (b *Batch) logWriteFailure(err error, cause string) {
	if err != nil {
		log.Warnf("Failed writing %d operations of a batch after %s: %s", len(b.operations), cause, err)
	}
}
