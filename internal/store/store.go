// Package store holds the six record stores backing the console: customers,
// users, the auth session, receptions, tasks and messages. Each store owns an
// ordered in-memory collection that is authoritative for reads, persists the
// whole collection to its kv namespace on every mutation, and notifies
// subscribers so consumers can re-read.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/autoshop/console/internal/kv"
)

// persistTimeout bounds a single background write to durable storage.
const persistTimeout = 5 * time.Second

// dateLayout is the human-facing date format stamped on records.
const dateLayout = "2006/01/02"

// base carries the machinery shared by every record store: the kv binding,
// background persistence, change notification and a clock override for tests.
type base struct {
	mu   sync.Mutex
	kv   kv.Store
	name string
	log  *zap.Logger
	now  func() time.Time

	wg sync.WaitGroup

	// writeMu serializes background writes. seq numbers each snapshot
	// under mu; written tracks the highest snapshot persisted, under
	// writeMu, so a stale snapshot never lands after a newer one.
	writeMu sync.Mutex
	seq     uint64
	written uint64

	subMu   sync.Mutex
	subs    map[uint64]chan struct{}
	nextSub uint64
}

func newBase(store kv.Store, name string, log *zap.Logger) base {
	return base{
		kv:   store,
		name: name,
		log:  log.Named(name),
		now:  time.Now,
		subs: make(map[uint64]chan struct{}),
	}
}

// load rehydrates the persisted state into dst. It returns false when the
// namespace has never been written, leaving dst untouched so the caller can
// seed its documented default.
func (b *base) load(ctx context.Context, dst any) (bool, error) {
	data, err := b.kv.Get(ctx, b.name)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// persist serializes state and writes it to the namespace in the background.
// The in-memory mutation is authoritative: a failed write is logged and the
// state is not rolled back. Writes land in snapshot order: one that has been
// superseded by the time its turn comes is dropped, so the newest completed
// write is what rehydration sees. Callers must hold b.mu so the snapshot is
// taken before any later mutation.
func (b *base) persist(state any) {
	data, err := json.Marshal(state)
	if err != nil {
		b.log.Error("marshal state", zap.Error(err))
		return
	}
	b.seq++
	seq := b.seq
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.writeMu.Lock()
		defer b.writeMu.Unlock()
		if seq <= b.written {
			// A newer snapshot already reached durable storage.
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := b.kv.Set(ctx, b.name, data); err != nil {
			b.log.Error("persist collection", zap.Error(err))
			return
		}
		b.written = seq
	}()
	b.notify()
}

// Flush blocks until all background writes issued so far have finished.
// Used on shutdown and in tests.
func (b *base) Flush() {
	b.wg.Wait()
}

// Subscribe registers for change notification. The returned channel receives
// a signal after every mutation; consumers re-read the store on receipt.
// The second return value unsubscribes.
func (b *base) Subscribe() (<-chan struct{}, func()) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	id := b.nextSub
	b.nextSub++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch
	return ch, func() {
		b.subMu.Lock()
		defer b.subMu.Unlock()
		delete(b.subs, id)
	}
}

// notify signals every subscriber without blocking; a subscriber that has
// not drained its previous signal is skipped, since one pending signal
// already forces a re-read.
func (b *base) notify() {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// dateNow returns the store clock formatted as the human-facing date string.
func (b *base) dateNow() string {
	return b.now().Format(dateLayout)
}
