package services

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const opQueueSize = 64

// roomWorker serializes all mutations of one room: a single goroutine drains
// the op queue in arrival order, so a room's record is never touched by two
// operations at once.
type roomWorker struct {
	ops chan func()
}

// Dispatcher owns one worker per active room. Rooms are fully independent:
// an operation queued for one room never blocks another room's worker.
// Workers that stay idle past idleTimeout shut themselves down and are
// recreated on the next operation.
type Dispatcher struct {
	mu          sync.Mutex
	workers     map[string]*roomWorker
	idleTimeout time.Duration
}

func NewDispatcher(idleTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		workers:     make(map[string]*roomWorker),
		idleTimeout: idleTimeout,
	}
}

// Do runs op on the room's worker and waits for it to finish. Operations for
// the same room execute strictly in arrival order; once picked up they run to
// completion and cannot be cancelled.
func (d *Dispatcher) Do(roomID string, op func()) {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		op()
	}

	for {
		d.mu.Lock()
		w, ok := d.workers[roomID]
		if !ok {
			w = &roomWorker{ops: make(chan func(), opQueueSize)}
			d.workers[roomID] = w
			go w.run(d, roomID)
		}

		select {
		case w.ops <- wrapped:
			d.mu.Unlock()
			<-done
			return
		default:
			// Queue full; back off without holding the lock so other
			// rooms keep moving.
			d.mu.Unlock()
			time.Sleep(time.Millisecond)
		}
	}
}

// ActiveRooms returns the number of rooms with a live worker.
func (d *Dispatcher) ActiveRooms() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.workers)
}

func (w *roomWorker) run(d *Dispatcher, roomID string) {
	idle := time.NewTimer(d.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case op := <-w.ops:
			op()
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(d.idleTimeout)
		case <-idle.C:
			// Exit only while holding the lock with an empty queue:
			// Do enqueues under the same lock, so no op can be lost.
			d.mu.Lock()
			if len(w.ops) == 0 {
				delete(d.workers, roomID)
				d.mu.Unlock()
				logrus.WithField("room_id", roomID).Debug("room worker reaped after idle timeout")
				return
			}
			d.mu.Unlock()
			idle.Reset(d.idleTimeout)
		}
	}
}
