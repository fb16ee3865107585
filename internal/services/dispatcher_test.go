package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_SerializesPerRoom(t *testing.T) {
	d := NewDispatcher(time.Minute)

	// An unguarded counter: only safe if ops for the same room never overlap.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Do("room1", func() {
				counter++
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestDispatcher_RoomsAreIndependent(t *testing.T) {
	d := NewDispatcher(time.Minute)

	blocked := make(chan struct{})
	release := make(chan struct{})

	go d.Do("slow-room", func() {
		close(blocked)
		<-release
	})
	<-blocked

	// The other room's op must complete while slow-room is stuck.
	done := make(chan struct{})
	go d.Do("fast-room", func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("operation on an independent room was blocked")
	}
	close(release)
}

func TestDispatcher_DoWaitsForCompletion(t *testing.T) {
	d := NewDispatcher(time.Minute)

	ran := false
	d.Do("room1", func() {
		time.Sleep(10 * time.Millisecond)
		ran = true
	})
	assert.True(t, ran, "Do returned before the op finished")
}

func TestDispatcher_IdleWorkersAreReaped(t *testing.T) {
	d := NewDispatcher(20 * time.Millisecond)

	d.Do("room1", func() {})
	assert.Equal(t, 1, d.ActiveRooms())

	assert.Eventually(t, func() bool {
		return d.ActiveRooms() == 0
	}, 2*time.Second, 10*time.Millisecond)

	// A reaped room comes back transparently.
	ran := false
	d.Do("room1", func() { ran = true })
	assert.True(t, ran)
}
