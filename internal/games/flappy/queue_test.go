package flappy

import (
	"sync"
	"testing"

	"github.com/vovakirdan/skyhop/internal/core"
)

func TestInputQueueDrain(t *testing.T) {
	q := NewInputQueue(4)

	if !q.Drain().Empty() {
		t.Error("empty queue should drain to an empty frame")
	}

	q.Push(core.ActionJump)
	q.Push(core.ActionJump)
	q.Push(core.ActionRestart)

	frame := q.Drain()
	if !frame.Has(core.ActionJump) || !frame.Has(core.ActionRestart) {
		t.Errorf("drained frame = %v", frame)
	}
	if !q.Drain().Empty() {
		t.Error("second drain should be empty")
	}
}

func TestInputQueueDropsWhenFull(t *testing.T) {
	q := NewInputQueue(1)

	if !q.Push(core.ActionJump) {
		t.Fatal("first push should succeed")
	}
	if q.Push(core.ActionRestart) {
		t.Error("push into a full queue should report a drop")
	}
	if q.Drain().Has(core.ActionRestart) {
		t.Error("dropped action should not be delivered")
	}
}

func TestInputQueueConcurrentProducers(t *testing.T) {
	q := NewInputQueue(64)
	g := newTestGame(t, 5)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Push(core.ActionJump)
		}()
	}
	wg.Wait()

	s := g.Step(q.Drain())
	if s.Avatar.Velocity != -8 {
		t.Errorf("queued jump should apply at the start of the tick, velocity = %d", s.Avatar.Velocity)
	}
}
