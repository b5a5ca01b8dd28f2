package flappy

import "github.com/vovakirdan/skyhop/internal/core"

// InputQueue hands actions from an input goroutine to the goroutine that ticks
// the game. Any number of goroutines may Push; exactly one may Drain.
type InputQueue struct {
	ch chan core.Action
}

// NewInputQueue creates a queue that buffers up to size actions.
func NewInputQueue(size int) *InputQueue {
	if size < 1 {
		size = 1
	}
	return &InputQueue{ch: make(chan core.Action, size)}
}

// Push enqueues an action without blocking. It returns false when the queue
// is full and the action was dropped.
func (q *InputQueue) Push(a core.Action) bool {
	select {
	case q.ch <- a:
		return true
	default:
		return false
	}
}

// Drain folds everything queued so far into one input frame. Call it at the
// start of each tick.
func (q *InputQueue) Drain() core.InputFrame {
	frame := core.NewInputFrame()
	for {
		select {
		case a := <-q.ch:
			frame.Set(a)
		default:
			return frame
		}
	}
}
