package dnd

import (
	"sync"
	"time"

	"filtertree/internal/model"
)

// CancelFunc stops a pending delayed call. Calling it after the call ran, or
// more than once, does nothing.
type CancelFunc func()

// Delay runs fn on its own goroutine after wait unless cancelled first.
func Delay(wait time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(wait, fn)
	return func() { t.Stop() }
}

// Expander opens a collapsed group after the pointer has rested on its
// make-child band for Wait. At most one expansion is pending at a time.
//
// Fire is called on the timer goroutine and must only hand the id off (for
// example by sending a message to the UI loop); it must not touch the tree.
type Expander struct {
	Wait time.Duration
	Fire func(itemID string)

	mu      sync.Mutex
	pending string
	cancel  CancelFunc
	gen     int
}

// Hover reports the instruction currently computed for target while another
// item is dragged over it.
func (e *Expander) Hover(target model.Node, ins model.Instruction) {
	if ins.Type != model.InstructionMakeChild {
		e.Cancel()
		return
	}
	if !target.HasChildren() || target.Open {
		// Nothing to expand here, and the pointer has left any pending group.
		if id, ok := e.Pending(); ok && id != target.ID {
			e.Cancel()
		}
		return
	}

	id := target.ID
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		if e.pending == id {
			return
		}
		// The pointer moved to another group's make-child band.
		e.cancel()
	}
	e.gen++
	gen := e.gen
	e.pending = id
	e.cancel = Delay(e.Wait, func() {
		e.mu.Lock()
		fire := e.gen == gen && e.cancel != nil
		if fire {
			e.pending, e.cancel = "", nil
		}
		e.mu.Unlock()
		if fire && e.Fire != nil {
			e.Fire(id)
		}
	})
}

// Pending returns the id waiting to be expanded, if any.
func (e *Expander) Pending() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending, e.cancel != nil
}

// Cancel drops any pending expansion. Used on drag-leave, drop, drag cancel
// and shutdown.
func (e *Expander) Cancel() {
	e.mu.Lock()
	c := e.cancel
	e.gen++
	e.pending, e.cancel = "", nil
	e.mu.Unlock()
	if c != nil {
		c()
	}
}
