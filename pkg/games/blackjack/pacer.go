package blackjack

import (
	"iter"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Default presentation delays
const (
	DefaultRevealDelay = 600 * time.Millisecond
	DefaultStepDelay   = 800 * time.Millisecond
	DefaultResultDelay = 500 * time.Millisecond
)

// Pacer replays an already resolved dealer sequence with delays between the
// steps. It never touches game state.
type Pacer struct {
	clock  quartz.Clock
	Reveal time.Duration
	Step   time.Duration
	Result time.Duration
}

// NewPacer creates a pacer with the default delays
func NewPacer(clock quartz.Clock) *Pacer {
	return &Pacer{
		clock:  clock,
		Reveal: DefaultRevealDelay,
		Step:   DefaultStepDelay,
		Result: DefaultResultDelay,
	}
}

// Replay is one paced run of a sequence
type Replay struct {
	mu       sync.Mutex
	pacer    *Pacer
	next     func() (Hand, bool)
	stopPull func()
	show     func(Hand)

	pending    Hand
	hasPending bool
	timer      *quartz.Timer
	finished   bool
	done       chan struct{}
}

// Replay shows each hand of steps after the reveal delay for the first and
// the step delay for the rest; Done closes once the result delay after the
// last hand has passed. show runs on the clock's callback goroutine and must
// not call Stop.
func (p *Pacer) Replay(steps iter.Seq[Hand], show func(Hand)) *Replay {
	next, stop := iter.Pull(steps)
	r := &Replay{
		pacer:    p,
		next:     next,
		stopPull: stop,
		show:     show,
		done:     make(chan struct{}),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending, r.hasPending = r.next()
	if !r.hasPending {
		r.finish()
		return r
	}
	r.timer = p.clock.AfterFunc(p.Reveal, r.advance, "pacer", "reveal")
	return r
}

func (r *Replay) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return
	}
	if !r.hasPending {
		r.finish()
		return
	}

	r.show(r.pending)
	r.pending, r.hasPending = r.next()

	delay := r.pacer.Step
	if !r.hasPending {
		delay = r.pacer.Result
	}
	r.timer = r.pacer.clock.AfterFunc(delay, r.advance, "pacer", "step")
}

func (r *Replay) finish() {
	r.finished = true
	r.stopPull()
	close(r.done)
}

// Stop cancels the remaining steps. It reports whether the replay was still
// running.
func (r *Replay) Stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return false
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.finish()
	return true
}

// Done is closed when the replay has finished or been stopped
func (r *Replay) Done() <-chan struct{} {
	return r.done
}
