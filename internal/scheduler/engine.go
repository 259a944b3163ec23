package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/daypad/internal/clock"
)

var (
	ErrAlreadyRunning = errors.New("scheduler: interval already running")
	ErrInvalidPeriod  = errors.New("scheduler: invalid period")
)

// Tick is one firing of the active interval. Seq identifies the run that
// produced it so consumers can discard ticks from a run that was stopped.
type Tick struct {
	Seq uint64
	At  time.Time
}

type run struct {
	seq    uint64
	ticker clock.Ticker
	stopCh chan struct{}
	doneCh chan struct{}
}

// Engine drives at most one recurring interval at a time.
type Engine struct {
	mu      sync.Mutex
	clock   clock.Clock
	period  time.Duration
	out     chan Tick
	seq     uint64
	active  *run
	dropped uint64
}

func NewEngine(c clock.Clock, period time.Duration, bufferSize int) (*Engine, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if c == nil {
		c = clock.Real{}
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		clock:  c,
		period: period,
		out:    make(chan Tick, bufferSize),
	}, nil
}

func (e *Engine) C() <-chan Tick {
	return e.out
}

// Start begins a new run and returns its sequence number.
func (e *Engine) Start() (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		return 0, ErrAlreadyRunning
	}
	e.seq++
	r := &run{
		seq:    e.seq,
		ticker: e.clock.NewTicker(e.period),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	e.active = r
	go e.loop(r)
	return r.seq, nil
}

// Stop ends the active run and waits for its goroutine. It reports whether a
// run was active.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	r := e.active
	if r == nil {
		e.mu.Unlock()
		return false
	}
	e.active = nil
	close(r.stopCh)
	e.mu.Unlock()
	<-r.doneCh
	return true
}

func (e *Engine) Current() (uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return 0, false
	}
	return e.active.seq, true
}

func (e *Engine) Running() bool {
	_, ok := e.Current()
	return ok
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop(r *run) {
	defer close(r.doneCh)
	defer r.ticker.Stop()

	for {
		select {
		case at := <-r.ticker.C():
			select {
			case e.out <- Tick{Seq: r.seq, At: at}:
			default:
				atomic.AddUint64(&e.dropped, 1)
			}
		case <-r.stopCh:
			return
		}
	}
}
