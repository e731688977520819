// Package alerts schedules and delivers pre-task notifications. Planning
// (which alerts a day's task list needs) is pure; delivery runs on a
// heap-ordered trigger engine.
package alerts

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("alerts: invalid trigger time")
	ErrEngineStopped      = errors.New("alerts: engine stopped")
)

// Alert is one scheduled notification. ID is derived from the task and lead
// time so rescheduling a day can never double-book an alert.
type Alert struct {
	ID        string
	TaskID    string
	Title     string
	Body      string
	TriggerAt time.Time
}

// alertHeap orders alerts by trigger instant, soonest first.
type alertHeap []Alert

func (h alertHeap) Len() int           { return len(h) }
func (h alertHeap) Less(i, j int) bool { return h[i].TriggerAt.Before(h[j].TriggerAt) }
func (h alertHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *alertHeap) Push(x any)        { *h = append(*h, x.(Alert)) }
func (h *alertHeap) Pop() any {
	old := *h
	last := old[len(old)-1]
	*h = old[:len(old)-1]
	return last
}

// Engine fires alerts on their trigger instants. Delivery is non-blocking:
// when the consumer lags, due alerts are dropped and counted rather than
// stalling the loop.
type Engine struct {
	mu      sync.Mutex
	queue   alertHeap
	started bool
	stopped bool

	out     chan Alert
	kick    chan struct{}
	quit    chan struct{}
	done    chan struct{}
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		out:  make(chan Alert, bufferSize),
		kick: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// C is the delivery channel; it closes when the engine stops.
func (e *Engine) C() <-chan Alert { return e.out }

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.run()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.quit)
	e.mu.Unlock()
	<-e.done
}

func (e *Engine) Schedule(a Alert) error {
	if a.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}
	heap.Push(&e.queue, a)
	e.nudge()
	return nil
}

// Clear drops every pending alert. A day regeneration clears before it
// reschedules so stale task alerts can never fire.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.queue = e.queue[:0]
	e.mu.Unlock()
	e.nudge()
}

// Pending returns the number of alerts waiting to fire.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Dropped counts alerts discarded because the consumer was not keeping up.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.out)

	var timer *time.Timer
	for {
		wait, idle := e.nextWait()
		if idle {
			select {
			case <-e.kick:
				continue
			case <-e.quit:
				return
			}
		}

		timer = rearm(timer, wait)
		select {
		case <-timer.C:
			e.deliverDue(time.Now())
		case <-e.kick:
		case <-e.quit:
			disarm(timer)
			return
		}
	}
}

// nextWait reports how long until the soonest alert, or idle when the queue
// is empty.
func (e *Engine) nextWait() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return 0, true
	}
	wait := time.Until(e.queue[0].TriggerAt)
	if wait < 0 {
		wait = 0
	}
	return wait, false
}

func (e *Engine) deliverDue(now time.Time) {
	e.mu.Lock()
	var due []Alert
	for len(e.queue) > 0 && !e.queue[0].TriggerAt.After(now) {
		due = append(due, heap.Pop(&e.queue).(Alert))
	}
	e.mu.Unlock()

	for _, a := range due {
		select {
		case e.out <- a:
		default:
			atomic.AddUint64(&e.dropped, 1)
		}
	}
}

func (e *Engine) nudge() {
	select {
	case e.kick <- struct{}{}:
	default:
	}
}

func rearm(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	disarm(timer)
	timer.Reset(d)
	return timer
}

func disarm(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
