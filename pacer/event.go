// Package pacer paces a render loop to a periodic timer.
//
// A [Timer] posts [TimerEvent]s into a [Queue] at a fixed rate; [Pacer.WaitForFrame] blocks
// until the next one arrives, discarding any other events that share the queue.
package pacer

import (
	"sync"
	"time"
)

// EventKind identifies the source of an event.
type EventKind uint8

// Event kinds.
const (
	TimerEvent EventKind = iota
	KeyEvent
	JoystickEvent
	QuitEvent
)

func (k EventKind) String() string {
	switch k {
	case TimerEvent:
		return "timer"
	case KeyEvent:
		return "key"
	case JoystickEvent:
		return "joystick"
	case QuitEvent:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is an entry in the queue.
type Event struct {
	Kind EventKind
	Time time.Time
}

// Source delivers events.
type Source interface {
	// WaitEvent blocks until an event is available.
	WaitEvent() Event
}

// Queue is an unbounded FIFO of events. It is safe for concurrent use.
//
// A timer event posted while another timer event is still queued is dropped, so a consumer
// that falls behind wakes up once rather than catching up on every missed tick.
type Queue struct {
	mu           sync.Mutex
	cond         *sync.Cond
	events       []Event
	timerPending bool
}

func NewQueue() *Queue {
	q := new(Queue)
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Post appends an event.
func (q *Queue) Post(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if e.Kind == TimerEvent {
		if q.timerPending {
			return
		}
		q.timerPending = true
	}
	q.events = append(q.events, e)
	q.cond.Signal()
}

// WaitEvent removes and returns the oldest event, blocking while the queue is empty.
func (q *Queue) WaitEvent() Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.events) == 0 {
		q.cond.Wait()
	}
	e := q.events[0]
	q.events[0] = Event{}
	q.events = q.events[1:]
	if e.Kind == TimerEvent {
		q.timerPending = false
	}
	return e
}

// Len is the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
