package pacer

import (
	"sync"
	"time"

	"github.com/BeatGlow/fbhal/internal/debug"
)

// Pacer blocks a loop until the next timer tick.
type Pacer struct {
	src    Source
	frames uint64
}

func New(src Source) *Pacer {
	return &Pacer{src: src}
}

// WaitForFrame blocks until a timer event is received. Other events are discarded.
//
// If nothing ever posts a timer event this blocks forever.
func (p *Pacer) WaitForFrame() {
	for {
		e := p.src.WaitEvent()
		if e.Kind == TimerEvent {
			p.frames++
			return
		}
		debug.Printf("pacer: discarding %s event", e.Kind)
	}
}

// Frames is the number of completed WaitForFrame calls.
func (p *Pacer) Frames() uint64 {
	return p.frames
}

// Timer posts timer events at a fixed rate.
type Timer struct {
	period time.Duration
	queue  *Queue
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewTimer creates a stopped timer firing fps times a second.
func NewTimer(fps float64, queue *Queue) *Timer {
	return &Timer{
		period: time.Duration(float64(time.Second) / fps),
		queue:  queue,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Period between ticks.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Start the timer. Calling Start more than once has no effect.
func (t *Timer) Start() {
	t.once.Do(func() {
		go t.run()
	})
}

func (t *Timer) run() {
	defer close(t.done)

	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			t.queue.Post(Event{Kind: TimerEvent, Time: now})
		case <-t.stop:
			return
		}
	}
}

// Stop the timer and wait for it to exit. A timer can't be restarted.
func (t *Timer) Stop() {
	started := true
	t.once.Do(func() {
		started = false
	})
	select {
	case <-t.stop:
		return
	default:
		close(t.stop)
	}
	if started {
		<-t.done
	}
}
