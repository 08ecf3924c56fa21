package choreo

import (
	"sort"
	"sync"
	"time"
)

// Step is one event scheduled At an offset from the timeline start.
type Step struct {
	At    time.Duration
	Event any
}

// Ticks returns count steps spaced every interval, starting at interval.
func Ticks(interval time.Duration, count int, event func(i int) any) []Step {
	steps := make([]Step, 0, count)
	for i := 0; i < count; i++ {
		steps = append(steps, Step{At: time.Duration(i+1) * interval, Event: event(i)})
	}
	return steps
}

// Timeline delivers steps in offset order from a single goroutine.
// Steps with equal offsets keep their input order.
type Timeline struct {
	mu      sync.Mutex
	stopped bool
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Play starts delivering steps. deliver runs on the timeline goroutine and must
// not call Stop on the same timeline.
func Play(steps []Step, deliver func(Step)) *Timeline {
	ordered := make([]Step, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].At < ordered[j].At })

	tl := &Timeline{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go tl.run(ordered, deliver)
	return tl
}

func (tl *Timeline) run(steps []Step, deliver func(Step)) {
	defer close(tl.done)

	start := time.Now()
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for _, st := range steps {
		if wait := st.At - time.Since(start); wait > 0 {
			timer.Reset(wait)
			select {
			case <-timer.C:
			case <-tl.stop:
				return
			}
		}

		tl.mu.Lock()
		if tl.stopped {
			tl.mu.Unlock()
			return
		}
		deliver(st)
		tl.mu.Unlock()
	}
}

// Stop cancels pending steps and waits for the timeline goroutine to exit.
// No step is delivered after Stop returns.
func (tl *Timeline) Stop() {
	tl.once.Do(func() {
		tl.mu.Lock()
		tl.stopped = true
		tl.mu.Unlock()
		close(tl.stop)
	})
	<-tl.done
}

// Done is closed once every step has been delivered or the timeline stopped.
func (tl *Timeline) Done() <-chan struct{} {
	return tl.done
}
