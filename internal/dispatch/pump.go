package dispatch

import (
	"time"

	"vidgrab/internal/models"
)

// Handler consumes events on the foreground goroutine.
type Handler interface {
	Handle(Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(Event)

// Handle implements Handler.
func (f HandlerFunc) Handle(ev Event) { f(ev) }

// Pump delivers events to h in order until events is closed.
//
// With a positive throttle, downloading progress for the same row arriving within the interval
// is coalesced to the latest one. A held event is delivered before any other event and before
// Pump returns.
func Pump(events <-chan Event, h Handler, throttle time.Duration) {
	if throttle <= 0 {
		for ev := range events {
			h.Handle(ev)
		}
		return
	}

	var (
		pending *Event
		timer   *time.Timer
		timerC  <-chan time.Time
		last    = make(map[int]time.Time)
	)

	flush := func() {
		if timer != nil {
			timer.Stop()
			timerC = nil
		}
		if pending == nil {
			return
		}
		ev := *pending
		pending = nil
		last[ev.Row] = time.Now()
		h.Handle(ev)
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				flush()
				return
			}
			if !throttled(ev) {
				flush()
				h.Handle(ev)
				continue
			}
			if pending != nil && pending.Row != ev.Row {
				flush()
			}
			seen, ok := last[ev.Row]
			if !ok || time.Since(seen) >= throttle {
				flush()
				last[ev.Row] = time.Now()
				h.Handle(ev)
				continue
			}
			held := ev
			pending = &held
			if timerC == nil {
				timer = time.NewTimer(throttle - time.Since(seen))
				timerC = timer.C
			}

		case <-timerC:
			timerC = nil
			flush()
		}
	}
}

func throttled(ev Event) bool {
	return ev.Kind == KindProgress && ev.Progress.Phase == models.PhaseDownloading
}
