// Package dispatch carries events from background workers to the foreground loop.
package dispatch

import (
	"sync"

	"vidgrab/internal/models"
)

// Kind is the type of an event.
type Kind int

const (
	KindStatus Kind = iota
	KindProgress
	KindRow
	KindThumb
	KindComplete
	KindError
	KindNotice
)

// Level is the severity of a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// SingleRow is the row used by single (non-playlist) downloads.
const SingleRow = -1

// Event is one message for the foreground.
type Event struct {
	Kind     Kind
	Row      int
	Text     string
	Level    Level
	Progress models.ProgressEvent
	Status   models.EntryStatus
	Fraction float64
	Path     string
}

// Sink accepts events from workers.
type Sink interface {
	Send(Event)
}

// Dispatcher is an ordered channel of events.
type Dispatcher struct {
	ch   chan Event
	once sync.Once
}

// New returns a dispatcher with the given buffer size.
func New(buffer int) *Dispatcher {
	return &Dispatcher{ch: make(chan Event, buffer)}
}

// Send queues an event, blocking while the buffer is full.
func (d *Dispatcher) Send(ev Event) {
	d.ch <- ev
}

// Events returns the receive side for the foreground.
func (d *Dispatcher) Events() <-chan Event {
	return d.ch
}

// Close ends the stream once every worker has finished sending.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.ch) })
}

// Status is a shorthand for a status event.
func Status(text string) Event {
	return Event{Kind: KindStatus, Row: SingleRow, Text: text}
}

// Notice is a shorthand for a notice event.
func Notice(level Level, text string) Event {
	return Event{Kind: KindNotice, Row: SingleRow, Level: level, Text: text}
}

// Discard is a sink that drops everything.
type Discard struct{}

// Send implements Sink.
func (Discard) Send(Event) {}
