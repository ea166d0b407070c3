package downloads

import (
	"context"

	"vidgrab/internal/command/builder"
	"vidgrab/internal/engine"
)

// fakeEngine replays raw events then returns err.
type fakeEngine struct {
	events []engine.RawEvent
	err    error
	// beforeEvent runs before event i is delivered.
	beforeEvent func(i int)
}

func (f *fakeEngine) FetchMetadata(context.Context, string) (*engine.Info, error) {
	return &engine.Info{}, nil
}

func (f *fakeEngine) Download(_ context.Context, _ string, _ builder.EngineConfig, hook engine.Hook) error {
	for i, ev := range f.events {
		if f.beforeEvent != nil {
			f.beforeEvent(i)
		}
		if err := hook(ev); err != nil {
			return err
		}
	}
	return f.err
}

func i64(n int64) *int64 { return &n }
