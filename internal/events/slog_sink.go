package events

import (
	"context"
	"log/slog"
)

// LogSink subscribes to a bus and writes every event to a structured logger.
// It is the default observability sink: the original system logged each event
// as a single structured line, and the sink preserves that behavior.
type LogSink struct {
	logger *slog.Logger
	cancel func()
	done   chan struct{}
}

// NewLogSink attaches a logging subscriber to the bus. Call Stop to detach.
func NewLogSink(ctx context.Context, bus Bus, logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}

	ch, cancel := bus.Subscribe(ctx, nil, 0)
	sink := &LogSink{
		logger: logger.With("component", "events"),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sink.done)
		for ev := range ch {
			sink.logger.Info("event",
				"type", string(ev.Type),
				"request_id", ev.RequestID,
				"timestamp", ev.Timestamp,
				"data", ev.Data,
			)
		}
	}()

	return sink
}

// Stop detaches the sink from the bus and waits for the drain to finish.
func (s *LogSink) Stop() {
	s.cancel()
	<-s.done
}
