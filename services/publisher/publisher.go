package publisher

import "context"

// Publisher represents a sink for refreshed snapshots
type Publisher interface {
	// Publish publishes a message under key
	Publish(ctx context.Context, key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams(ctx context.Context) error

	// Close closes the publisher connection
	Close() error
}

// Nop discards every message. It is used when no Redis address is configured.
type Nop struct{}

var _ Publisher = Nop{}

func (Nop) Publish(context.Context, string, []byte) error { return nil }

func (Nop) TrimStreams(context.Context) error { return nil }

func (Nop) Close() error { return nil }
