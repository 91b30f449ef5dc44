package log

// Logger is the interface applications implement to receive traffic events.
// Pass NoopLogger to disable logging.
type Logger interface {
	// Log records a traffic event. Implementations must be thread-safe.
	Log(event Event)
}

// NoopLogger discards all events. Safe for concurrent use and usable as a
// zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// MultiLogger fans every event out to several loggers.
type MultiLogger []Logger

// Log forwards the event to each logger in order.
func (m MultiLogger) Log(event Event) {
	for _, l := range m {
		l.Log(event)
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Logger = NoopLogger{}
	_ Logger = MultiLogger{}
)
