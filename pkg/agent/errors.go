package agent

import "errors"

// Transport errors. The broker client's own error is wrapped behind these
// fixed descriptions.
var (
	// ErrConnect is returned when the broker session cannot be established.
	ErrConnect = errors.New("error connecting to the mqtt broker")

	// ErrPublish is returned when publishing an mqtt message fails.
	ErrPublish = errors.New("error publishing an mqtt message")

	// ErrSubscribe is returned when subscribing to an mqtt topic fails.
	ErrSubscribe = errors.New("error subscribing to an mqtt topic")
)
