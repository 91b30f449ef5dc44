package log

import "time"

// Event records one traffic event on an agent connection.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"2,keyasint"`

	// ClientID identifies the connection the event belongs to.
	ClientID string `cbor:"3,keyasint,omitempty"`

	// Topic is the publish topic or subscribe pattern, if any.
	Topic string `cbor:"4,keyasint,omitempty"`

	// Size is the payload size in bytes, for publish and receive events.
	Size int `cbor:"5,keyasint,omitempty"`

	// Err carries the error text for failed operations.
	Err string `cbor:"6,keyasint,omitempty"`
}

// Kind classifies a traffic event.
type Kind uint8

const (
	// KindConnect records a connection attempt.
	KindConnect Kind = 1

	// KindPublish records an outgoing message.
	KindPublish Kind = 2

	// KindSubscribe records a subscription.
	KindSubscribe Kind = 3

	// KindReceive records an inbound delivery.
	KindReceive Kind = 4

	// KindDrop records an inbound delivery discarded because the owner's
	// receive channel was full.
	KindDrop Kind = 5
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "CONNECT"
	case KindPublish:
		return "PUBLISH"
	case KindSubscribe:
		return "SUBSCRIBE"
	case KindReceive:
		return "RECEIVE"
	case KindDrop:
		return "DROP"
	default:
		return "UNKNOWN"
	}
}
