package message

import (
	"errors"
	"fmt"

	"github.com/agentmq/agentmq-go/pkg/addressing"
)

var (
	// ErrPayloadSerialization is returned when a payload cannot be
	// JSON-serialized into the envelope payload string.
	ErrPayloadSerialization = errors.New("unable to serialize payload")

	// ErrPayloadDeserialization is returned when an envelope payload string
	// does not deserialize into the caller's expected type.
	ErrPayloadDeserialization = errors.New("unable to deserialize payload")
)

// IncompatibleDestinationError is returned when a destination is illegal for
// the message role it was paired with. It always names both operands.
type IncompatibleDestinationError struct {
	Role        Role
	Destination addressing.Destination
}

func (e *IncompatibleDestinationError) Error() string {
	return fmt.Sprintf("destination %s is incompatible with %s message type", e.Destination, e.Role)
}

// RoleMismatchError is returned when an envelope's role tag does not match
// the conversion the caller requested.
type RoleMismatchError struct {
	Want Role
	Got  Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("envelope is tagged %q, not %q", e.Got, e.Want)
}
