package message

import (
	"github.com/agentmq/agentmq-go/pkg/addressing"
	"github.com/agentmq/agentmq-go/pkg/identity"
)

// IncomingMessage pairs a decoded payload with role-specific properties.
// Properties of incoming messages always identify the sender.
type IncomingMessage[T any, P identity.Addressable] struct {
	payload    T
	properties P
}

// NewIncomingMessage creates an incoming message wrapper.
func NewIncomingMessage[T any, P identity.Addressable](payload T, properties P) *IncomingMessage[T, P] {
	return &IncomingMessage[T, P]{payload: payload, properties: properties}
}

// Payload returns the decoded message body.
func (m *IncomingMessage[T, P]) Payload() T { return m.payload }

// Properties returns the role-specific properties.
func (m *IncomingMessage[T, P]) Properties() P { return m.properties }

// Role-specialized incoming messages.
type (
	IncomingEvent[T any]    = IncomingMessage[T, IncomingEventProperties]
	IncomingRequest[T any]  = IncomingMessage[T, IncomingRequestProperties]
	IncomingResponse[T any] = IncomingMessage[T, IncomingResponseProperties]
)

// OutgoingMessage pairs a payload with role-specific properties and the
// addressing intent used to resolve the publish topic.
type OutgoingMessage[T any, P any] struct {
	payload     T
	properties  P
	destination addressing.Destination
}

// NewOutgoingMessage creates an outgoing message wrapper. Prefer the
// role-specific constructors, which only admit legal destinations.
func NewOutgoingMessage[T any, P any](payload T, properties P, destination addressing.Destination) *OutgoingMessage[T, P] {
	return &OutgoingMessage[T, P]{payload: payload, properties: properties, destination: destination}
}

// Payload returns the message body.
func (m *OutgoingMessage[T, P]) Payload() T { return m.payload }

// Properties returns the role-specific properties.
func (m *OutgoingMessage[T, P]) Properties() P { return m.properties }

// Destination returns the addressing intent.
func (m *OutgoingMessage[T, P]) Destination() addressing.Destination { return m.destination }

// Role-specialized outgoing messages.
type (
	OutgoingEvent[T any]    = OutgoingMessage[T, OutgoingEventProperties]
	OutgoingRequest[T any]  = OutgoingMessage[T, OutgoingRequestProperties]
	OutgoingResponse[T any] = OutgoingMessage[T, OutgoingResponseProperties]
)

// NewBroadcastEvent creates an event fired to anyone listening on the
// application-scoped URI.
func NewBroadcastEvent[T any](payload T, properties OutgoingEventProperties, toURI string) *OutgoingEvent[T] {
	return NewOutgoingMessage(payload, properties, addressing.BroadcastDestination{URI: toURI})
}

// NewMulticastRequest creates a request fired to any agent of the target's
// account.
func NewMulticastRequest[T any](payload T, properties OutgoingRequestProperties, to identity.Authenticable) *OutgoingRequest[T] {
	return NewOutgoingMessage(payload, properties, addressing.MulticastDestination{Account: to.AccountID()})
}

// NewUnicastRequest creates a request fired to exactly one agent.
func NewUnicastRequest[T any](payload T, properties OutgoingRequestProperties, to identity.Addressable) *OutgoingRequest[T] {
	return NewOutgoingMessage(payload, properties, addressing.UnicastDestination{Agent: to.AgentID()})
}

// NewUnicastResponse creates a response fired to exactly one agent.
func NewUnicastResponse[T any](payload T, properties OutgoingResponseProperties, to identity.Addressable) *OutgoingResponse[T] {
	return NewOutgoingMessage(payload, properties, addressing.UnicastDestination{Agent: to.AgentID()})
}

// ToResponse builds the response answering a received request. The response
// is addressed unicast back to the requester's agent, and its correlation
// data is the request's, copied verbatim.
func ToResponse[T any, R any](req *IncomingRequest[T], data R, status StatusCode) *OutgoingResponse[R] {
	props := req.Properties()
	return NewUnicastResponse(data, props.ToResponse(status), props)
}
