package message

import (
	"encoding/json"
	"fmt"

	"github.com/agentmq/agentmq-go/pkg/addressing"
	"github.com/agentmq/agentmq-go/pkg/identity"
)

// IntoEnvelope is the contract outgoing messages implement to become
// transport-ready envelopes.
type IntoEnvelope interface {
	IntoEnvelope() (*OutgoingEnvelope, error)
}

// OutgoingEnvelope is the wire-level container for an outgoing message: the
// JSON-serialized payload string, role-tagged properties, and the retained
// destination used only for topic resolution before transmission.
type OutgoingEnvelope struct {
	payload     string
	role        Role
	event       *OutgoingEventProperties
	request     *OutgoingRequestProperties
	response    *OutgoingResponseProperties
	destination addressing.Destination
}

// Role returns the envelope's role tag.
func (e *OutgoingEnvelope) Role() Role { return e.role }

// Payload returns the JSON-encoded payload string.
func (e *OutgoingEnvelope) Payload() string { return e.payload }

// Destination returns the addressing intent the envelope will resolve its
// topic from. The destination never appears on the wire.
func (e *OutgoingEnvelope) Destination() addressing.Destination { return e.destination }

// DestinationTopic resolves the publish topic via the role's naming rules.
func (e *OutgoingEnvelope) DestinationTopic(me identity.Addressable) (string, error) {
	switch e.role {
	case RoleEvent:
		return e.event.DestinationTopic(me, e.destination)
	case RoleRequest:
		return e.request.DestinationTopic(me, e.destination)
	case RoleResponse:
		return e.response.DestinationTopic(me, e.destination)
	default:
		return "", fmt.Errorf("unknown envelope role %q", e.role)
	}
}

// Bytes serializes the envelope into its JSON wire form.
func (e *OutgoingEnvelope) Bytes() ([]byte, error) {
	return json.Marshal(e)
}

// MarshalJSON encodes the envelope as {"payload": ..., "properties": ...}.
func (e *OutgoingEnvelope) MarshalJSON() ([]byte, error) {
	props, err := e.marshalProperties()
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Payload    string          `json:"payload"`
		Properties json.RawMessage `json:"properties"`
	}{Payload: e.payload, Properties: props})
}

// IntoEnvelope converts the message into an outgoing envelope: the payload
// is JSON-serialized into the envelope's payload string and the properties
// are tagged by role.
func (m *OutgoingMessage[T, P]) IntoEnvelope() (*OutgoingEnvelope, error) {
	data, err := json.Marshal(m.payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadSerialization, err)
	}

	env := &OutgoingEnvelope{payload: string(data), destination: m.destination}
	switch p := any(m.properties).(type) {
	case OutgoingEventProperties:
		env.role, env.event = RoleEvent, &p
	case OutgoingRequestProperties:
		env.role, env.request = RoleRequest, &p
	case OutgoingResponseProperties:
		env.role, env.response = RoleResponse, &p
	default:
		return nil, fmt.Errorf("no envelope role for properties type %T", m.properties)
	}
	return env, nil
}

// IncomingEnvelope is the generically-decoded form of a received message:
// the role tag and properties are decoded, the payload string is not yet
// typed. Callers inspect Role and then convert via IntoIncomingEvent,
// IntoIncomingRequest or IntoIncomingResponse.
type IncomingEnvelope struct {
	payload  string
	role     Role
	event    *IncomingEventProperties
	request  *IncomingRequestProperties
	response *IncomingResponseProperties
}

// ParseIncomingEnvelope decodes the raw bytes delivered by the transport.
func ParseIncomingEnvelope(data []byte) (*IncomingEnvelope, error) {
	var env IncomingEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Role returns the envelope's role tag.
func (e *IncomingEnvelope) Role() Role { return e.role }

// Payload returns the still-encoded JSON payload string.
func (e *IncomingEnvelope) Payload() string { return e.payload }

// UnmarshalJSON decodes the envelope in two stages: the outer object first,
// then the properties according to their role tag.
func (e *IncomingEnvelope) UnmarshalJSON(data []byte) error {
	var raw struct {
		Payload    string          `json:"payload"`
		Properties json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Properties == nil {
		return &identity.MissingFieldError{Field: "properties"}
	}

	var tag struct {
		Type Role `json:"type"`
	}
	if err := json.Unmarshal(raw.Properties, &tag); err != nil {
		return err
	}

	e.payload = raw.Payload
	switch tag.Type {
	case RoleEvent:
		var props IncomingEventProperties
		if err := json.Unmarshal(raw.Properties, &props); err != nil {
			return err
		}
		e.role, e.event = RoleEvent, &props
	case RoleRequest:
		var props IncomingRequestProperties
		if err := json.Unmarshal(raw.Properties, &props); err != nil {
			return err
		}
		e.role, e.request = RoleRequest, &props
	case RoleResponse:
		var props IncomingResponseProperties
		if err := json.Unmarshal(raw.Properties, &props); err != nil {
			return err
		}
		e.role, e.response = RoleResponse, &props
	default:
		return fmt.Errorf("unknown envelope role %q", tag.Type)
	}
	return nil
}

// IntoIncomingEvent converts the envelope into a typed incoming event.
// Fails with RoleMismatchError if the envelope is tagged otherwise, and with
// ErrPayloadDeserialization if the payload string does not decode into T.
func IntoIncomingEvent[T any](env *IncomingEnvelope) (*IncomingEvent[T], error) {
	if env.role != RoleEvent {
		return nil, &RoleMismatchError{Want: RoleEvent, Got: env.role}
	}
	payload, err := decodePayload[T](env.payload)
	if err != nil {
		return nil, err
	}
	return NewIncomingMessage(payload, *env.event), nil
}

// IntoIncomingRequest converts the envelope into a typed incoming request.
func IntoIncomingRequest[T any](env *IncomingEnvelope) (*IncomingRequest[T], error) {
	if env.role != RoleRequest {
		return nil, &RoleMismatchError{Want: RoleRequest, Got: env.role}
	}
	payload, err := decodePayload[T](env.payload)
	if err != nil {
		return nil, err
	}
	return NewIncomingMessage(payload, *env.request), nil
}

// IntoIncomingResponse converts the envelope into a typed incoming response.
func IntoIncomingResponse[T any](env *IncomingEnvelope) (*IncomingResponse[T], error) {
	if env.role != RoleResponse {
		return nil, &RoleMismatchError{Want: RoleResponse, Got: env.role}
	}
	payload, err := decodePayload[T](env.payload)
	if err != nil {
		return nil, err
	}
	return NewIncomingMessage(payload, *env.response), nil
}

func decodePayload[T any](payload string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrPayloadDeserialization, err)
	}
	return v, nil
}
