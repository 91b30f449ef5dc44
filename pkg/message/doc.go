// Package message defines the message model and the envelope wire format.
//
// # Roles
//
// Agents exchange three message roles: events (fire-and-forget broadcasts),
// requests and responses. Each role has its own properties type carrying
// correlation data, response routing and the sender's authentication, and
// each role constrains which addressing intents are legal when resolving the
// publish topic.
//
// # Envelope
//
// On the wire every message is a JSON envelope:
//
//	{"payload": "...", "properties": {"type": "request", ...}}
//
// The payload field holds JSON text, not a nested JSON value: the message
// body is serialized to a string first and the envelope is serialized around
// it. The role tag must be inspectable before the receiver knows the payload
// type, since different roles route to different handlers.
// Receivers decode in three stages: generic envelope, then
// role-specific conversion (IntoIncomingEvent, IntoIncomingRequest,
// IntoIncomingResponse), then payload typing.
//
// # Authentication fields
//
// Incoming properties always carry the sender's identity as the three flat
// fields agent_label, account_label and audience. Agents themselves only
// attach these to outgoing requests (and only optionally); the broker
// enriches every message it forwards, so on the incoming side the fields are
// required.
package message
