// Package agent connects an agent to the MQTT broker and moves envelopes
// across it.
//
// The package owns the only stateful piece of the system: the broker
// session. Everything above it (identities, addressing, envelopes) is pure
// value transformation; this package plugs those values into a paho MQTT
// client. A Builder establishes the session under the canonical client id
//
//	{version}/{mode}/{agent_id}
//
// and returns the Agent handle together with the inbound channel. Publishing
// resolves the message's topic from its destination, serializes the
// envelope and hands it to the broker; subscribing resolves a subscription's
// pattern (wrapped into "$share/{group}/..." when a shared group is named)
// and routes matching deliveries into the inbound channel as raw
// (topic, bytes) notifications. Routing on the receive side is driven by the
// envelope role tag, not by topic structure, so the channel carries the
// topic only for diagnostics.
//
// Reconnection, keep-alive and QoS enforcement are the broker client's
// business; failures surface to the caller as wrapped errors and are never
// retried here.
package agent
