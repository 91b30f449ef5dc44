package message

import (
	"fmt"

	"github.com/agentmq/agentmq-go/pkg/addressing"
	"github.com/agentmq/agentmq-go/pkg/identity"
)

// DestinationTopic resolves an outgoing message's destination into the topic
// it is published on. Implemented per role by the outgoing properties types;
// each implementation matches the destination exhaustively and rejects every
// pairing outside the naming table.

// DestinationTopic resolves a broadcast event topic. Events are only legal
// broadcast, on a URI scoped to the publisher's own application:
//
//	apps/{me.account}/api/v1/{uri}
func (p OutgoingEventProperties) DestinationTopic(me identity.Addressable, dest addressing.Destination) (string, error) {
	switch d := dest.(type) {
	case addressing.BroadcastDestination:
		return fmt.Sprintf("apps/%s/api/v1/%s", me.AccountID(), d.URI), nil
	default:
		return "", &IncompatibleDestinationError{Role: RoleEvent, Destination: dest}
	}
}

// DestinationTopic resolves a request topic. Unicast goes into the target
// agent's inbox, scoped by the sender's account; multicast goes through the
// sender's own outbox, scoped by the target account:
//
//	unicast:   agents/{agent}/api/v1/in/{me.account}
//	multicast: agents/{me.agent}/api/v1/out/{account}
func (p OutgoingRequestProperties) DestinationTopic(me identity.Addressable, dest addressing.Destination) (string, error) {
	switch d := dest.(type) {
	case addressing.UnicastDestination:
		return fmt.Sprintf("agents/%s/api/v1/in/%s", d.Agent, me.AccountID()), nil
	case addressing.MulticastDestination:
		return fmt.Sprintf("agents/%s/api/v1/out/%s", me.AgentID(), d.Account), nil
	default:
		return "", &IncompatibleDestinationError{Role: RoleRequest, Destination: dest}
	}
}

// DestinationTopic resolves a response topic. An explicit response topic
// (carried over from the request) wins verbatim; otherwise the response is
// only legal unicast into the requester's inbox:
//
//	agents/{agent}/api/v1/in/{me.account}
func (p OutgoingResponseProperties) DestinationTopic(me identity.Addressable, dest addressing.Destination) (string, error) {
	if p.responseTopic != "" {
		return p.responseTopic, nil
	}
	switch d := dest.(type) {
	case addressing.UnicastDestination:
		return fmt.Sprintf("agents/%s/api/v1/in/%s", d.Agent, me.AccountID()), nil
	default:
		return "", &IncompatibleDestinationError{Role: RoleResponse, Destination: dest}
	}
}
