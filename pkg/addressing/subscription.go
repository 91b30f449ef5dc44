package addressing

import (
	"fmt"

	"github.com/agentmq/agentmq-go/pkg/identity"
)

// SubscriptionTopic resolves a subscription into the topic pattern handed to
// the broker. Implemented by EventSubscription, RequestSubscription and
// ResponseSubscription.
type SubscriptionTopic interface {
	SubscriptionTopic(me identity.Addressable) (string, error)
}

// EventSubscription subscribes to broadcast events.
type EventSubscription struct {
	Source Source
}

// NewEventSubscription creates an event subscription for a source.
func NewEventSubscription(source Source) EventSubscription {
	return EventSubscription{Source: source}
}

// SubscriptionTopic resolves the subscription to a pattern. Only broadcast
// sources are legal for events; the pattern is scoped to the broadcasting
// application, so the subscriber's own identity is not used.
func (s EventSubscription) SubscriptionTopic(_ identity.Addressable) (string, error) {
	switch src := s.Source.(type) {
	case BroadcastSource:
		return fmt.Sprintf("apps/%s/api/v1/%s", src.From.AccountID(), src.URI), nil
	default:
		return "", &IncompatibleSourceError{Source: s.Source, Subscription: "event"}
	}
}

// RequestSubscription subscribes to incoming requests.
type RequestSubscription struct {
	Source Source
}

// NewRequestSubscription creates a request subscription for a source.
func NewRequestSubscription(source Source) RequestSubscription {
	return RequestSubscription{Source: source}
}

// SubscriptionTopic resolves the subscription to a pattern. Multicast
// matches requests any agent addresses to the subscriber's account; unicast
// matches requests addressed directly to the subscriber, either from a
// specific account or from anyone.
func (s RequestSubscription) SubscriptionTopic(me identity.Addressable) (string, error) {
	switch src := s.Source.(type) {
	case MulticastSource:
		return fmt.Sprintf("agents/+/api/v1/out/%s", me.AccountID()), nil
	case UnicastSource:
		return unicastPattern(me, src), nil
	default:
		return "", &IncompatibleSourceError{Source: s.Source, Subscription: "request"}
	}
}

// ResponseSubscription subscribes to incoming responses.
type ResponseSubscription struct {
	Source Source
}

// NewResponseSubscription creates a response subscription for a source.
func NewResponseSubscription(source Source) ResponseSubscription {
	return ResponseSubscription{Source: source}
}

// SubscriptionTopic resolves the subscription to a pattern. Responses only
// arrive unicast, from a specific account or from anyone.
func (s ResponseSubscription) SubscriptionTopic(me identity.Addressable) (string, error) {
	switch src := s.Source.(type) {
	case UnicastSource:
		return unicastPattern(me, src), nil
	default:
		return "", &IncompatibleSourceError{Source: s.Source, Subscription: "response"}
	}
}

func unicastPattern(me identity.Addressable, src UnicastSource) string {
	if src.From == nil {
		return fmt.Sprintf("agents/%s/api/v1/in/+", me.AgentID())
	}
	return fmt.Sprintf("agents/%s/api/v1/in/%s", me.AgentID(), src.From.AccountID())
}
