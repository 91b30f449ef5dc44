package message

import (
	"github.com/agentmq/agentmq-go/pkg/identity"
)

// OutgoingEventProperties label an outgoing broadcast event.
type OutgoingEventProperties struct {
	label string
}

// NewOutgoingEventProperties creates event properties with a label naming
// the kind of event, e.g. "room.enter".
func NewOutgoingEventProperties(label string) OutgoingEventProperties {
	return OutgoingEventProperties{label: label}
}

// Label returns the event label.
func (p OutgoingEventProperties) Label() string { return p.label }

// OutgoingRequestProperties address an outgoing request and tell the peer
// where and how to respond.
type OutgoingRequestProperties struct {
	method          string
	correlationData string
	responseTopic   string
	authn           *identity.AuthnProperties
}

// NewOutgoingRequestProperties creates request properties. The correlation
// data is an opaque token the responder echoes back; the response topic is
// where the responder publishes the answer. Authentication properties are
// optional; brokers usually attach them while forwarding.
func NewOutgoingRequestProperties(method, responseTopic, correlationData string, authn *identity.AuthnProperties) OutgoingRequestProperties {
	return OutgoingRequestProperties{
		method:          method,
		correlationData: correlationData,
		responseTopic:   responseTopic,
		authn:           authn,
	}
}

// Method returns the request method name.
func (p OutgoingRequestProperties) Method() string { return p.method }

// CorrelationData returns the opaque correlation token.
func (p OutgoingRequestProperties) CorrelationData() string { return p.correlationData }

// ResponseTopic returns the topic the response should be published to.
func (p OutgoingRequestProperties) ResponseTopic() string { return p.responseTopic }

// OutgoingResponseProperties carry a response's status and correlation back
// to the requester.
type OutgoingResponseProperties struct {
	status          StatusCode
	correlationData string

	// responseTopic, when non-empty, overrides destination-based topic
	// resolution. It never appears on the wire.
	responseTopic string
}

// NewOutgoingResponseProperties creates response properties. An empty
// responseTopic means the topic is resolved from the destination instead.
func NewOutgoingResponseProperties(status StatusCode, correlationData, responseTopic string) OutgoingResponseProperties {
	return OutgoingResponseProperties{
		status:          status,
		correlationData: correlationData,
		responseTopic:   responseTopic,
	}
}

// Status returns the response status.
func (p OutgoingResponseProperties) Status() StatusCode { return p.status }

// CorrelationData returns the correlation token copied from the request.
func (p OutgoingResponseProperties) CorrelationData() string { return p.correlationData }

// IncomingEventProperties carry the broadcaster's identity and, when the
// broadcaster labeled the event, its label.
type IncomingEventProperties struct {
	label string
	authn identity.AuthnProperties
}

// NewIncomingEventProperties creates incoming event properties.
func NewIncomingEventProperties(label string, authn identity.AuthnProperties) IncomingEventProperties {
	return IncomingEventProperties{label: label, authn: authn}
}

// Label returns the event label, or "" when the broadcaster sent none.
func (p IncomingEventProperties) Label() string { return p.label }

// AccountID returns the sender's account.
func (p IncomingEventProperties) AccountID() identity.AccountID { return p.authn.AccountID() }

// AgentID returns the sender's agent identity.
func (p IncomingEventProperties) AgentID() identity.AgentID { return p.authn.AgentID() }

// IncomingRequestProperties carry a received request's method, correlation
// and response routing along with the requester's identity.
type IncomingRequestProperties struct {
	method          string
	correlationData string
	responseTopic   string
	authn           identity.AuthnProperties
}

// NewIncomingRequestProperties creates incoming request properties.
func NewIncomingRequestProperties(method, correlationData, responseTopic string, authn identity.AuthnProperties) IncomingRequestProperties {
	return IncomingRequestProperties{
		method:          method,
		correlationData: correlationData,
		responseTopic:   responseTopic,
		authn:           authn,
	}
}

// Method returns the request method name.
func (p IncomingRequestProperties) Method() string { return p.method }

// CorrelationData returns the opaque correlation token.
func (p IncomingRequestProperties) CorrelationData() string { return p.correlationData }

// ResponseTopic returns the topic the requester expects the response on.
func (p IncomingRequestProperties) ResponseTopic() string { return p.responseTopic }

// AccountID returns the requester's account.
func (p IncomingRequestProperties) AccountID() identity.AccountID { return p.authn.AccountID() }

// AgentID returns the requester's agent identity.
func (p IncomingRequestProperties) AgentID() identity.AgentID { return p.authn.AgentID() }

// ToResponse synthesizes response properties answering this request. The
// correlation data is copied verbatim and the request's response topic
// becomes the explicit response topic.
func (p IncomingRequestProperties) ToResponse(status StatusCode) OutgoingResponseProperties {
	return NewOutgoingResponseProperties(status, p.correlationData, p.responseTopic)
}

// IncomingResponseProperties carry a received response's status and
// correlation along with the responder's identity.
type IncomingResponseProperties struct {
	status          StatusCode
	correlationData string
	authn           identity.AuthnProperties
}

// NewIncomingResponseProperties creates incoming response properties.
func NewIncomingResponseProperties(status StatusCode, correlationData string, authn identity.AuthnProperties) IncomingResponseProperties {
	return IncomingResponseProperties{
		status:          status,
		correlationData: correlationData,
		authn:           authn,
	}
}

// Status returns the response status.
func (p IncomingResponseProperties) Status() StatusCode { return p.status }

// CorrelationData returns the correlation token echoed from the request.
func (p IncomingResponseProperties) CorrelationData() string { return p.correlationData }

// AccountID returns the responder's account.
func (p IncomingResponseProperties) AccountID() identity.AccountID { return p.authn.AccountID() }

// AgentID returns the responder's agent identity.
func (p IncomingResponseProperties) AgentID() identity.AgentID { return p.authn.AgentID() }

// Compile-time interface satisfaction checks.
var (
	_ identity.Addressable = IncomingEventProperties{}
	_ identity.Addressable = IncomingRequestProperties{}
	_ identity.Addressable = IncomingResponseProperties{}
)
