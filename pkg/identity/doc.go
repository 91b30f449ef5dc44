// Package identity defines the structured identities used on the messaging
// fabric.
//
// Every participant is an agent: a running instance identified by an AgentID,
// which in turn belongs to a tenant application identified by an AccountID.
// Both are immutable value types with a canonical dot-separated string form:
//
//	account: {label}.{audience}            e.g. "svc.example.org"
//	agent:   {label}.{account}             e.g. "web.svc.example.org"
//
// Labels never contain dots; the audience is a deployment namespace and
// usually does. Parsing therefore splits on the first dot only, and performs
// no character-set validation beyond that structure.
//
// The Authenticable and Addressable interfaces are capability contracts:
// anything that can prove which account it acts for is Authenticable, and
// anything that can be reached as a specific instance is Addressable.
// AuthnProperties is the minimal carrier of both, embedded into incoming
// message properties. On the wire it flattens to the three scalar fields
// agent_label, account_label and audience.
package identity
