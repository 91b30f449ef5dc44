package identity

// AuthnProperties is the minimal authentication carrier embedded into
// incoming message properties and, optionally, into outgoing request
// properties. It wraps the agent identity of the original sender.
type AuthnProperties struct {
	agentID AgentID
}

// NewAuthnProperties creates authentication properties for an agent.
func NewAuthnProperties(agentID AgentID) AuthnProperties {
	return AuthnProperties{agentID: agentID}
}

// AccountID returns the sender's account. Part of the Authenticable contract.
func (p AuthnProperties) AccountID() AccountID { return p.agentID.AccountID() }

// AgentID returns the sender's agent identity. Part of the Addressable
// contract.
func (p AuthnProperties) AgentID() AgentID { return p.agentID }

// Compile-time interface satisfaction check.
var _ Addressable = AuthnProperties{}
