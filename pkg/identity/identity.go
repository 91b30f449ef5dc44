package identity

import (
	"fmt"
	"strings"
)

// Authenticable is implemented by anything that can state which account it
// acts on behalf of.
type Authenticable interface {
	// AccountID returns the tenant identity.
	AccountID() AccountID
}

// Addressable is implemented by anything that can be reached as a specific
// running instance. Every Addressable is also Authenticable.
type Addressable interface {
	Authenticable

	// AgentID returns the instance identity.
	AgentID() AgentID
}

// AccountID identifies a tenant application scoped to an audience.
// The zero value is not a valid identity; construct via NewAccountID or
// ParseAccountID.
type AccountID struct {
	label    string
	audience string
}

// NewAccountID creates an account identity from its label and audience.
func NewAccountID(label, audience string) AccountID {
	return AccountID{label: label, audience: audience}
}

// ParseAccountID parses the canonical "{label}.{audience}" form.
func ParseAccountID(s string) (AccountID, error) {
	label, audience, ok := strings.Cut(s, ".")
	if !ok || label == "" || audience == "" {
		return AccountID{}, fmt.Errorf("%w: account id %q", ErrInvalidFormat, s)
	}
	return AccountID{label: label, audience: audience}, nil
}

// Label returns the account label.
func (a AccountID) Label() string { return a.label }

// Audience returns the deployment namespace the account is scoped to.
func (a AccountID) Audience() string { return a.audience }

// String returns the canonical "{label}.{audience}" form.
func (a AccountID) String() string {
	return a.label + "." + a.audience
}

// AgentID identifies a running instance inside an account.
// The zero value is not a valid identity; construct via NewAgentID or
// ParseAgentID.
type AgentID struct {
	label   string
	account AccountID
}

// NewAgentID creates an agent identity from its label and owning account.
func NewAgentID(label string, account AccountID) AgentID {
	return AgentID{label: label, account: account}
}

// ParseAgentID parses the canonical "{label}.{account_label}.{audience}" form.
func ParseAgentID(s string) (AgentID, error) {
	label, rest, ok := strings.Cut(s, ".")
	if !ok || label == "" {
		return AgentID{}, fmt.Errorf("%w: agent id %q", ErrInvalidFormat, s)
	}
	account, err := ParseAccountID(rest)
	if err != nil {
		return AgentID{}, fmt.Errorf("%w: agent id %q", ErrInvalidFormat, s)
	}
	return AgentID{label: label, account: account}, nil
}

// Label returns the agent label.
func (a AgentID) Label() string { return a.label }

// AccountID returns the owning account. Part of the Authenticable contract.
func (a AgentID) AccountID() AccountID { return a.account }

// AgentID returns the identity itself. Part of the Addressable contract.
func (a AgentID) AgentID() AgentID { return a }

// String returns the canonical "{label}.{account}" form.
func (a AgentID) String() string {
	return a.label + "." + a.account.String()
}

// Compile-time interface satisfaction check.
var _ Addressable = AgentID{}
