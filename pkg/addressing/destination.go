package addressing

import (
	"fmt"

	"github.com/agentmq/agentmq-go/pkg/identity"
)

// Destination is the outgoing addressing intent of a message. It is a closed
// set: BroadcastDestination, MulticastDestination and UnicastDestination are
// the only implementations, and topic resolution matches them exhaustively.
type Destination interface {
	fmt.Stringer

	isDestination()
}

// BroadcastDestination targets anyone listening on an application-scoped URI.
type BroadcastDestination struct {
	// URI is the application-defined path, e.g. "rooms/123/events".
	URI string
}

func (BroadcastDestination) isDestination() {}

func (d BroadcastDestination) String() string {
	return fmt.Sprintf("broadcast(%s)", d.URI)
}

// MulticastDestination targets any or all agents of an account.
type MulticastDestination struct {
	Account identity.AccountID
}

func (MulticastDestination) isDestination() {}

func (d MulticastDestination) String() string {
	return fmt.Sprintf("multicast(%s)", d.Account)
}

// UnicastDestination targets exactly one agent.
type UnicastDestination struct {
	Agent identity.AgentID
}

func (UnicastDestination) isDestination() {}

func (d UnicastDestination) String() string {
	return fmt.Sprintf("unicast(%s)", d.Agent)
}
