package addressing

import (
	"fmt"

	"github.com/agentmq/agentmq-go/pkg/identity"
)

// Source is the incoming addressing intent used at subscribe time; it is the
// dual of Destination. Like Destination it is a closed set matched
// exhaustively by subscription topic resolution.
type Source interface {
	fmt.Stringer

	isSource()
}

// BroadcastSource selects events a specific agent's application broadcasts on
// a URI.
type BroadcastSource struct {
	From identity.AgentID

	// URI is the application-defined path, e.g. "rooms/123/events".
	URI string
}

func (BroadcastSource) isSource() {}

func (s BroadcastSource) String() string {
	return fmt.Sprintf("broadcast(%s, %s)", s.From, s.URI)
}

// MulticastSource selects requests multicast to the subscriber's account by
// any agent.
type MulticastSource struct{}

func (MulticastSource) isSource() {}

func (MulticastSource) String() string {
	return "multicast"
}

// UnicastSource selects messages addressed directly to the subscriber.
// A nil From means "from anyone".
type UnicastSource struct {
	From *identity.AgentID
}

func (UnicastSource) isSource() {}

func (s UnicastSource) String() string {
	if s.From == nil {
		return "unicast(any)"
	}
	return fmt.Sprintf("unicast(%s)", s.From)
}
