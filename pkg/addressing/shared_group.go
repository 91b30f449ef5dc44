package addressing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentmq/agentmq-go/pkg/identity"
)

// SharedGroup names a group of subscribers that share delivery of a
// subscription: the broker delivers each message to one member of the group.
type SharedGroup struct {
	name string
}

// ParseSharedGroup validates and wraps a group name. The name must be
// non-empty and free of topic syntax ("/", "+", "#"), which would corrupt
// the "$share" pattern it is spliced into.
func ParseSharedGroup(s string) (SharedGroup, error) {
	if s == "" || strings.ContainsAny(s, "/+#") {
		return SharedGroup{}, fmt.Errorf("%w: shared group %q", identity.ErrInvalidFormat, s)
	}
	return SharedGroup{name: s}, nil
}

// String returns the group name verbatim.
func (g SharedGroup) String() string { return g.name }

// Wrap converts a subscription pattern into its shared-group form.
func (g SharedGroup) Wrap(pattern string) string {
	return fmt.Sprintf("$share/%s/%s", g.name, pattern)
}

// MarshalJSON encodes the group as its name.
func (g SharedGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.name)
}

// UnmarshalJSON decodes the name via ParseSharedGroup.
func (g *SharedGroup) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	group, err := ParseSharedGroup(s)
	if err != nil {
		return err
	}
	*g = group
	return nil
}
