package message

// Role tags an envelope with its message kind. The tag travels on the wire
// as the "type" field of the envelope properties.
type Role string

const (
	// RoleEvent is a fire-and-forget broadcast message.
	RoleEvent Role = "event"

	// RoleRequest is a message expecting a correlated response.
	RoleRequest Role = "request"

	// RoleResponse answers a request, carrying its correlation data back.
	RoleResponse Role = "response"
)

// IsValid reports whether the role is one of the three known tags.
func (r Role) IsValid() bool {
	switch r {
	case RoleEvent, RoleRequest, RoleResponse:
		return true
	default:
		return false
	}
}
