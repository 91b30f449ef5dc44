package addressing

import "fmt"

// IncompatibleSourceError is returned when a source is illegal for the
// subscription role it was paired with. It always names both operands.
type IncompatibleSourceError struct {
	Source       Source
	Subscription string
}

func (e *IncompatibleSourceError) Error() string {
	return fmt.Sprintf("source %s is incompatible with %s subscription", e.Source, e.Subscription)
}
