package schedule

import "fmt"

// ValidationError reports malformed input to any of the core
// operations: bad clock strings, inverted intervals, slots outside
// operating hours.  Handlers translate it into a 400 response and
// never retry.
type ValidationError struct {
    Field  string // which input was wrong
    Reason string // human-readable explanation
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}
