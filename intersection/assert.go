package intersection

import "fmt"

// PreconditionError is the panic value raised by a violated precondition in
// builds tagged quilldebug
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return "intersection: precondition violated: " + e.Message
}

// assertf panics when cond is false and debug checks are compiled in.
// Release builds continue with best-effort results.
func assertf(cond bool, format string, args ...any) {
	if debugChecks && !cond {
		panic(&PreconditionError{Message: fmt.Sprintf(format, args...)})
	}
}
