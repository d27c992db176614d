// Package bfserr defines the error taxonomy shared by the priority and
// decremental-BFS packages: precondition violations the caller can recover
// from, and internal inconsistencies that indicate a bug and are fatal.
package bfserr

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Precondition reports that a caller-supplied argument violated an
// operation's input contract (out-of-range rank, duplicate priority, vertex
// id outside [0,n), ...). The receiver is left in its pre-call state.
type Precondition struct {
	Op     string
	Detail string
}

func (e *Precondition) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

// NewPrecondition builds a Precondition error for op with a formatted detail.
func NewPrecondition(op, format string, args ...interface{}) error {
	return &Precondition{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// IsPrecondition reports whether err is a *Precondition.
func IsPrecondition(err error) bool {
	_, ok := err.(*Precondition)
	return ok
}

// InternalInconsistency reports that a structural invariant the data
// structure relies on no longer holds (segment-tree counts disagree, a rank
// resolves to an absent priority, ...). Callers must not treat this as a
// recoverable condition; operations that detect it panic with the error
// value rather than returning it, because the structure is no longer safe
// to use.
type InternalInconsistency struct {
	Op     string
	Detail string
}

func (e *InternalInconsistency) Error() string {
	return fmt.Sprintf("internal inconsistency in %s: %s", e.Op, e.Detail)
}

// Fatal panics with an *InternalInconsistency built from op and the
// formatted detail. It is the only way internal inconsistencies are raised:
// they must surface as fatal errors, never be caught and swallowed. When
// log is non-nil, it emits a Fatal-level event immediately before the
// panic fires, so the last thing on the wire before the process unwinds
// explains what tripped. log.WithLevel is used rather than log.Fatal so the
// logger's own process-exit side effect never races the panic.
func Fatal(log *zerolog.Logger, op, format string, args ...interface{}) {
	detail := fmt.Sprintf(format, args...)
	if log != nil {
		log.WithLevel(zerolog.FatalLevel).Str("op", op).Msg(detail)
	}
	panic(&InternalInconsistency{Op: op, Detail: detail})
}
