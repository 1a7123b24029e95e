package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflict is returned when a unit of work kept losing to concurrent
// writers. The caller may retry the whole operation.
var ErrConflict = errors.New("concurrent update conflict")

// CommitError is returned when EXEC ran but some queued writes failed.
// Writes are identified by their primary key. A write is committed when its
// primary command succeeded; Degraded lists committed writes whose index
// commands failed.
type CommitError struct {
	Committed []string
	Failed    []string
	Degraded  []string
	Err       error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("partial commit, failed keys [%s]: %v", strings.Join(e.Failed, " "), e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// IsCommitted reports whether the write for key was applied
func (e *CommitError) IsCommitted(key string) bool {
	for _, k := range e.Committed {
		if k == key {
			return true
		}
	}
	return false
}
