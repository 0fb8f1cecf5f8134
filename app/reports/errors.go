package reports

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals an unknown student, class or semester. It aborts
	// the single request it belongs to.
	ErrNotFound = errors.New("not found")

	// ErrNoStudents fails a bulk run before any work starts.
	ErrNoStudents = errors.New("class has no students")

	// ErrAllFailed is returned when every student in a bulk run errored.
	ErrAllFailed = errors.New("all students failed")
)

// ConfigError marks a subject whose weight configuration could not be used.
// The subject is still emitted with a zero score and an "Unavailable"
// remark; scoring continues for the student's other subjects.
type ConfigError struct {
	SubjectID string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid assessment configuration for subject %s: %s", e.SubjectID, e.Reason)
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}
