package escrutinio

import "fmt"

// ValidationError reports input rejected by a mutator. The operation aborts
// with no change to the snapshot and nothing persisted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func errEmptyName() error {
	return &ValidationError{Reason: "empty name"}
}

func errDuplicateName(name string) error {
	return &ValidationError{Reason: fmt.Sprintf("duplicate name %q", name)}
}

// NotFoundError reports an edit aimed at an id that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s with id %s", e.Kind, e.ID)
}
