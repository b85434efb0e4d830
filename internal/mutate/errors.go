package mutate

import (
	"errors"
	"fmt"

	"filtertree/internal/model"
	"filtertree/internal/outline"
)

// ErrNotContainer is returned when an action would give children to a node
// that cannot hold them (attributes, footers).
var ErrNotContainer = errors.New("not a container")

type NotContainerError struct {
	ID   string
	Kind model.Kind
}

func (e NotContainerError) Error() string {
	return fmt.Sprintf("%s %s cannot have children", e.Kind, e.ID)
}

func (e NotContainerError) Is(target error) bool {
	return target == ErrNotContainer || target == outline.ErrContract
}

func contractErr(op, id, reason string) error {
	return outline.ContractError{Op: op, ID: id, Reason: reason}
}
