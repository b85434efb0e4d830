package cli

import (
	"errors"
	"fmt"
)

var errUnknownID = errors.New("unknown id")

// notFoundError reports an id that the loaded tree does not contain.
type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func (e notFoundError) Unwrap() error { return errUnknownID }

func errItemNotFound(id string) error {
	return notFoundError{kind: "item", id: id}
}
