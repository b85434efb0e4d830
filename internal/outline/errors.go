package outline

import (
	"errors"
	"fmt"
)

// ErrContract marks a broken caller invariant: a bug in the calling code rather
// than something reachable from user input.
var ErrContract = errors.New("contract violation")

type ContractError struct {
	Op     string
	ID     string
	Reason string
}

func (e ContractError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Op, e.ID, e.Reason)
}

func (e ContractError) Unwrap() error { return ErrContract }
