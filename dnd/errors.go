package dnd

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPayload    = errors.New("dnd: empty payload")
	ErrUnsupportedItem = errors.New("dnd: unsupported drag item")
)

//----------

// Native subsystem setup failure (display connection, window creation,
// ole runtime init).
type SetupError struct {
	Op  string
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("dnd setup: %s: %v", e.Op, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}
