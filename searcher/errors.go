package searcher

import (
	"fmt"

	"gridgames/game"
)

// ExecutionError reports a move that panicked while the search played or took it back.
type ExecutionError struct {
	Move  game.Move
	Path  string // moves from the search root leading up to Move
	Undo  bool   // the failure happened while taking Move back
	Cause error
}

func (e *ExecutionError) Error() string {
	verb := "executing"
	if e.Undo {
		verb = "taking back"
	}
	return fmt.Sprintf("%s %s after [%s]: %v", verb, &e.Move, e.Path, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
