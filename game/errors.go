package game

import "fmt"

// LogicError reports a violated programming contract: a wrong-turn move, an undo
// with no history, a malformed piece stack. Board invariants cannot be trusted after
// one is raised, so it is panicked rather than returned.
type LogicError struct {
	msg string
}

func (e *LogicError) Error() string {
	return "logic error: " + e.msg
}

// Fail panics with a LogicError.
func Fail(format string, args ...any) {
	panic(&LogicError{msg: fmt.Sprintf(format, args...)})
}
