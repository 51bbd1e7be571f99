package eval

import (
	"fmt"
)

// RecursionLimitError is raised when a single evaluation call exceeds
// the configured recursion ceiling. It is fatal to that call and is not
// retried internally.
type RecursionLimitError struct {
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("eval: recursion depth of %d exceeded", e.Limit)
}

// IterationLimitError is raised when rule dispatch keeps producing new
// expressions past the configured iteration ceiling.
type IterationLimitError struct {
	Limit int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("eval: iteration limit of %d exceeded", e.Limit)
}

// EvaluationError wraps a failure of the evaluation machinery itself.
type EvaluationError struct {
	Op  string
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("eval: %s: %v", e.Op, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
