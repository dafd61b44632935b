// Package errs collects the build-time error kinds raised while lowering a
// pipeline into a DAG or while operating the watermark source utility. None
// of these are retried by the caller (spec.md §7): the pipeline author must
// fix the pipeline and rebuild, or the process must restart.
package errs

import (
	"github.com/pkg/errors"
)

// InvalidPipelineError reports a structural problem with the transform
// tree itself: an unattached (leaked) transform, a cycle, or a variant
// whose upstream arity doesn't match its declared arity.
type InvalidPipelineError struct {
	Message string
}

func (e *InvalidPipelineError) Error() string {
	return "invalid pipeline: " + e.Message
}

// NewInvalidPipeline builds an InvalidPipelineError with a formatted
// message, mirroring the teacher's errors.Errorf call sites.
func NewInvalidPipeline(format string, args ...interface{}) *InvalidPipelineError {
	return &InvalidPipelineError{Message: errors.Errorf(format, args...).Error()}
}

// WrapInvalidPipeline wraps a lower-level error (typically one returned by
// a Transform's AddToDag) with additional context, the way the teacher's
// environment.Start wraps task-init failures with errors.WithMessage.
func WrapInvalidPipeline(err error, format string, args ...interface{}) *InvalidPipelineError {
	return &InvalidPipelineError{Message: errors.WithMessagef(err, format, args...).Error()}
}

// InvalidArgumentError reports a caller mistake at a single call site,
// such as shrinking the WSU partition count.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Message
}

func NewInvalidArgument(format string, args ...interface{}) *InvalidArgumentError {
	return &InvalidArgumentError{Message: errors.Errorf(format, args...).Error()}
}

// InternalError reports a planner contract violation: a transform that
// topological order should have placed (and therefore registered in
// xform2vertex) before its consumer was not found. This indicates a bug
// in a Transform variant's addToDag implementation, not a user error.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}

func NewInternal(format string, args ...interface{}) *InternalError {
	return &InternalError{Message: errors.Errorf(format, args...).Error()}
}

// ContractViolation is panicked (never returned) when a package-internal
// invariant is broken by the caller, such as handing WatermarkSourceUtil
// a new event before draining the traverser it returned for the previous
// one. It mirrors a Java `assert` statement: present to catch programming
// errors during development, not meant to be recovered from in production.
type ContractViolation struct {
	Message string
}

func (e *ContractViolation) Error() string {
	return "contract violation: " + e.Message
}

func NewContractViolation(format string, args ...interface{}) *ContractViolation {
	return &ContractViolation{Message: errors.Errorf(format, args...).Error()}
}
