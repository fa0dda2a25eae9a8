package codegen

import "fmt"

// UnknownNodeTypeError is returned when the generator's visitor table
// has no case for a node's Kind.
type UnknownNodeTypeError struct {
	Kind fmt.Stringer
}

func (e *UnknownNodeTypeError) Error() string {
	return fmt.Sprintf("error, codegen has no case for node type '%v'", e.Kind)
}

// NoAssignmentTargetError is returned when an assignment-statement
// node carries neither a Symbol nor a non-empty Symbols list. Resolve
// is expected to have already rejected this; surfacing it here guards
// against a generator invoked on an unresolved or hand-built tree.
type NoAssignmentTargetError struct{}

func (e *NoAssignmentTargetError) Error() string {
	return "error, assignment-statement has no resolved target symbol"
}

// StackUnderflowError is CodeEmitter's internal invariant check: an
// Add call tried to pop more items than the logical compute-stack
// currently holds. This indicates a bug in the generator's visitor
// table, not a problem with the input program.
type StackUnderflowError struct {
	Instruction string
	Depth       int
	Popped      int
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("error, stack underflow emitting '%v': depth %d, popped %d", e.Instruction, e.Depth, e.Popped)
}
