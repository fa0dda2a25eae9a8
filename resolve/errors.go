package resolve

import "fmt"

// UndeclaredNameError is returned when an access-variable, or an
// assignment's assignee, names a binding unreachable from the current
// scope's parent chain.
type UndeclaredNameError struct {
	Name string
}

func (e *UndeclaredNameError) Error() string {
	return fmt.Sprintf("error, no declaration for identifier '%v' found", e.Name)
}

// NotAnLvalueError is returned when an assignment-statement's assignee
// is not an access-variable node.
type NotAnLvalueError struct {
	Name string
}

func (e *NotAnLvalueError) Error() string {
	return fmt.Sprintf("error, '%v' is not an lvalue", e.Name)
}

// AssignToConstantError is returned when an assignment targets a
// symbol declared with declare-constant.
type AssignToConstantError struct {
	Name string
}

func (e *AssignToConstantError) Error() string {
	return fmt.Sprintf("error, cannot assign to constant '%v'", e.Name)
}
