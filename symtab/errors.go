package symtab

import "fmt"

// DuplicateDefinitionError is returned by Define when name is already
// bound locally in the table.
type DuplicateDefinitionError struct {
	Name string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("error, '%v' already defined", e.Name)
}
