package codegen

import (
	"fmt"
	"strings"
)

// popOpcode is the textual instruction this module's target dialect
// uses to discard a single compute-stack item; PopAll emits one of
// these per leftover item.
const popOpcode = "pop"

// CodeEmitter is the narrow output sink CodeGenerator writes through.
// It is otherwise stateless regarding semantics: it trusts the
// caller's (pushed, popped) annotations and only tracks the resulting
// logical compute-stack depth, which it uses to emit "pop all
// leftover values" sequences at statement boundaries.
type CodeEmitter struct {
	lines []string
	depth int
}

// NewCodeEmitter returns an emitter with an empty output and a
// logical stack depth of zero.
func NewCodeEmitter() *CodeEmitter {
	return &CodeEmitter{}
}

// Add appends one instruction line, optionally followed by an inline
// comment, and updates the logical compute-stack depth by pushed -
// popped. comment is variadic so call sites that have none can omit
// it; only the first value (if any) is used.
func (e *CodeEmitter) Add(text string, pushed, popped int, comment ...string) error {
	if popped > e.depth {
		return &StackUnderflowError{Instruction: text, Depth: e.depth, Popped: popped}
	}
	e.depth += pushed - popped
	e.lines = append(e.lines, withComment(text, comment))
	return nil
}

// Label appends a label definition line of the form "name:".
func (e *CodeEmitter) Label(name string, comment ...string) {
	e.lines = append(e.lines, withComment(name+":", comment))
}

// Section appends a blank separator line, and a comment line if title
// is given. Purely cosmetic.
func (e *CodeEmitter) Section(title ...string) {
	e.lines = append(e.lines, "")
	if len(title) > 0 && title[0] != "" {
		e.lines = append(e.lines, "// "+title[0])
	}
}

// ResetStack zeroes the logical depth. Called by the generator at
// every statement boundary.
func (e *CodeEmitter) ResetStack() {
	e.depth = 0
}

// PopAll drains the current logical depth to zero by emitting one
// popOpcode instruction per leftover item, for expression statements
// whose value is unused.
func (e *CodeEmitter) PopAll() error {
	for e.depth > 0 {
		if err := e.Add(popOpcode, 0, 1); err != nil {
			return err
		}
	}
	return nil
}

// Depth returns the current logical compute-stack depth. Exposed
// mainly for tests asserting emitter bookkeeping.
func (e *CodeEmitter) Depth() int {
	return e.depth
}

// Output joins every emitted line with CR-LF, in insertion order.
func (e *CodeEmitter) Output() string {
	return strings.Join(e.lines, "\r\n")
}

func withComment(text string, comment []string) string {
	if len(comment) > 0 && comment[0] != "" {
		return fmt.Sprintf("%s // %s", text, comment[0])
	}
	return text
}
