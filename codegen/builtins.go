package codegen

import (
	"fmt"
	"strings"

	"github.com/optio-labs/aqua-compiler/ast"
)

// Builtin is one entry in the builtins table: given the call node, it
// evaluates its own arguments (via g.genNode) and emits whatever
// instructions give the call its net stack effect. Builtins are
// responsible for the "always returns one value" convention
// function-call expressions otherwise get for free from callsub.
type Builtin func(g *Generator, call *ast.Node) error

// Builtins is the fixed, name-keyed table of inline code emitters
// from spec.md §4.4. Exported so a caller can register additional
// runtime opcodes beyond this fixed list without forking the
// generator (see DESIGN.md).
var Builtins = map[string]Builtin{
	"appGlobalPut":  genAppGlobalPut,
	"appGlobalGet":  genAppGlobalGet,
	"appGlobalDel":  genAppGlobalDel,
	"appLocalPut":   genAppLocalPut,
	"appLocalGet":   genAppLocalGet,
	"appLocalDel":   genAppLocalDel,
	"btoi":          genUnaryOpcode("btoi"),
	"itob":          genUnaryOpcode("itob"),
	"exit":          genExit,
	"itxn_begin":    genNiladicVoid("itxn_begin"),
	"itxn_field":    genItxnField,
	"itxn_submit":   genNiladicVoid("itxn_submit"),
}

func genArgs(g *Generator, call *ast.Node, n int) error {
	if len(call.FunctionArgs) != n {
		return fmt.Errorf("codegen: %s expects %d argument(s), got %d", call.Name, n, len(call.FunctionArgs))
	}
	for _, arg := range call.FunctionArgs {
		if err := g.genNode(arg); err != nil {
			return err
		}
	}
	return nil
}

func genUnaryOpcode(opcode string) Builtin {
	return func(g *Generator, call *ast.Node) error {
		if err := genArgs(g, call, 1); err != nil {
			return err
		}
		return g.emitter.Add(opcode, 1, 1)
	}
}

// genNiladicVoid handles builtins with no arguments and no natural
// return value (itxn_begin, itxn_submit): emit the opcode, then a
// dummy int 0 to satisfy the always-returns-one-value convention.
func genNiladicVoid(opcode string) Builtin {
	return func(g *Generator, call *ast.Node) error {
		if err := genArgs(g, call, 0); err != nil {
			return err
		}
		if err := g.emitter.Add(opcode, 0, 0); err != nil {
			return err
		}
		return g.emitter.Add("int 0", 1, 0)
	}
}

func genAppGlobalPut(g *Generator, call *ast.Node) error {
	if err := genArgs(g, call, 2); err != nil { // key, value
		return err
	}
	if err := g.emitter.Add("app_global_put", 0, 2); err != nil {
		return err
	}
	return g.emitter.Add("int 0", 1, 0)
}

func genAppGlobalGet(g *Generator, call *ast.Node) error {
	if err := genArgs(g, call, 1); err != nil { // key
		return err
	}
	return g.emitter.Add("app_global_get", 1, 1)
}

func genAppGlobalDel(g *Generator, call *ast.Node) error {
	if err := genArgs(g, call, 1); err != nil { // key
		return err
	}
	if err := g.emitter.Add("app_global_del", 0, 1); err != nil {
		return err
	}
	return g.emitter.Add("int 0", 1, 0)
}

func genAppLocalPut(g *Generator, call *ast.Node) error {
	if err := genArgs(g, call, 3); err != nil { // account, key, value
		return err
	}
	if err := g.emitter.Add("app_local_put", 0, 3); err != nil {
		return err
	}
	return g.emitter.Add("int 0", 1, 0)
}

func genAppLocalGet(g *Generator, call *ast.Node) error {
	if err := genArgs(g, call, 2); err != nil { // account, key
		return err
	}
	return g.emitter.Add("app_local_get", 1, 2)
}

func genAppLocalDel(g *Generator, call *ast.Node) error {
	if err := genArgs(g, call, 2); err != nil { // account, key
		return err
	}
	if err := g.emitter.Add("app_local_del", 0, 2); err != nil {
		return err
	}
	return g.emitter.Add("int 0", 1, 0)
}

// genExit evaluates its single argument and emits the program's
// terminating return opcode; execution never resumes, so there is no
// dummy value to balance the stack with.
func genExit(g *Generator, call *ast.Node) error {
	if err := genArgs(g, call, 1); err != nil {
		return err
	}
	return g.emitter.Add("return", 0, 1)
}

// genItxnField is special-cased: its first argument is a literal
// field-name node, unquoted from its string representation and
// concatenated directly into the opcode text, rather than evaluated
// at runtime. Its second argument is the runtime value, popped
// normally.
func genItxnField(g *Generator, call *ast.Node) error {
	if len(call.FunctionArgs) != 2 {
		return fmt.Errorf("codegen: itxn_field expects 2 arguments, got %d", len(call.FunctionArgs))
	}
	field := call.FunctionArgs[0]
	if field.Kind != ast.StringLiteral {
		return fmt.Errorf("codegen: itxn_field's first argument must be a string literal naming the field")
	}
	name := strings.Trim(field.Value, `"`)

	if err := g.genNode(call.FunctionArgs[1]); err != nil {
		return err
	}
	if err := g.emitter.Add(fmt.Sprintf("itxn_field %s", name), 0, 1); err != nil {
		return err
	}
	return g.emitter.Add("int 0", 1, 0)
}
