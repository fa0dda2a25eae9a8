// Package resolve implements SymbolResolver: the single AST walk that
// builds nested lexical scopes, binds every name use to its
// declaration, and allocates storage slots.
package resolve

import (
	"github.com/rs/zerolog/log"

	"github.com/optio-labs/aqua-compiler/ast"
	"github.com/optio-labs/aqua-compiler/symtab"
)

// Resolve walks root, attaching Scope/Symbol/Symbols annotations in
// place, and returns the outermost (global) symbol table. The first
// error encountered aborts the walk.
func Resolve(root *ast.Node) (*symtab.SymbolTable, error) {
	global := symtab.NewSymbolTable(nil, 0)
	if err := resolveNode(global, root); err != nil {
		log.Error().Err(err).Msg("resolve: aborting on first error")
		return nil, err
	}
	log.Debug().Int("globals", global.NumSymbols()).Msg("resolve: complete")
	return global, nil
}

// resolveNode is children-before-self (post-order): most annotations
// depend only on the local node, so substructure is resolved first.
// Nodes whose substructure lives under a named attribute rather than
// Children (function-declaration.Body, if-statement.IfBlock/ElseBlock,
// declare-variable/declare-constant.Initializer, while-statement.Body,
// function-call.FunctionArgs) descend into it themselves rather than
// relying on a generic Children walk.
func resolveNode(tab *symtab.SymbolTable, n *ast.Node) error {
	switch n.Kind {

	case ast.FunctionDeclaration:
		// No new scope for the declaration itself; a fresh child
		// scope covers the body. Parameters are NOT pre-declared into
		// it here — codegen's prologue relies on the function's body
		// containing a declare-variable for each parameter (spec.md
		// §9 Open Question, preserved as-is).
		scope := symtab.NewSymbolTable(tab, 0)
		n.Scope = scope
		if n.Body != nil {
			if err := resolveNode(scope, n.Body); err != nil {
				return err
			}
		}
		return nil

	case ast.DeclareVariable, ast.DeclareConstant:
		if n.Initializer != nil {
			if err := resolveNode(tab, n.Initializer); err != nil {
				return err
			}
		}
		kind := symtab.Variable
		if n.Kind == ast.DeclareConstant {
			kind = symtab.Constant
		}
		sym, err := tab.Define(n.Name, kind)
		if err != nil {
			return err
		}
		n.Symbol = sym
		return nil

	case ast.AccessVariable:
		sym, ok := tab.Get(n.Name)
		if !ok {
			return &UndeclaredNameError{Name: n.Name}
		}
		n.Symbol = sym
		return nil

	case ast.AssignmentStatement:
		for _, c := range n.Children {
			if err := resolveNode(tab, c); err != nil {
				return err
			}
		}
		if n.Assignee == nil || n.Assignee.Kind != ast.AccessVariable {
			name := ""
			if n.Assignee != nil {
				name = n.Assignee.Name
			}
			return &NotAnLvalueError{Name: name}
		}
		sym, ok := tab.Get(n.Assignee.Name)
		if !ok {
			return &UndeclaredNameError{Name: n.Assignee.Name}
		}
		if sym.Kind != symtab.Variable {
			return &AssignToConstantError{Name: sym.Name}
		}
		n.Symbol = sym
		return nil

	case ast.IfStatement:
		// No new scope: ifBlock/elseBlock resolve in the current
		// table (spec.md §9 Open Question, preserved as-is).
		for _, c := range n.Children {
			if err := resolveNode(tab, c); err != nil {
				return err
			}
		}
		if n.IfBlock != nil {
			if err := resolveNode(tab, n.IfBlock); err != nil {
				return err
			}
		}
		if n.ElseBlock != nil {
			if err := resolveNode(tab, n.ElseBlock); err != nil {
				return err
			}
		}
		return nil

	case ast.WhileStatement:
		for _, c := range n.Children {
			if err := resolveNode(tab, c); err != nil {
				return err
			}
		}
		if n.Body != nil {
			if err := resolveNode(tab, n.Body); err != nil {
				return err
			}
		}
		return nil

	case ast.FunctionCall:
		for _, arg := range n.FunctionArgs {
			if err := resolveNode(tab, arg); err != nil {
				return err
			}
		}
		return nil

	case ast.Number, ast.StringLiteral:
		return nil

	default:
		// return-statement, expr-statement, block, statement,
		// operation: purely structural, generic child traversal
		// suffices.
		for _, c := range n.Children {
			if err := resolveNode(tab, c); err != nil {
				return err
			}
		}
		return nil
	}
}
