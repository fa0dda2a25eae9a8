// Package ast defines the tagged-variant AST node that the resolver and
// code generator consume. Nodes are produced by an external parser (out
// of scope for this module); the constructors here exist so this
// module's own tests can build trees without one.
package ast

import "github.com/optio-labs/aqua-compiler/symtab"

// Kind discriminates the variant-specific attributes a Node carries.
type Kind int

const (
	FunctionDeclaration Kind = iota
	DeclareVariable
	DeclareConstant
	AccessVariable
	AssignmentStatement
	IfStatement
	WhileStatement
	ReturnStatement
	ExprStatement
	FunctionCall
	Operation
	Number
	StringLiteral
	Block
	Statement
)

var kindNames = map[Kind]string{
	FunctionDeclaration: "function-declaration",
	DeclareVariable:     "declare-variable",
	DeclareConstant:     "declare-constant",
	AccessVariable:      "access-variable",
	AssignmentStatement: "assignment-statement",
	IfStatement:         "if-statement",
	WhileStatement:      "while-statement",
	ReturnStatement:     "return-statement",
	ExprStatement:       "expr-statement",
	FunctionCall:        "function-call",
	Operation:           "operation",
	Number:              "number",
	StringLiteral:       "string-literal",
	Block:                "block",
	Statement:           "statement",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "<unknown node kind>"
}

// Node is a tagged record: Kind selects which of the variant-specific
// attributes below are meaningful. Children holds the substructure the
// default traversal visits generically (operands, statement lists, the
// condition of an if/while, the rhs of an assignment). Named attributes
// such as Body, IfBlock, ElseBlock, Initializer and FunctionArgs are
// authoritative and are never duplicated into Children.
type Node struct {
	Kind     Kind
	Children []*Node

	// function-declaration, declare-variable, declare-constant,
	// access-variable, function-call
	Name string

	Params       []string // function-declaration
	Body         *Node    // function-declaration, while-statement
	Initializer  *Node    // declare-variable, declare-constant
	Assignee     *Node    // assignment-statement (an access-variable node)
	IfBlock      *Node    // if-statement
	ElseBlock    *Node    // if-statement
	FunctionArgs []*Node  // function-call

	Opcode          string   // operation
	Args            []string // operation: literal operands appended after the opcode
	NumItemsAdded   *int     // operation: overrides the default pushed count (1)
	NumItemsRemoved *int     // operation: overrides the default popped count (2)

	Value string // number, string-literal

	// Annotations, populated in place by resolve/codegen.
	Scope              *symtab.SymbolTable
	Symbol             *symtab.Symbol
	Symbols            []*symtab.Symbol
	ControlStatementID int
}

// There is deliberately no single generic Walk here: resolve and
// codegen each descend the tree with their own exhaustive switch over
// Kind (see resolve.resolveNode and codegen's Generator.genNode),
// since which of Children vs. the named attributes gets visited, and
// in what order, differs per node kind and per component.
