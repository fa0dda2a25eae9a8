package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optio-labs/aqua-compiler/ast"
	"github.com/optio-labs/aqua-compiler/resolve"
	"github.com/optio-labs/aqua-compiler/symtab"
)

// S5: duplicate declaration.
func TestDuplicateDefinitionFails(t *testing.T) {
	root := ast.NewBlock(
		ast.NewDeclareVariable("x", ast.NewNumber("1")),
		ast.NewDeclareVariable("x", ast.NewNumber("2")),
	)

	_, err := resolve.Resolve(root)
	require.Error(t, err)
	var dup *symtab.DuplicateDefinitionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "x", dup.Name)
}

// S6: undeclared access.
func TestUndeclaredAccessFails(t *testing.T) {
	root := ast.NewBlock(
		ast.NewExprStatement(ast.NewAccessVariable("missing")),
	)

	_, err := resolve.Resolve(root)
	require.Error(t, err)
	var undeclared *resolve.UndeclaredNameError
	require.ErrorAs(t, err, &undeclared)
	assert.Equal(t, "missing", undeclared.Name)
}

func TestNotAnLvalueFails(t *testing.T) {
	assignment := ast.NewAssignment(ast.NewNumber("1"), ast.NewNumber("2"))
	root := ast.NewBlock(assignment)

	_, err := resolve.Resolve(root)
	require.Error(t, err)
	var notLvalue *resolve.NotAnLvalueError
	require.ErrorAs(t, err, &notLvalue)
}

func TestAssignToConstantFails(t *testing.T) {
	root := ast.NewBlock(
		ast.NewDeclareConstant("c", ast.NewNumber("1")),
		ast.NewAssignment(ast.NewAccessVariable("c"), ast.NewNumber("2")),
	)

	_, err := resolve.Resolve(root)
	require.Error(t, err)
	var assignConst *resolve.AssignToConstantError
	require.ErrorAs(t, err, &assignConst)
	assert.Equal(t, "c", assignConst.Name)
}

func TestAssignToVariableSucceeds(t *testing.T) {
	root := ast.NewBlock(
		ast.NewDeclareVariable("v", ast.NewNumber("1")),
		ast.NewAssignment(ast.NewAccessVariable("v"), ast.NewNumber("2")),
	)

	_, err := resolve.Resolve(root)
	require.NoError(t, err)
}

// Invariant 2: a function's scope getNumSymbols equals the count of
// locally declared symbols, in declaration-order positions 1..N.
// Parameters are not pre-declared (spec.md §9), so the fixture
// declares them explicitly inside the body, as the source language is
// expected to.
func TestFunctionScopeCountsParametersDeclaredInBody(t *testing.T) {
	body := ast.NewBlock(
		ast.NewDeclareVariable("a", nil),
		ast.NewDeclareVariable("b", nil),
		ast.NewReturn(ast.NewAccessVariable("a")),
	)
	fn := ast.NewFunctionDeclaration("f", []string{"a", "b"}, body)
	root := ast.NewBlock(fn)

	_, err := resolve.Resolve(root)
	require.NoError(t, err)

	require.NotNil(t, fn.Scope)
	assert.Equal(t, 2, fn.Scope.NumSymbols())

	aSym, ok := fn.Scope.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, aSym.Position)
	assert.False(t, aSym.IsGlobal)

	bSym, ok := fn.Scope.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, bSym.Position)
}

// if-statement does not introduce a new scope: a declaration inside
// ifBlock collides with one in the enclosing scope.
func TestIfStatementDoesNotIntroduceScope(t *testing.T) {
	root := ast.NewBlock(
		ast.NewDeclareVariable("x", ast.NewNumber("1")),
		ast.NewIf(
			ast.NewAccessVariable("x"),
			ast.NewBlock(ast.NewDeclareVariable("x", ast.NewNumber("2"))),
			nil,
		),
	)

	_, err := resolve.Resolve(root)
	require.Error(t, err)
	var dup *symtab.DuplicateDefinitionError
	require.ErrorAs(t, err, &dup)
}

func TestGlobalsAreMarkedGlobal(t *testing.T) {
	root := ast.NewBlock(ast.NewDeclareVariable("g", nil))

	global, err := resolve.Resolve(root)
	require.NoError(t, err)

	sym, ok := global.Get("g")
	require.True(t, ok)
	assert.True(t, sym.IsGlobal)
}
