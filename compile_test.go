package aquac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aquac "github.com/optio-labs/aqua-compiler"
	"github.com/optio-labs/aqua-compiler/ast"
	"github.com/optio-labs/aqua-compiler/resolve"
)

func TestCompilePrefixesPragma(t *testing.T) {
	root := ast.NewBlock(ast.NewReturn(ast.NewNumber("1")))

	out, err := aquac.Compile(aquac.Options{}, root)
	require.NoError(t, err)

	assert.Equal(t, "#pragma version 3\r\nint 1\r\nreturn", out)
}

func TestCompileHonoursPragmaVersion(t *testing.T) {
	root := ast.NewBlock(ast.NewReturn(ast.NewNumber("1")))

	out, err := aquac.Compile(aquac.Options{PragmaVersion: 5}, root)
	require.NoError(t, err)

	assert.Contains(t, out, "#pragma version 5")
}

func TestCompileReturnsResolveErrors(t *testing.T) {
	root := ast.NewBlock(
		ast.NewExprStatement(ast.NewAccessVariable("missing")),
	)

	_, err := aquac.Compile(aquac.Options{}, root)
	require.Error(t, err)
	var undeclared *resolve.UndeclaredNameError
	require.ErrorAs(t, err, &undeclared)
}
