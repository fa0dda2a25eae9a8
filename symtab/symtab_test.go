package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optio-labs/aqua-compiler/symtab"
)

func TestDefineAssignsContiguousPositions(t *testing.T) {
	tab := symtab.NewSymbolTable(nil, 0)

	names := []string{"a", "b", "c"}
	for i, name := range names {
		sym, err := tab.Define(name, symtab.Variable)
		require.NoError(t, err)
		assert.Equal(t, i+1, sym.Position)
		assert.Equal(t, name, sym.Name)
	}
	assert.Equal(t, len(names), tab.NumSymbols())
}

func TestDefineDuplicateFails(t *testing.T) {
	tab := symtab.NewSymbolTable(nil, 0)

	_, err := tab.Define("x", symtab.Variable)
	require.NoError(t, err)

	_, err = tab.Define("x", symtab.Constant)
	require.Error(t, err)
	var dup *symtab.DuplicateDefinitionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "x", dup.Name)
}

func TestIsDefinedLocallyIgnoresParent(t *testing.T) {
	parent := symtab.NewSymbolTable(nil, 0)
	_, err := parent.Define("outer", symtab.Variable)
	require.NoError(t, err)

	child := symtab.NewSymbolTable(parent, 0)
	assert.False(t, child.IsDefinedLocally("outer"))
	assert.True(t, parent.IsDefinedLocally("outer"))
}

func TestGetWalksParentChain(t *testing.T) {
	root := symtab.NewSymbolTable(nil, 0)
	_, err := root.Define("g", symtab.Variable)
	require.NoError(t, err)

	child := symtab.NewSymbolTable(root, 0)
	_, err = child.Define("l", symtab.Variable)
	require.NoError(t, err)

	grandchild := symtab.NewSymbolTable(child, 0)

	sym, ok := grandchild.Get("g")
	require.True(t, ok)
	assert.True(t, sym.IsGlobal)

	sym, ok = grandchild.Get("l")
	require.True(t, ok)
	assert.False(t, sym.IsGlobal)

	_, ok = grandchild.Get("missing")
	assert.False(t, ok)
}

func TestChildSlotNumberingIsIndependent(t *testing.T) {
	root := symtab.NewSymbolTable(nil, 0)
	_, err := root.Define("a", symtab.Variable)
	require.NoError(t, err)
	_, err = root.Define("b", symtab.Variable)
	require.NoError(t, err)

	child := symtab.NewSymbolTable(root, 0)
	sym, err := child.Define("x", symtab.Variable)
	require.NoError(t, err)
	assert.Equal(t, 1, sym.Position)
	assert.False(t, sym.IsGlobal)
}

func TestIsGlobalOnlyForOutermostTable(t *testing.T) {
	root := symtab.NewSymbolTable(nil, 0)
	rootSym, err := root.Define("g", symtab.Variable)
	require.NoError(t, err)
	assert.True(t, rootSym.IsGlobal)

	child := symtab.NewSymbolTable(root, 0)
	childSym, err := child.Define("l", symtab.Variable)
	require.NoError(t, err)
	assert.False(t, childSym.IsGlobal)
}

func TestWalkVisitsInInsertionOrder(t *testing.T) {
	tab := symtab.NewSymbolTable(nil, 0)
	for _, n := range []string{"first", "second", "third"} {
		_, err := tab.Define(n, symtab.Variable)
		require.NoError(t, err)
	}

	var seen []string
	tab.Walk(func(s *symtab.Symbol) { seen = append(seen, s.Name) })
	assert.Equal(t, []string{"first", "second", "third"}, seen)
}
