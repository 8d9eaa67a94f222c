package abi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sikort/internal/abi"
	"sikort/internal/testkit"
)

func TestCatalogueConvention(t *testing.T) {
	ops := abi.Ops()
	require.Len(t, ops, 15)

	for _, op := range ops {
		if op.NoReturn {
			assert.Empty(t, op.Params, "%s: no-return operation takes parameters", op.Symbol)
			continue
		}
		res, ok := op.Result()
		require.True(t, ok, "%s: missing output parameter", op.Symbol)
		assert.Equal(t, "out", res.Name, op.Symbol)
		for _, p := range op.Operands() {
			assert.NotEqual(t, abi.Out, p.Mode, "%s: second output parameter", op.Symbol)
			if p.Kind == abi.KindString {
				assert.Equal(t, abi.ByRef, p.Mode, "%s: string operand passed by value", op.Symbol)
			}
		}
	}
}

func TestCatalogueInvariants(t *testing.T) {
	require.NoError(t, testkit.CheckCatalogueInvariants(abi.Ops()))
}

func TestLookupBySymbolAndAlias(t *testing.T) {
	for _, op := range abi.Ops() {
		bySym, ok := abi.Lookup(op.Symbol)
		require.True(t, ok, op.Symbol)
		byAlias, ok := abi.Lookup(op.Alias)
		require.True(t, ok, op.Alias)
		assert.Equal(t, op.ID, bySym.ID)
		assert.Equal(t, op.ID, byAlias.ID)

		byID, ok := abi.OpByID(op.ID)
		require.True(t, ok)
		assert.Equal(t, op.Symbol, byID.Symbol)
	}
	_, ok := abi.Lookup("Float_Float_add")
	assert.False(t, ok)
	_, ok = abi.OpByID(0)
	assert.False(t, ok)
}

func TestComparisonsReadThroughReferences(t *testing.T) {
	for _, name := range []string{"Int_Int_eq", "Int_Int_lessThan", "Int_Int_clone"} {
		op, ok := abi.Lookup(name)
		require.True(t, ok)
		for _, p := range op.Operands() {
			assert.Equal(t, abi.ByRef, p.Mode, "%s.%s", name, p.Name)
		}
	}
}
