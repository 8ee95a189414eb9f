package intern

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlio/hif/format"
	"github.com/hdlio/hif/section"
)

func TestTable_DenseAssignment(t *testing.T) {
	table := New()

	idx, fresh := table.Intern(format.CatString, []byte("A"))
	require.True(t, fresh)
	assert.EqualValues(t, 0, idx)

	idx, fresh = table.Intern(format.CatString, []byte("B"))
	require.True(t, fresh)
	assert.EqualValues(t, 1, idx)

	// Same key returns the same index without a fresh record.
	idx, fresh = table.Intern(format.CatString, []byte("A"))
	assert.False(t, fresh)
	assert.EqualValues(t, 0, idx)
}

func TestTable_CategoriesAreDistinctKeys(t *testing.T) {
	table := New()

	strIdx, _ := table.Intern(format.CatString, []byte("42"))
	binIdx, fresh := table.Intern(format.CatBase2, []byte("42"))

	require.True(t, fresh, "same bytes under another category must be a new identifier")
	assert.NotEqual(t, strIdx, binIdx)
}

func TestTable_ReservedIndexSkipped(t *testing.T) {
	table := New()

	var indices []uint32
	for i := 0; i < 40; i++ {
		idx, fresh := table.Intern(format.CatString, []byte(fmt.Sprintf("id%d", i)))
		require.True(t, fresh)
		indices = append(indices, idx)
	}

	for _, idx := range indices {
		assert.NotEqualValues(t, section.ReservedRefIndex, idx,
			"index 31 must never be assigned")
	}

	// The sequence stays dense apart from the burned slot.
	assert.EqualValues(t, 30, indices[30])
	assert.EqualValues(t, 32, indices[31])
}

func TestTable_CopiesPayload(t *testing.T) {
	table := New()

	key := []byte("mutable")
	idx, _ := table.Intern(format.CatString, key)
	key[0] = 'X'

	again, fresh := table.Intern(format.CatString, []byte("mutable"))
	assert.False(t, fresh, "mutating the caller's slice must not corrupt the table")
	assert.Equal(t, idx, again)
}

func TestTable_EmptyPayload(t *testing.T) {
	table := New()

	idx, fresh := table.Intern(format.CatString, nil)
	require.True(t, fresh)

	again, fresh := table.Intern(format.CatString, []byte{})
	assert.False(t, fresh)
	assert.Equal(t, idx, again)
}
