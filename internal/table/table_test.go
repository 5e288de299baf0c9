package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_InsertThenScan(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Insert(mustRow(t, 1, "user1", "person1@example.com")))
	require.Equal(t, 1, tbl.NumRows())

	var got []Row
	require.NoError(t, tbl.Scan(func(r Row) error {
		got = append(got, r)
		return nil
	}))
	require.Len(t, got, 1)
	assert.Equal(t, "(1, user1, person1@example.com)", got[0].String())
}

func TestTable_PreservesInsertionOrder(t *testing.T) {
	tbl := New()
	// Out-of-key-order inserts must come back in arrival order.
	for _, id := range []uint32{3, 1, 2} {
		r := mustRow(t, id, fmt.Sprintf("user%d", id), fmt.Sprintf("person%d@example.com", id))
		require.NoError(t, tbl.Insert(r))
	}

	var ids []uint32
	require.NoError(t, tbl.Scan(func(r Row) error {
		ids = append(ids, r.ID)
		return nil
	}))
	assert.Equal(t, []uint32{3, 1, 2}, ids)
}

func TestTable_GrowsPastOnePage(t *testing.T) {
	tbl := New()
	n := LeafNodeMaxCells*3 + 1
	for i := 0; i < n; i++ {
		r := mustRow(t, uint32(i), fmt.Sprintf("user%d", i), fmt.Sprintf("person%d@example.com", i))
		require.NoError(t, tbl.Insert(r))
	}
	require.Equal(t, n, tbl.NumRows())

	var ids []uint32
	require.NoError(t, tbl.Scan(func(r Row) error {
		ids = append(ids, r.ID)
		return nil
	}))
	require.Len(t, ids, n)
	for i, id := range ids {
		require.Equal(t, uint32(i), id)
	}
}

func TestTable_Keys(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Insert(mustRow(t, 9, "a", "a@x")))
	require.NoError(t, tbl.Insert(mustRow(t, 4, "b", "b@x")))
	assert.Equal(t, []uint32{9, 4}, tbl.Keys())
}

func TestTable_CellKeyLayout(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Insert(mustRow(t, 0x01020304, "u", "u@x")))

	// The cell key and the serialized id share one layout:
	// little-endian uint32.
	cell := tbl.pages[0].cell(0)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, cell[:LeafNodeKeySize])
	assert.Equal(t, cell[:LeafNodeKeySize], cell[LeafNodeKeySize+IDOffset:LeafNodeKeySize+IDOffset+IDSize])
	assert.Equal(t, []uint32{0x01020304}, tbl.Keys())
}

func TestTable_EmptyScan(t *testing.T) {
	calls := 0
	require.NoError(t, New().Scan(func(Row) error {
		calls++
		return nil
	}))
	assert.Zero(t, calls)
}
