package table

import (
	"encoding/binary"
	"fmt"
)

// page is one in-memory leaf page. Cells live after the reserved
// header region, each keyed by the row id.
type page struct {
	data     [PageSize]byte
	numCells int
}

func (p *page) cell(n int) []byte {
	off := LeafNodeHeaderSize + n*LeafNodeCellSize
	return p.data[off : off+LeafNodeCellSize]
}

// Table is the ordered in-memory row store. Rows are appended to the
// last page; a new page is allocated when it fills. Insertion order
// is preserved and growth is unbounded.
type Table struct {
	pages   []*page
	numRows int
}

// New creates an empty table.
func New() *Table {
	return &Table{}
}

// NumRows reports the number of stored rows.
func (t *Table) NumRows() int {
	return t.numRows
}

// Insert appends a row. Amortized O(1): at most one page allocation.
func (t *Table) Insert(r Row) error {
	last := len(t.pages) - 1
	if last < 0 || t.pages[last].numCells >= LeafNodeMaxCells {
		t.pages = append(t.pages, &page{})
		last++
	}
	p := t.pages[last]
	cell := p.cell(p.numCells)
	putKey(cell, r.ID)
	if err := SerializeRow(r, cell[LeafNodeKeySize:]); err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	p.numCells++
	t.numRows++
	return nil
}

// Scan calls fn for each row in insertion order. Iteration stops at
// the first error, which is returned.
func (t *Table) Scan(fn func(Row) error) error {
	for _, p := range t.pages {
		for i := 0; i < p.numCells; i++ {
			r, err := DeserializeRow(p.cell(i)[LeafNodeKeySize:])
			if err != nil {
				return err
			}
			if err := fn(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// Keys returns the stored cell keys in insertion order.
// Used by the .btree meta-command to print the leaf structure.
func (t *Table) Keys() []uint32 {
	keys := make([]uint32, 0, t.numRows)
	for _, p := range t.pages {
		for i := 0; i < p.numCells; i++ {
			keys = append(keys, getKey(p.cell(i)))
		}
	}
	return keys
}

func putKey(cell []byte, key uint32) {
	binary.LittleEndian.PutUint32(cell[:LeafNodeKeySize], key)
}

func getKey(cell []byte) uint32 {
	return binary.LittleEndian.Uint32(cell[:LeafNodeKeySize])
}
