package engine

import (
	"fmt"

	"github.com/roach88/linestore/internal/statement"
	"github.com/roach88/linestore/internal/table"
)

// executedMsg terminates every successful statement's output block.
const executedMsg = "Executed."

// Executor dispatches validated statements against the table and
// produces their textual results.
type Executor struct {
	table *table.Table
}

// NewExecutor creates an executor over an empty table.
func NewExecutor() *Executor {
	return &Executor{table: table.New()}
}

// Table exposes the underlying row store. The harness uses it for
// row-count assertions after a scripted session.
func (e *Executor) Table() *table.Table {
	return e.table
}

// Execute runs one parsed statement and returns its output block,
// one element per printed line.
//
// Insert validates the raw fields, appends the row, and yields
// "Executed.". Select yields one formatted row per stored row in
// insertion order followed by "Executed."; an empty table yields only
// "Executed.". Validation failures are returned as the error; no row
// is admitted and the caller prints the error's message as the whole
// output block.
func (e *Executor) Execute(stmt statement.Statement) ([]string, error) {
	switch stmt.Kind {
	case statement.KindInsert:
		return e.executeInsert(stmt.Insert)
	case statement.KindSelect:
		return e.executeSelect()
	}
	return nil, fmt.Errorf("unknown statement kind %d", stmt.Kind)
}

func (e *Executor) executeInsert(args statement.InsertArgs) ([]string, error) {
	row, err := statement.Validate(args)
	if err != nil {
		return nil, err
	}
	if err := e.table.Insert(row); err != nil {
		return nil, err
	}
	return []string{executedMsg}, nil
}

func (e *Executor) executeSelect() ([]string, error) {
	lines := make([]string, 0, e.table.NumRows()+1)
	err := e.table.Scan(func(r table.Row) error {
		lines = append(lines, r.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return append(lines, executedMsg), nil
}

// ExecuteMeta runs a non-exit meta-command and returns its output
// block. Unknown commands are non-fatal and report themselves with
// the exact contract message.
func (e *Executor) ExecuteMeta(cmd statement.MetaCommand) []string {
	switch cmd.Kind {
	case statement.MetaBTree:
		return e.printTree()
	case statement.MetaConstants:
		return printConstants()
	}
	return []string{fmt.Sprintf("Unrecognized command '%s'.", cmd.Name)}
}

// printTree renders the table's leaf structure: the cell count, then
// one "  - <cell> : <key>" line per stored cell.
func (e *Executor) printTree() []string {
	keys := e.table.Keys()
	lines := make([]string, 0, len(keys)+2)
	lines = append(lines, "Tree:")
	lines = append(lines, fmt.Sprintf("leaf (size %d)", len(keys)))
	for i, key := range keys {
		lines = append(lines, fmt.Sprintf("  - %d : %d", i, key))
	}
	return lines
}

func printConstants() []string {
	return []string{
		"Constants:",
		fmt.Sprintf("ROW_SIZE: %d", table.RowSize),
		fmt.Sprintf("COMMON_NODE_HEADER_SIZE: %d", table.CommonNodeHeaderSize),
		fmt.Sprintf("LEAF_NODE_HEADER_SIZE: %d", table.LeafNodeHeaderSize),
		fmt.Sprintf("LEAF_NODE_CELL_SIZE: %d", table.LeafNodeCellSize),
		fmt.Sprintf("LEAF_NODE_SPACE_FOR_CELLS: %d", table.LeafNodeSpaceForCells),
		fmt.Sprintf("LEAF_NODE_MAX_CELLS: %d", table.LeafNodeMaxCells),
	}
}
