package table

// Row cell layout. Fields are packed back to back with no padding
// and no terminators; short strings are zero-filled.
const (
	IDSize       = 4
	UsernameSize = 32
	EmailSize    = 255

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize

	RowSize = IDSize + UsernameSize + EmailSize
)

// Leaf page layout. Pages are sized like a B-tree leaf node even
// though only sequential append is implemented: the header space is
// reserved and each cell carries its key ahead of the row bytes.
const (
	PageSize = 4096

	NodeTypeSize      = 1
	IsRootSize        = 1
	ParentPointerSize = 4

	CommonNodeHeaderSize = NodeTypeSize + IsRootSize + ParentPointerSize

	LeafNodeNumCellsSize = 4
	LeafNodeHeaderSize   = CommonNodeHeaderSize + LeafNodeNumCellsSize

	LeafNodeKeySize       = 4
	LeafNodeValueSize     = RowSize
	LeafNodeCellSize      = LeafNodeKeySize + LeafNodeValueSize
	LeafNodeSpaceForCells = PageSize - LeafNodeHeaderSize
	LeafNodeMaxCells      = LeafNodeSpaceForCells / LeafNodeCellSize
)
