// Package table implements the single fixed-schema row store.
//
// The schema is fixed at id (uint32), username (<= 32 bytes), and
// email (<= 255 bytes). Rows are packed into a fixed-width 291-byte
// cell layout and stored in 4096-byte in-memory pages, mirroring a
// single-leaf B-tree node. Page count is unbounded; rows are appended
// in arrival order and never reordered, updated, or deleted.
//
// Username and Email are constrained value types: the only way to
// obtain one is through its constructor, so a Row that violates a
// length bound is unrepresentable.
//
// The table is owned by a single interpreter session and is mutated
// only by that session's executor. There is no concurrent access and
// no locking.
package table
