package statement

// Kind discriminates successfully parsed statements.
type Kind int

const (
	// KindInsert is an insert statement with raw, unvalidated fields.
	KindInsert Kind = iota
	// KindSelect is a bare select statement.
	KindSelect
)

// Statement is a parsed statement. For KindInsert the Insert field
// holds the raw tokens exactly as typed; validation happens later.
type Statement struct {
	Kind   Kind
	Insert InsertArgs
}

// InsertArgs carries the three raw insert tokens. No constraint has
// been checked yet; see Validate.
type InsertArgs struct {
	ID       string
	Username string
	Email    string
}

// MetaKind discriminates meta-commands.
type MetaKind int

const (
	// MetaExit terminates the command loop.
	MetaExit MetaKind = iota
	// MetaBTree prints the leaf structure of the table.
	MetaBTree
	// MetaConstants prints the storage layout constants.
	MetaConstants
	// MetaUnknown is any other dot-command.
	MetaUnknown
)

// MetaCommand is a parsed dot-prefixed control directive. Name holds
// the raw command text, used in the unrecognized-command message.
type MetaCommand struct {
	Kind MetaKind
	Name string
}
