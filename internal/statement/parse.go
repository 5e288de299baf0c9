package statement

import "strings"

// insertArgCount is the exact number of arguments insert takes.
const insertArgCount = 3

// Parse turns one statement line into a Statement. Keywords are
// case-sensitive and must lead the line; tokens are split on
// whitespace with no quoting or escaping.
//
// Failures are *UnrecognizedError (unknown leading keyword, reported
// with the full line) or *SyntaxError (insert with an argument count
// other than three).
func Parse(line string) (Statement, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Statement{}, &UnrecognizedError{Line: line}
	}

	switch fields[0] {
	case "insert":
		if len(fields)-1 != insertArgCount {
			return Statement{}, &SyntaxError{}
		}
		return Statement{
			Kind: KindInsert,
			Insert: InsertArgs{
				ID:       fields[1],
				Username: fields[2],
				Email:    fields[3],
			},
		}, nil
	case "select":
		// select takes no arguments; anything trailing makes the
		// whole line unrecognized.
		if len(fields) != 1 {
			return Statement{}, &UnrecognizedError{Line: line}
		}
		return Statement{Kind: KindSelect}, nil
	}

	return Statement{}, &UnrecognizedError{Line: line}
}

// ParseMeta turns one dot-prefixed line into a MetaCommand. The match
// is exact: ".exit " is not ".exit". Unknown commands parse to
// MetaUnknown carrying the raw text; they are non-fatal.
func ParseMeta(line string) MetaCommand {
	switch line {
	case ".exit":
		return MetaCommand{Kind: MetaExit, Name: line}
	case ".btree":
		return MetaCommand{Kind: MetaBTree, Name: line}
	case ".constants":
		return MetaCommand{Kind: MetaConstants, Name: line}
	}
	return MetaCommand{Kind: MetaUnknown, Name: line}
}
