package statement

import (
	"math"

	"github.com/roach88/linestore/internal/table"
)

// Validate checks an insert's field constraints in order, stopping at
// the first failure: id integer parse and non-negativity, then
// username length, then email length. On success it returns the
// constructed Row, the only path by which rows reach the table.
//
// Failures are *ValidationError values whose messages are the exact
// output lines: "ID must be positive." and "String is too long.".
// Zero is a valid id; the rule rejects only parsed negatives.
func Validate(args InsertArgs) (table.Row, error) {
	id := atoi(args.ID)
	if id < 0 {
		return table.Row{}, errNegativeID
	}

	username, err := table.NewUsername(args.Username)
	if err != nil {
		return table.Row{}, errStringTooLong
	}

	email, err := table.NewEmail(args.Email)
	if err != nil {
		return table.Row{}, errStringTooLong
	}

	return table.Row{ID: uint32(id), Username: username, Email: email}, nil
}

// atoi parses the id token with C atoi semantics: an optional sign,
// then leading digits; trailing junk is ignored and a token with no
// digits yields zero. Values past the id column's range saturate
// instead of wrapping.
func atoi(s string) int64 {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	var n int64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n > math.MaxUint32 {
			continue
		}
		n = n*10 + int64(s[i]-'0')
	}
	if n > math.MaxUint32 {
		n = math.MaxUint32
	}
	if neg {
		n = -n
	}
	return n
}
