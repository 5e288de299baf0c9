package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsValidInsert(t *testing.T) {
	row, err := Validate(InsertArgs{ID: "1", Username: "user1", Email: "person1@example.com"})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), row.ID)
	assert.Equal(t, "(1, user1, person1@example.com)", row.String())
}

func TestValidate_ZeroIDIsValid(t *testing.T) {
	row, err := Validate(InsertArgs{ID: "0", Username: "user", Email: "email@example.com"})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), row.ID)
}

func TestValidate_NegativeID(t *testing.T) {
	_, err := Validate(InsertArgs{ID: "-1", Username: "user", Email: "email@example.com"})
	require.Error(t, err)
	assert.Equal(t, "ID must be positive.", err.Error())
}

func TestValidate_UsernameBounds(t *testing.T) {
	// Exactly 32 bytes passes.
	_, err := Validate(InsertArgs{
		ID:       "1",
		Username: strings.Repeat("a", 32),
		Email:    "email@example.com",
	})
	assert.NoError(t, err)

	// 33 bytes fails.
	_, err = Validate(InsertArgs{
		ID:       "1",
		Username: strings.Repeat("a", 33),
		Email:    "email@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, "String is too long.", err.Error())
}

func TestValidate_EmailBounds(t *testing.T) {
	_, err := Validate(InsertArgs{
		ID:       "1",
		Username: "user",
		Email:    strings.Repeat("a", 255),
	})
	assert.NoError(t, err)

	_, err = Validate(InsertArgs{
		ID:       "1",
		Username: "user",
		Email:    strings.Repeat("a", 256),
	})
	require.Error(t, err)
	assert.Equal(t, "String is too long.", err.Error())
}

func TestValidate_ChecksIDBeforeLengths(t *testing.T) {
	// Both the id and the username are invalid; the id failure wins.
	_, err := Validate(InsertArgs{
		ID:       "-1",
		Username: strings.Repeat("a", 33),
		Email:    "email@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, "ID must be positive.", err.Error())
}

func TestValidate_ChecksUsernameBeforeEmail(t *testing.T) {
	_, err := Validate(InsertArgs{
		ID:       "1",
		Username: strings.Repeat("a", 33),
		Email:    strings.Repeat("a", 256),
	})
	require.Error(t, err)
	assert.Equal(t, "String is too long.", err.Error())
}

func TestAtoi(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"42", 42},
		{"-7", -7},
		{"+3", 3},
		{"12abc", 12},
		{"abc", 0},
		{"-", 0},
		{"", 0},
		{"4294967295", 4294967295},
		{"99999999999999999999", 4294967295},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, atoi(tt.in), "atoi(%q)", tt.in)
	}
}

func TestValidate_NonNumericIDParsesAsZero(t *testing.T) {
	// atoi semantics: no digits means zero, which is a valid id.
	row, err := Validate(InsertArgs{ID: "abc", Username: "user", Email: "e@x"})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), row.ID)
}
