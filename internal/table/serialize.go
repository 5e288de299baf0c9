package table

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// SerializeRow packs a row into dst using the fixed cell layout:
// little-endian uint32 id, then the username and email bytes, each
// zero-padded to its column width. dst must be exactly RowSize bytes.
func SerializeRow(r Row, dst []byte) error {
	if len(dst) != RowSize {
		return fmt.Errorf("serialize row: dst is %d bytes, want %d", len(dst), RowSize)
	}
	for i := range dst {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint32(dst[IDOffset:IDOffset+IDSize], r.ID)
	copy(dst[UsernameOffset:UsernameOffset+UsernameSize], r.Username.String())
	copy(dst[EmailOffset:EmailOffset+EmailSize], r.Email.String())
	return nil
}

// DeserializeRow unpacks a row from src. src must be exactly RowSize
// bytes. Trailing zero padding is stripped from the string columns.
func DeserializeRow(src []byte) (Row, error) {
	if len(src) != RowSize {
		return Row{}, fmt.Errorf("deserialize row: src is %d bytes, want %d", len(src), RowSize)
	}
	id := binary.LittleEndian.Uint32(src[IDOffset : IDOffset+IDSize])

	username := strings.TrimRight(string(src[UsernameOffset:UsernameOffset+UsernameSize]), "\x00")
	email := strings.TrimRight(string(src[EmailOffset:EmailOffset+EmailSize]), "\x00")

	// The stored bytes cannot exceed the column widths, so the
	// constructors cannot fail here.
	u, err := NewUsername(username)
	if err != nil {
		return Row{}, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return Row{}, err
	}
	return Row{ID: id, Username: u, Email: e}, nil
}
