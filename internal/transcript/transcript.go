package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Entry is one processed input line and the exact output block it
// produced. Seq comes from the session's logical clock; output lines
// are stored without trailing newlines.
type Entry struct {
	Seq    int64    `json:"seq"`
	Input  string   `json:"input"`
	Output []string `json:"output"`
}

// Transcript is the full record of one interpreter session.
type Transcript struct {
	Session string  `json:"session"`
	Entries []Entry `json:"entries"`
}

// Append records one processed line. A nil output block (a line that
// printed nothing, like .exit) is stored as an empty slice so the
// canonical form round-trips exactly.
func (t *Transcript) Append(seq int64, input string, output []string) {
	if output == nil {
		output = []string{}
	}
	t.Entries = append(t.Entries, Entry{Seq: seq, Input: input, Output: output})
}

// Lines flattens the transcript's output blocks into the stream the
// session wrote to stdout, one element per printed line.
func (t *Transcript) Lines() []string {
	var lines []string
	for _, e := range t.Entries {
		lines = append(lines, e.Output...)
	}
	return lines
}

// MarshalCanonical serializes the transcript to canonical JSON:
// object keys in sorted order, no HTML escaping, and NFC-normalized
// strings. The encoding is byte-stable, which is what makes golden
// file comparison and replay diffing exact.
func (t *Transcript) MarshalCanonical() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	// Keys written in sorted order: entries, session.
	buf.WriteString(`"entries":[`)
	for i, e := range t.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalEntry(&buf, e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	buf.WriteString(`],"session":`)
	s, err := marshalString(t.Session)
	if err != nil {
		return nil, err
	}
	buf.Write(s)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalEntry(buf *bytes.Buffer, e Entry) error {
	// Keys in sorted order: input, output, seq.
	buf.WriteString(`{"input":`)
	in, err := marshalString(e.Input)
	if err != nil {
		return err
	}
	buf.Write(in)
	buf.WriteString(`,"output":[`)
	for i, line := range e.Output {
		if i > 0 {
			buf.WriteByte(',')
		}
		out, err := marshalString(line)
		if err != nil {
			return err
		}
		buf.Write(out)
	}
	fmt.Fprintf(buf, `],"seq":%d}`, e.Seq)
	return nil
}

// marshalString produces a canonical JSON string: NFC normalized at
// the serialization boundary, with HTML escaping disabled so < > &
// pass through literally.
func marshalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder appends a newline; strip it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

// Unmarshal parses the canonical form (plain JSON) back into a
// Transcript. Used by replay when reading recorded sessions.
func Unmarshal(data []byte) (*Transcript, error) {
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return &t, nil
}
