package testutil

import "strings"

// Script joins input lines into the newline-terminated stream a
// session reads. The trailing newline matters: without it the last
// line still arrives (bufio tolerates a missing final newline), but
// scripts written through this helper match what a piped file or a
// terminal would actually deliver.
func Script(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
