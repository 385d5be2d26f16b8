// Length-prefixed token codec for journal records.
//
// Each argument inside a journal line is framed as <len>;<payload>; where
// len is the decimal byte length of the payload. The explicit length makes
// interior delimiter characters (and digits) in the payload harmless, so no
// escaping pass is ever needed. Decoding is a lazy cursor: callers pull one
// token at a time and stop at the exhaustion signal, without pre-scanning
// the line.
package scroll

import (
	"bytes"
	"strconv"
)

// delim separates the command tag, token lengths and token payloads inside
// a journal line. It may freely occur inside payloads.
const delim = ';'

// encodeToken appends the framed form of s to dst and returns the extended
// slice.
func encodeToken(dst []byte, s string) []byte {
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, delim)
	dst = append(dst, s...)
	dst = append(dst, delim)
	return dst
}

// tokens walks the argument region of a journal line. The zero position is
// the first byte after the tag header. Once exhausted it stays exhausted:
// a malformed token poisons the rest of the line.
type tokens struct {
	line []byte
	pos  int
	done bool
}

// next extracts the token at the cursor. It reports ok=false and marks the
// cursor exhausted when no delimiter remains, the length prefix is not
// purely numeric, or fewer than length+1 bytes (payload plus trailing
// delimiter) follow the length delimiter — a truncated final token is
// indistinguishable from a partial write and is dropped.
func (t *tokens) next() (string, bool) {
	if t.done || t.pos >= len(t.line) {
		t.done = true
		return "", false
	}

	rel := bytes.IndexByte(t.line[t.pos:], delim)
	if rel < 0 {
		t.done = true
		return "", false
	}
	cut := t.pos + rel

	// The prefix must be bare decimal digits: no sign, no spaces, nothing
	// strconv would forgive. Nine digits covers any length a line this
	// size can carry and keeps the accumulator from overflowing.
	digits := t.line[t.pos:cut]
	if len(digits) == 0 || len(digits) > 9 {
		t.done = true
		return "", false
	}
	length := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			t.done = true
			return "", false
		}
		length = length*10 + int(c-'0')
	}

	// Need the payload and its trailing delimiter.
	if len(t.line)-cut-1 <= length {
		t.done = true
		return "", false
	}

	value := string(t.line[cut+1 : cut+1+length])
	t.pos = cut + 1 + length + 1
	if t.pos >= len(t.line) {
		t.done = true
	}
	return value, true
}
