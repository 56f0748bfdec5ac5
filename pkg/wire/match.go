package wire

import "bytes"

// MatchFunc decides whether the bytes accumulated so far satisfy a read
// request. When they do, pos is the position one past the matched prefix.
// A MatchFunc must depend only on the buffer contents, never on how many
// reads were needed to fill it.
type MatchFunc func(buf []byte) (pos int, ok bool)

// MatchCount matches once the buffer holds at least n bytes.
func MatchCount(n int) MatchFunc {
	return func(buf []byte) (int, bool) {
		if len(buf) < n {
			return 0, false
		}
		return n, true
	}
}

// MatchDelim matches at the first occurrence of delim. The reported
// position is just past the delimiter.
func MatchDelim(delim byte) MatchFunc {
	return func(buf []byte) (int, bool) {
		i := bytes.IndexByte(buf, delim)
		if i < 0 {
			return 0, false
		}
		return i + 1, true
	}
}
