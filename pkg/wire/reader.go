package wire

import "io"

const readChunkSize = 4096

// Reader accumulates bytes from an underlying stream and hands them out in
// prefixes delimited by match conditions. Bytes past a match stay buffered
// for the next call. Not safe for concurrent use.
type Reader struct {
	src     io.Reader
	buf     []byte
	scratch []byte
	err     error
}

// NewReader wraps src.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:     src,
		scratch: make([]byte, readChunkSize),
	}
}

// ReadUntil blocks until match reports a position inside the accumulated
// buffer, then returns exactly that prefix. A read error is surfaced only
// after the buffered bytes can no longer satisfy the condition, so a final
// chunk delivered together with io.EOF is not lost.
func (r *Reader) ReadUntil(match MatchFunc) ([]byte, error) {
	for {
		if pos, ok := match(r.buf); ok {
			out := make([]byte, pos)
			copy(out, r.buf[:pos])
			r.buf = append(r.buf[:0], r.buf[pos:]...)
			return out, nil
		}
		if r.err != nil {
			return nil, r.err
		}
		n, err := r.src.Read(r.scratch)
		if n > 0 {
			r.buf = append(r.buf, r.scratch[:n]...)
		}
		if err != nil {
			r.err = err
		}
	}
}

// Buffered reports how many accumulated bytes are waiting for a match.
func (r *Reader) Buffered() int {
	return len(r.buf)
}
