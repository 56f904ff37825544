// Package chunk implements the resource base lifecycle shared by every
// tagged chunk in a RIFX container: seek to position, determine
// endianness from the tag, read the declared size, let the caller parse the
// body, then restore the cursor to position+8+size regardless of how far the
// body parse actually read. It is a free function rather than a base-class
// method, since nothing here needs virtual dispatch.
package chunk

import (
	"fmt"
	"io"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
)

// Header describes a chunk's fixed 8-byte prologue plus where it sits.
type Header struct {
	Tag      string
	Position int64
	Size     uint32
}

// ReadHeader seeks to position, reads the 4-byte tag and compares it against
// canonicalTag (exact match selects big-endian, reversed match selects
// little-endian, anything else is direrr.ErrUnexpectedTag), then reads the
// declared u32 size. If hint is nonzero the declared size must not exceed
// it (the caller is reading a sized sub-range, e.g. an mmap entry); a hint
// of zero means the declared size is adopted as authoritative.
//
// The returned Reader's cursor sits at the start of the chunk body.
func ReadHeader(src io.ReaderAt, position int64, canonicalTag string, hint uint32) (*endian.Reader, Header, error) {
	tag, err := rawTag(src, position)
	if err != nil {
		return nil, Header{}, err
	}

	var order endian.Order
	switch {
	case tag == canonicalTag:
		order = endian.BigEndian
	case tag == reverse(canonicalTag):
		order = endian.LittleEndian
	default:
		return nil, Header{}, fmt.Errorf("%w: expected %q, got %q at 0x%x", direrr.ErrUnexpectedTag, canonicalTag, tag, position)
	}

	r := endian.New(src, order)
	r.Jump(position + 4)
	size, err := r.ReadU32()
	if err != nil {
		return nil, Header{}, err
	}
	if hint != 0 && size > hint {
		return nil, Header{}, fmt.Errorf("%w: chunk at 0x%x declares size %d, exceeds outer hint %d", direrr.ErrStructuralAssertion, position, size, hint)
	}

	h := Header{Tag: canonicalTag, Position: position, Size: size}
	return r, h, nil
}

// Close repositions r to the end of the chunk (h.Position + 8 + h.Size),
// compensating for a body parser that stopped reading early. Callers call
// this right after the body parse and before checking its error, so cursor
// restoration happens even when the body parse itself returns an error.
func Close(r *endian.Reader, h Header) {
	r.Jump(h.Position + 8 + int64(h.Size))
}

// rawTag reads the 4 bytes at position without committing to a byte order;
// a FourCC tag is ASCII in both orderings, so plain bytes suffice for the
// comparison against canonicalTag and its reverse.
func rawTag(src io.ReaderAt, position int64) (string, error) {
	var buf [4]byte
	n, err := src.ReadAt(buf[:], position)
	if n < len(buf) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("%w: reading tag at 0x%x: %v", direrr.ErrShortRead, position, err)
	}
	return string(buf[:]), nil
}

func reverse(tag string) string {
	b := []byte(tag)
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	return string(b)
}
