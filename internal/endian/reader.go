// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package endian implements a positioned binary cursor over an io.ReaderAt,
// parameterized by byte order at construction. A RIFX container fixes its
// byte order once (at the outer "RIFX"/"XFIR" tag) and uses it for every
// integer inside, so a single reader type avoids a per-field branch at every
// call site.
package endian

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Prilkop/directorfile/internal/direrr"
)

// Order selects the byte order a Reader decodes integers with.
type Order = binary.ByteOrder

var (
	BigEndian    Order = binary.BigEndian
	LittleEndian Order = binary.LittleEndian
)

// Reader is a random-access cursor over src, fixed to one byte order for its
// lifetime. It never blocks on anything but src.ReadAt.
type Reader struct {
	src   io.ReaderAt
	order Order
	pos   int64
}

// New returns a Reader over src starting at position 0.
func New(src io.ReaderAt, order Order) *Reader {
	return &Reader{src: src, order: order}
}

// Order reports the byte order this Reader was constructed with.
func (r *Reader) Order() Order { return r.order }

// Jump seeks to an absolute offset.
func (r *Reader) Jump(offset int64) { r.pos = offset }

// Skip advances the cursor by n bytes (n may be negative).
func (r *Reader) Skip(n int64) { r.pos += n }

// Tell returns the current absolute offset.
func (r *Reader) Tell() int64 { return r.pos }

// ReadBytes reads exactly n raw bytes, unaffected by byte order, and
// advances the cursor. A short read is a fatal direrr.ErrShortRead.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := r.src.ReadAt(buf, r.pos)
	r.pos += int64(got)
	if got < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: wanted %d bytes at 0x%x, got %d: %v", direrr.ErrShortRead, n, r.pos-int64(got), got, err)
	}
	return buf, nil
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *Reader) ReadI16() (int16, error) {
	u, err := r.ReadU16()
	return int16(u), err
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func (r *Reader) ReadI32() (int32, error) {
	u, err := r.ReadU32()
	return int32(u), err
}

// ReadTag reads a 4-byte FourCC. Under little-endian framing the on-disk
// bytes are stored reversed, so the result is reversed back before decoding
// as ASCII, meaning callers always see the canonical big-endian spelling.
func (r *Reader) ReadTag() (string, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return "", err
	}
	if r.order == LittleEndian {
		b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	}
	for _, c := range b {
		if c > 0x7f {
			return "", fmt.Errorf("%w: tag %q is not ASCII", direrr.ErrStructuralAssertion, b)
		}
	}
	return string(b), nil
}

// ReadString reads a u32 length prefix followed by that many ASCII bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
