package endian

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Prilkop/directorfile/internal/direrr"
)

func TestReadTagBigEndian(t *testing.T) {
	src := bytes.NewReader([]byte("imap"))
	r := New(src, BigEndian)
	tag, err := r.ReadTag()
	if err != nil {
		t.Fatalf("ReadTag: %v", err)
	}
	if tag != "imap" {
		t.Fatalf("got %q, want %q", tag, "imap")
	}
	if r.Tell() != 4 {
		t.Fatalf("cursor at %d, want 4", r.Tell())
	}
}

func TestReadTagLittleEndianReversesBytes(t *testing.T) {
	src := bytes.NewReader([]byte("pami")) // "imap" reversed
	r := New(src, LittleEndian)
	tag, err := r.ReadTag()
	if err != nil {
		t.Fatalf("ReadTag: %v", err)
	}
	if tag != "imap" {
		t.Fatalf("got %q, want %q", tag, "imap")
	}
}

func TestReadU32RoundTrip(t *testing.T) {
	src := bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03})
	r := New(src, BigEndian)
	v, err := r.ReadU32()
	if err != nil {
		t.Fatalf("ReadU32: %v", err)
	}
	if v != 0x00010203 {
		t.Fatalf("got 0x%x, want 0x00010203", v)
	}
}

func TestReadBytesShortReadIsShortReadError(t *testing.T) {
	src := bytes.NewReader([]byte{1, 2})
	r := New(src, BigEndian)
	if _, err := r.ReadBytes(4); !errors.Is(err, direrr.ErrShortRead) {
		t.Fatalf("got %v, want direrr.ErrShortRead", err)
	}
}

func TestReadStringLengthPrefixed(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x00, 0x00, 0x05})
	buf.WriteString("hello")
	r := New(bytes.NewReader(buf.Bytes()), BigEndian)
	s, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != "hello" {
		t.Fatalf("got %q, want %q", s, "hello")
	}
}

func TestJumpAndSkip(t *testing.T) {
	src := bytes.NewReader(make([]byte, 16))
	r := New(src, BigEndian)
	r.Jump(10)
	if r.Tell() != 10 {
		t.Fatalf("Jump: got %d, want 10", r.Tell())
	}
	r.Skip(-3)
	if r.Tell() != 7 {
		t.Fatalf("Skip: got %d, want 7", r.Tell())
	}
}
