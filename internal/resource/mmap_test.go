package resource

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
	"github.com/Prilkop/directorfile/internal/rifxfixture"
)

func TestParseMMap(t *testing.T) {
	entries := [][]byte{
		rifxfixture.MMapEntry("RIFX", 156, 0),
		rifxfixture.MMapEntry("imap", 16, 12),
		rifxfixture.MMapEntry("mmap", 104, 36),
		rifxfixture.MMapEntry("VWFI", 8, 148),
	}
	body := rifxfixture.MMapBody(-1, -1, -1, entries...)
	r := endian.New(bytes.NewReader(body), endian.BigEndian)

	m, err := ParseMMap(r)
	if err != nil {
		t.Fatalf("ParseMMap: %v", err)
	}
	if len(m.Entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(m.Entries))
	}
	if m.Entries[0].Tag != "RIFX" || m.Entries[1].Tag != "imap" || m.Entries[2].Tag != "mmap" {
		t.Fatalf("unexpected fixed prologue: %+v", m.Entries[:3])
	}
	if m.Entries[3].Tag != "VWFI" || m.Entries[3].Position != 148 {
		t.Fatalf("unexpected entry 3: %+v", m.Entries[3])
	}
	if m.JunkListIndex1 != -1 || m.JunkListIndex2 != -1 || m.FreeListIndex != -1 {
		t.Fatalf("expected all list indices -1, got %d %d %d", m.JunkListIndex1, m.JunkListIndex2, m.FreeListIndex)
	}
}

func TestParseMMapJunkIndexOutOfRange(t *testing.T) {
	entries := [][]byte{
		rifxfixture.MMapEntry("RIFX", 156, 0),
		rifxfixture.MMapEntry("imap", 16, 12),
		rifxfixture.MMapEntry("mmap", 104, 36),
	}
	body := rifxfixture.MMapBody(99, -1, -1, entries...)
	r := endian.New(bytes.NewReader(body), endian.BigEndian)

	_, err := ParseMMap(r)
	if !errors.Is(err, direrr.ErrStructuralAssertion) {
		t.Fatalf("got %v, want direrr.ErrStructuralAssertion", err)
	}
}

func TestParseMMapJunkIndexWrongTag(t *testing.T) {
	entries := [][]byte{
		rifxfixture.MMapEntry("RIFX", 156, 0),
		rifxfixture.MMapEntry("imap", 16, 12),
		rifxfixture.MMapEntry("mmap", 104, 36),
	}
	body := rifxfixture.MMapBody(0, -1, -1, entries...) // index 0 is "RIFX", not "junk"
	r := endian.New(bytes.NewReader(body), endian.BigEndian)

	_, err := ParseMMap(r)
	if !errors.Is(err, direrr.ErrStructuralAssertion) {
		t.Fatalf("got %v, want direrr.ErrStructuralAssertion", err)
	}
}
