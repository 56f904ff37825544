package rifx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
	"github.com/Prilkop/directorfile/internal/rifxfixture"
)

func TestDispatchDirector(t *testing.T) {
	raw := rifxfixture.Archive("MV93", 0x79f, rifxfixture.Chunk("VWFI", []byte("payload")))
	src := bytes.NewReader(raw)

	a, err := Dispatch(src, 0, 0)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if a.Kind != KindDirector {
		t.Fatalf("got kind %v, want KindDirector", a.Kind)
	}
	if a.Director == nil {
		t.Fatal("Director is nil")
	}
}

func TestDispatchUnknownInnerTag(t *testing.T) {
	raw := rifxfixture.Archive("ZZZZ", 0x79f)
	src := bytes.NewReader(raw)

	_, err := Dispatch(src, 0, 0)
	if !errors.Is(err, direrr.ErrUnknownResourceType) {
		t.Fatalf("got %v, want direrr.ErrUnknownResourceType", err)
	}
}

func TestDispatchLittleEndianContainer(t *testing.T) {
	raw := rifxfixture.ArchiveLE("MV93", 0x79f, rifxfixture.ChunkLE("VWFI", []byte("payload")))
	src := bytes.NewReader(raw)

	a, err := Dispatch(src, 0, 0)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if a.Kind != KindDirector {
		t.Fatalf("got kind %v, want KindDirector", a.Kind)
	}
	if a.Order != endian.LittleEndian {
		t.Fatalf("got order %v, want LittleEndian", a.Order)
	}
	if a.Director.IMap.DirectorVersion != 0x79f {
		t.Fatalf("got version 0x%x, want 0x79f", a.Director.IMap.DirectorVersion)
	}
}
