package resource

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
	"github.com/Prilkop/directorfile/internal/rifxfixture"
)

func TestParseIMap(t *testing.T) {
	body := rifxfixture.IMapBody(36, 0x79f)
	r := endian.New(bytes.NewReader(body), endian.BigEndian)

	im, err := ParseIMap(r)
	if err != nil {
		t.Fatalf("ParseIMap: %v", err)
	}
	if im.MMapPosition != 36 {
		t.Fatalf("got mmap position %d, want 36", im.MMapPosition)
	}
	if im.DirectorVersion != 0x79f {
		t.Fatalf("got version 0x%x, want 0x79f", im.DirectorVersion)
	}
	if DirectorVersionName(im.DirectorVersion) != "12" {
		t.Fatalf("got version name %q, want %q", DirectorVersionName(im.DirectorVersion), "12")
	}
}

func TestParseIMapUnknownVersionIsFatal(t *testing.T) {
	body := rifxfixture.IMapBody(36, 0xdead)
	r := endian.New(bytes.NewReader(body), endian.BigEndian)

	_, err := ParseIMap(r)
	if !errors.Is(err, direrr.ErrUnknownDirectorVersion) {
		t.Fatalf("got %v, want direrr.ErrUnknownDirectorVersion", err)
	}
}
