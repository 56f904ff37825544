package application

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"testing"

	"github.com/Prilkop/directorfile/internal/chunk"
	"github.com/Prilkop/directorfile/internal/director"
	"github.com/Prilkop/directorfile/internal/resource"
	"github.com/Prilkop/directorfile/internal/rifxfixture"
)

// nestedMovie builds a one-entry Director movie that will sit at absolute
// offset base in the enclosing file. Offsets inside a RIFX are absolute from
// the start of the file, so the imap's mmap position and every mmap entry
// position of the standalone fixture are shifted by base.
func nestedMovie(t *testing.T, base uint32) []byte {
	t.Helper()
	raw := rifxfixture.Archive("MV93", 0x79f, rifxfixture.Chunk("VWFI", []byte("nested-movie-bytes")))
	shift := func(off int) {
		binary.BigEndian.PutUint32(raw[off:off+4], binary.BigEndian.Uint32(raw[off:off+4])+base)
	}
	shift(24) // imap body field mmap_position
	n := int(binary.BigEndian.Uint32(raw[52:56])) // mmap body field length
	for i := 0; i < n; i++ {
		shift(68 + 20*i + 8) // entry i's position field
	}
	return raw
}

func xtraFileChunk(t *testing.T, plain []byte) []byte {
	t.Helper()

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(plain); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}

	var body bytes.Buffer
	body.WriteString("Xtra")
	body.WriteString("FILE")
	var u32 [4]byte
	body.Write(u32[:]) // headered size, unused
	binary.BigEndian.PutUint32(u32[:], 0x1c)
	body.Write(u32[:])
	body.Write(make([]byte, 8))
	binary.BigEndian.PutUint32(u32[:], uint32(len(plain)))
	body.Write(u32[:])
	body.Write(make([]byte, 4))
	binary.BigEndian.PutUint32(u32[:], uint32(compressed.Len()))
	body.Write(u32[:])
	body.Write(make([]byte, 4))
	body.Write(compressed.Bytes())

	return rifxfixture.Chunk("RIFF", body.Bytes())
}

// buildApplicationArchive lays out a complete Application archive: the
// imap/mmap bootstrap, a List/Dict/BadD directory trio, a nested Director
// movie "File" entry, and an Xtra "File" entry.
func buildApplicationArchive(t *testing.T) []byte {
	t.Helper()

	list := rifxfixture.Chunk("List", rifxfixture.ListBody([][2]uint32{{6, 0}, {7, 2}}))
	dict := rifxfixture.Chunk("Dict", rifxfixture.DictBody([]rifxfixture.DictPair{
		{Key: 0, Value: "movie.dir"},
		{Key: 1, Value: "xtra.x32"},
	}))
	badd := rifxfixture.Chunk("BadD", rifxfixture.DictBody(nil))
	// file1's body follows the RIFX header and type tag (12), the imap (24),
	// the mmap with 3+5 entries (8+24+20*8), List, Dict, BadD, and file1's
	// own chunk header (8).
	base := 12 + 24 + (8 + 24 + 20*8) + len(list) + len(dict) + len(badd) + 8
	file1 := rifxfixture.Chunk("File", nestedMovie(t, uint32(base)))
	file2 := rifxfixture.Chunk("File", xtraFileChunk(t, []byte("xtra payload bytes")))

	return rifxfixture.Archive("APPL", 0x79f, list, dict, badd, file1, file2)
}

func parseApplicationArchive(t *testing.T, raw []byte) *Archive {
	t.Helper()

	src := bytes.NewReader(raw)
	r, header, err := chunk.ReadHeader(src, 0, "RIFX", 0)
	if err != nil {
		t.Fatalf("ReadHeader(RIFX): %v", err)
	}
	typeTag, err := r.ReadTag()
	if err != nil {
		t.Fatalf("ReadTag: %v", err)
	}
	if typeTag != "APPL" {
		t.Fatalf("got inner tag %q, want APPL", typeTag)
	}

	p := &Parser{
		Director: director.Parser{Src: src, Order: r.Order(), RIFX: header, TypeTag: typeTag},
		ParseNested: func(position int64, hint uint32) (any, error) {
			nestedReader, nestedHeader, err := chunk.ReadHeader(src, position, "RIFX", hint)
			if err != nil {
				return nil, err
			}
			nestedTag, err := nestedReader.ReadTag()
			if err != nil {
				return nil, err
			}
			nestedParser := &director.Parser{Src: src, Order: nestedReader.Order(), RIFX: nestedHeader, TypeTag: nestedTag}
			return nestedParser.Parse(nestedReader)
		},
	}

	app, err := p.Parse(r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return app
}

func TestParseApplicationArchive(t *testing.T) {
	raw := buildApplicationArchive(t)
	app := parseApplicationArchive(t, raw)

	if len(app.Files) != 2 {
		t.Fatalf("got %d files, want 2", len(app.Files))
	}
	if _, ok := app.Movies["movie.dir"]; !ok {
		t.Fatalf("Movies missing %q: %+v", "movie.dir", app.Movies)
	}
	if _, ok := app.Xtras["xtra.x32"]; !ok {
		t.Fatalf("Xtras missing %q: %+v", "xtra.x32", app.Xtras)
	}

	movieRes := app.Movies["movie.dir"]
	nestedArchive, ok := movieRes.Body.(*director.Archive)
	if !ok {
		t.Fatalf("movie.dir body is %T, want *director.Archive", movieRes.Body)
	}
	if len(nestedArchive.Entries()) != 1 {
		t.Fatalf("nested archive has %d entries, want 1", len(nestedArchive.Entries()))
	}

	xtraRes := app.Xtras["xtra.x32"]
	xf, ok := xtraRes.Body.(*resource.XtraFile)
	if !ok {
		t.Fatalf("xtra.x32 body is %T, want *resource.XtraFile", xtraRes.Body)
	}
	if string(xf.Data) != "xtra payload bytes" {
		t.Fatalf("got %q, want %q", xf.Data, "xtra payload bytes")
	}
}

func TestMatchGlobsAcrossNamespaces(t *testing.T) {
	raw := buildApplicationArchive(t)
	app := parseApplicationArchive(t, raw)

	matches, err := app.Match("*.dir")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(matches) != 1 || matches[0] != "movie.dir" {
		t.Fatalf("got %v, want [movie.dir]", matches)
	}
}
