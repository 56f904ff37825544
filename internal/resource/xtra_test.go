package resource

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
)

func compressedXtraBody(t *testing.T, plain []byte, declaredUncompressed uint32) []byte {
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
	binary.BigEndian.PutUint32(u32[:], 0) // headered size, unused
	body.Write(u32[:])
	binary.BigEndian.PutUint32(u32[:], 0x1c)
	body.Write(u32[:])
	body.Write(make([]byte, 8))
	binary.BigEndian.PutUint32(u32[:], declaredUncompressed)
	body.Write(u32[:])
	body.Write(make([]byte, 4))
	binary.BigEndian.PutUint32(u32[:], uint32(compressed.Len()))
	body.Write(u32[:])
	body.Write(make([]byte, 4))
	body.Write(compressed.Bytes())

	return body.Bytes()
}

func TestParseXtraFile(t *testing.T) {
	plain := []byte("this is the decompressed Xtra payload")
	body := compressedXtraBody(t, plain, uint32(len(plain)))
	r := endian.New(bytes.NewReader(body), endian.BigEndian)

	xf, err := ParseXtraFile(r)
	if err != nil {
		t.Fatalf("ParseXtraFile: %v", err)
	}
	if !bytes.Equal(xf.Data, plain) {
		t.Fatalf("got %q, want %q", xf.Data, plain)
	}
}

func TestParseXtraFileSizeMismatchIsFatal(t *testing.T) {
	plain := []byte("short")
	body := compressedXtraBody(t, plain, 999)
	r := endian.New(bytes.NewReader(body), endian.BigEndian)

	_, err := ParseXtraFile(r)
	if !errors.Is(err, direrr.ErrDecompressionFailed) {
		t.Fatalf("got %v, want direrr.ErrDecompressionFailed", err)
	}
}

func TestParseXtraFileWrongSubTag(t *testing.T) {
	var body bytes.Buffer
	body.WriteString("XXXX")
	body.WriteString("FILE")
	r := endian.New(bytes.NewReader(body.Bytes()), endian.BigEndian)

	_, err := ParseXtraFile(r)
	if !errors.Is(err, direrr.ErrUnexpectedTag) {
		t.Fatalf("got %v, want direrr.ErrUnexpectedTag", err)
	}
}
