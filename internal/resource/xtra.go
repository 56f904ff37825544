package resource

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
)

// ParseXtraFile reads a RIFF-Xtra compressed blob: "Xtra"/"FILE" sub-tags,
// a fixed header, then a zlib stream of compressed_size bytes that must
// inflate to exactly uncompressed_size.
func ParseXtraFile(r *endian.Reader) (*XtraFile, error) {
	sub, err := r.ReadTag()
	if err != nil {
		return nil, err
	}
	if sub != "Xtra" {
		return nil, fmt.Errorf("%w: RIFF sub-type is %q, want \"Xtra\"", direrr.ErrUnexpectedTag, sub)
	}

	fileTag, err := r.ReadTag()
	if err != nil {
		return nil, err
	}
	if fileTag != "FILE" {
		return nil, fmt.Errorf("%w: expected \"FILE\" chunk, got %q", direrr.ErrUnexpectedTag, fileTag)
	}

	if _, err := r.ReadU32(); err != nil { // headered size, unused
		return nil, err
	}
	headerSize, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if headerSize != 0x1c {
		return nil, fmt.Errorf("%w: Xtra FILE header_size is 0x%x, want 0x1c", direrr.ErrStructuralAssertion, headerSize)
	}

	r.Skip(8)
	uncompressedSize, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	r.Skip(4)
	compressedSize, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	r.Skip(4)

	compressed, err := r.ReadBytes(int(compressedSize))
	if err != nil {
		return nil, err
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", direrr.ErrDecompressionFailed, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", direrr.ErrDecompressionFailed, err)
	}
	if uint32(len(data)) != uncompressedSize {
		return nil, fmt.Errorf("%w: Xtra decompressed to %d bytes, declared %d", direrr.ErrDecompressionFailed, len(data), uncompressedSize)
	}

	return &XtraFile{Data: data, UncompressedSize: uncompressedSize}, nil
}
