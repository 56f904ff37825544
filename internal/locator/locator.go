// Package locator finds the embedded Application archive inside a
// projector executable: a fixed big-endian anchor at byte 0,
// or a little-endian anchor pointed to by the file's last 4 bytes.
package locator

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Prilkop/directorfile/internal/direrr"
)

// Locate returns the absolute byte offset of the RIFX container embedded in
// a projector, given its total size (so the trailing-anchor convention can
// seek to size-4 without the caller tracking it separately).
func Locate(src io.ReaderAt, size int64) (int64, error) {
	var head [8]byte
	if _, err := src.ReadAt(head[:], 0); err != nil {
		return 0, fmt.Errorf("%w: reading projector header: %v", direrr.ErrShortRead, err)
	}
	if isPJTag(head[:4]) {
		return int64(binary.BigEndian.Uint32(head[4:8])), nil
	}

	if size < 4 {
		return 0, fmt.Errorf("%w: projector is too short to carry a trailing anchor", direrr.ErrProjectorAnchorNotFound)
	}
	var tail [4]byte
	if _, err := src.ReadAt(tail[:], size-4); err != nil {
		return 0, fmt.Errorf("%w: reading trailing anchor offset: %v", direrr.ErrShortRead, err)
	}
	pjPosition := int64(binary.LittleEndian.Uint32(tail[:]))

	var anchor [8]byte
	if _, err := src.ReadAt(anchor[:], pjPosition); err != nil {
		return 0, fmt.Errorf("%w: reading anchor at 0x%x: %v", direrr.ErrShortRead, pjPosition, err)
	}
	if !isPJTag(anchor[:4]) && !isJPTag(anchor[:4]) {
		return 0, fmt.Errorf("%w: no PJ section at 0x%x", direrr.ErrProjectorAnchorNotFound, pjPosition)
	}
	return int64(binary.LittleEndian.Uint32(anchor[4:8])), nil
}

// isPJTag matches "PJ\d\d".
func isPJTag(b []byte) bool {
	return len(b) == 4 && b[0] == 'P' && b[1] == 'J' && isDigit(b[2]) && isDigit(b[3])
}

// isJPTag matches "\d\dJP".
func isJPTag(b []byte) bool {
	return len(b) == 4 && isDigit(b[0]) && isDigit(b[1]) && b[2] == 'J' && b[3] == 'P'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
