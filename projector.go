package directorfile

import (
	"fmt"
	"io"
	"os"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/locator"
	"github.com/Prilkop/directorfile/internal/rifx"
)

// Projector wraps a projector executable (or a standalone archive, which
// has no PJ wrapper and is simply an archive at offset 0) and locates its
// embedded Application archive without parsing it.
type Projector struct {
	src    io.ReaderAt
	offset int64
}

// NewProjector locates src's embedded archive using the dual-endian PJ scan,
// or offset 0 if src already begins with a bare RIFX/XFIR tag.
func NewProjector(src io.ReaderAt) (*Projector, error) {
	var head [4]byte
	if _, err := src.ReadAt(head[:], 0); err != nil {
		return nil, fmt.Errorf("%w: reading first 4 bytes: %v", direrr.ErrShortRead, err)
	}
	if tag := string(head[:]); tag == "RIFX" || tag == "XFIR" {
		return &Projector{src: src, offset: 0}, nil
	}

	size, ok := sourceSize(src)
	if !ok {
		return nil, fmt.Errorf("%w: source does not begin with RIFX/XFIR and its size cannot be determined for a trailing anchor scan", direrr.ErrProjectorAnchorNotFound)
	}

	offset, err := locator.Locate(src, size)
	if err != nil {
		return nil, err
	}
	return &Projector{src: src, offset: offset}, nil
}

// Offset returns the located archive's absolute byte offset.
func (p *Projector) Offset() int64 {
	return p.offset
}

// Application parses the projector's embedded archive.
func (p *Projector) Application() (*Archive, error) {
	d, err := rifx.Dispatch(p.src, p.offset, 0)
	if err != nil {
		return nil, err
	}
	return fromDispatch(d, nil), nil
}

// Close releases the projector's source when it is an io.Closer (as
// Open's mmapfile-backed source is); otherwise it is a no-op.
func (p *Projector) Close() error {
	if c, ok := p.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// sourceSize finds a ReaderAt's total length, needed to seek to its final 4
// bytes for the trailing-anchor scan convention.
func sourceSize(src io.ReaderAt) (int64, bool) {
	if s, ok := src.(interface{ Size() int64 }); ok {
		return s.Size(), true
	}
	if f, ok := src.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return 0, false
		}
		return info.Size(), true
	}
	return 0, false
}
