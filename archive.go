package directorfile

import (
	"io"

	"github.com/Prilkop/directorfile/internal/application"
	"github.com/Prilkop/directorfile/internal/director"
	"github.com/Prilkop/directorfile/internal/endian"
	"github.com/Prilkop/directorfile/internal/mmapfile"
	"github.com/Prilkop/directorfile/internal/rifx"
)

// Kind distinguishes the shape of a parsed RIFX container.
type Kind int

const (
	KindDirector Kind = iota
	KindApplication
	KindShockwave
)

func (k Kind) String() string {
	switch k {
	case KindDirector:
		return "director"
	case KindApplication:
		return "application"
	case KindShockwave:
		return "shockwave"
	default:
		return "unknown"
	}
}

// Archive is one parsed RIFX container: a Director movie/cast, an
// Application bundle, or a Shockwave-compressed movie/cast. Exactly one of
// Director or Application is populated, matching Kind.
type Archive struct {
	Kind       Kind
	Endianness endian.Order

	Director    *director.Archive
	Application *application.Archive

	closer io.Closer
}

// Close releases the archive's backing source, if Open supplied one. It is
// a no-op when the caller provided their own io.ReaderAt via OpenArchiveAt.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func fromDispatch(d *rifx.Archive, closer io.Closer) *Archive {
	a := &Archive{Endianness: d.Order, closer: closer}
	switch d.Kind {
	case rifx.KindApplication:
		a.Kind = KindApplication
		a.Application = d.Application
	case rifx.KindShockwave:
		a.Kind = KindShockwave
		a.Director = d.Director
	default:
		a.Kind = KindDirector
		a.Director = d.Director
	}
	return a
}

// OpenArchiveAt parses a RIFX/XFIR container at a known absolute offset —
// for an already-located anchor, or a nested archive a caller extracted by
// hand.
func OpenArchiveAt(src io.ReaderAt, offset int64) (*Archive, error) {
	d, err := rifx.Dispatch(src, offset, 0)
	if err != nil {
		return nil, err
	}
	return fromDispatch(d, nil), nil
}

// Open opens path, which may be a standalone archive or a projector
// executable with an embedded one, and parses its RIFX container. The file
// is memory-mapped via internal/mmapfile where the platform supports it;
// callers that already hold an io.ReaderAt should use NewProjector or
// OpenArchiveAt directly instead.
func Open(path string) (*Archive, error) {
	src, err := mmapfile.Open(path)
	if err != nil {
		return nil, err
	}

	p, err := NewProjector(src)
	if err != nil {
		src.Close()
		return nil, err
	}

	a, err := p.Application()
	if err != nil {
		src.Close()
		return nil, err
	}
	a.closer = src
	return a, nil
}
