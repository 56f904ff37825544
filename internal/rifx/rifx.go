// Package rifx dispatches a RIFX/XFIR container to the archive parser that
// understands its inner sub-type tag: Application, Director, or the
// Shockwave variant. It never tries a parser and falls back on failure —
// the inner tag alone selects the parser, inspected before ever touching
// the body.
package rifx

import (
	"fmt"
	"io"

	"github.com/Prilkop/directorfile/internal/application"
	"github.com/Prilkop/directorfile/internal/chunk"
	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/director"
	"github.com/Prilkop/directorfile/internal/endian"
)

// Kind identifies which archive shape a RIFX container's inner tag selected.
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

// shockwaveTypes lists the compressed-movie/cast sub-type tags a Shockwave
// archive's inner tag may carry: the documented compressed counterparts of
// the plain Director MV/MC family.
var shockwaveTypes = map[string]struct{}{
	"FGDM": {},
	"FGDC": {},
}

// Archive is the discriminated result of dispatching one RIFX container:
// exactly one of Director or Application is populated, per Kind.
type Archive struct {
	Kind        Kind
	Order       endian.Order
	Director    *director.Archive
	Application *application.Archive
}

// Dispatch reads the RIFX header at position, reads the inner sub-type tag,
// and routes to the matching parser. size, if nonzero, bounds the container
// (used when parsing a nested "File" entry whose mmap size is already
// known); zero means trust the chunk's own declared size.
func Dispatch(src io.ReaderAt, position int64, size uint32) (*Archive, error) {
	r, header, err := chunk.ReadHeader(src, position, "RIFX", size)
	if err != nil {
		return nil, err
	}

	typeTag, err := r.ReadTag()
	if err != nil {
		return nil, err
	}

	switch {
	case typeTag == "APPL":
		appParser := &application.Parser{
			Director: director.Parser{
				Src:     src,
				Order:   r.Order(),
				RIFX:    header,
				TypeTag: typeTag,
			},
			ParseNested: func(nestedPosition int64, nestedHint uint32) (any, error) {
				nested, err := Dispatch(src, nestedPosition, nestedHint)
				if err != nil {
					return nil, err
				}
				return nested, nil
			},
		}
		app, err := appParser.Parse(r)
		if err != nil {
			return nil, err
		}
		return &Archive{Kind: KindApplication, Order: r.Order(), Application: app}, nil

	case isDirectorType(typeTag):
		dirParser := &director.Parser{Src: src, Order: r.Order(), RIFX: header, TypeTag: typeTag}
		arch, err := dirParser.Parse(r)
		if err != nil {
			return nil, err
		}
		return &Archive{Kind: KindDirector, Order: r.Order(), Director: arch}, nil

	case isShockwaveType(typeTag):
		dirParser := &director.Parser{Src: src, Order: r.Order(), RIFX: header, TypeTag: typeTag}
		arch, err := dirParser.Parse(r)
		if err != nil {
			return nil, err
		}
		return &Archive{Kind: KindShockwave, Order: r.Order(), Director: arch}, nil

	default:
		return nil, fmt.Errorf("%w: RIFX inner tag %q matches no known archive kind", direrr.ErrUnknownResourceType, typeTag)
	}
}

func isDirectorType(tag string) bool {
	_, ok := director.Types[tag]
	return ok
}

func isShockwaveType(tag string) bool {
	_, ok := shockwaveTypes[tag]
	return ok
}
