// Package application implements the Application archive parser: the
// projector's APPL layout, where the fixed List/Dict/BadD directory trio
// assigns names and types to a trailing run of "File" entries, each itself
// a nested RIFX archive or a compressed Xtra.
package application

import (
	"fmt"
	"log/slog"

	"github.com/Prilkop/directorfile/internal/chunk"
	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/director"
	"github.com/Prilkop/directorfile/internal/endian"
	"github.com/Prilkop/directorfile/internal/resource"
)

// FileType is the type tag a List member assigns a File entry.
type FileType uint32

const (
	DirectorMovie FileType = 0
	DirectorCast  FileType = 1
	Xtra          FileType = 2
)

func (t FileType) String() string {
	switch t {
	case DirectorMovie:
		return "movie"
	case DirectorCast:
		return "cast"
	case Xtra:
		return "xtra"
	default:
		return fmt.Sprintf("FileType(%d)", uint32(t))
	}
}

// FileRecord correlates one projector-embedded file with its name, type,
// and resolved resource.
type FileRecord struct {
	Filename string
	Type     FileType
	Resource *resource.Resource
}

// Archive is a parsed Application archive.
type Archive struct {
	*director.Archive
	Files  []FileRecord
	Movies map[string]*resource.Resource
	Casts  map[string]*resource.Resource
	Xtras  map[string]*resource.Resource
}

// Match glob-matches pattern (doublestar syntax) against every filename
// across Movies, Casts, and Xtras, returning the matching names.
func (a *Archive) Match(pattern string) ([]string, error) {
	var names []string
	for _, group := range []map[string]*resource.Resource{a.Movies, a.Casts, a.Xtras} {
		for name := range group {
			names = append(names, name)
		}
	}
	return matchAll(pattern, names)
}

// resourceClasses is the static registry of non-"File" tags an Application
// archive resolves structurally, built once as a table literal rather than
// assembled by mutating shared state at import time.
var resourceClasses = map[string]func(*endian.Reader) (any, error){
	"List": func(r *endian.Reader) (any, error) { return resource.ParseList(r) },
	"Dict": func(r *endian.Reader) (any, error) { return resource.ParseDict(r) },
	"BadD": func(r *endian.Reader) (any, error) { return resource.ParseDict(r) },
}

// NestedRIFXParser parses whatever RIFX/XFIR archive sits at position
// (director or application) and returns its root value, to be stored as a
// Resource.Body. Supplied by internal/rifx, whose dispatch function closes
// over this package without this package importing rifx back.
type NestedRIFXParser func(position int64, hint uint32) (any, error)

// Parser drives one Application-archive parse on top of a director.Parser.
type Parser struct {
	Director    director.Parser
	ParseNested NestedRIFXParser
}

// Parse runs the parse. r must be positioned exactly as director.Parser.Parse
// expects.
func (p *Parser) Parse(r *endian.Reader) (*Archive, error) {
	base := p.Director
	base.Reconstruct = p.reconstruct
	dirArchive, err := base.Parse(r)
	if err != nil {
		return nil, err
	}

	entries := dirArchive.Entries()
	if len(entries) < 3 {
		return nil, fmt.Errorf("%w: Application archive has only %d entries after mmap/imap, need at least 3", direrr.ErrStructuralAssertion, len(entries))
	}
	if entries[0].Tag != "List" {
		return nil, fmt.Errorf("%w: entry 3 is %q, want \"List\"", direrr.ErrStructuralAssertion, entries[0].Tag)
	}
	if entries[1].Tag != "Dict" {
		return nil, fmt.Errorf("%w: entry 4 is %q, want \"Dict\"", direrr.ErrStructuralAssertion, entries[1].Tag)
	}
	if entries[2].Tag != "BadD" {
		return nil, fmt.Errorf("%w: entry 5 is %q, want \"BadD\"", direrr.ErrStructuralAssertion, entries[2].Tag)
	}

	listRes, err := dirArchive.Resolve(entries[0])
	if err != nil {
		return nil, err
	}
	list, ok := listRes.Body.(*resource.List)
	if !ok {
		return nil, fmt.Errorf("%w: entry 3 did not parse as a List", direrr.ErrStructuralAssertion)
	}

	dictRes, err := dirArchive.Resolve(entries[1])
	if err != nil {
		return nil, err
	}
	dict, ok := dictRes.Body.(*resource.Dict)
	if !ok {
		return nil, fmt.Errorf("%w: entry 4 did not parse as a Dict", direrr.ErrStructuralAssertion)
	}

	if _, err := dirArchive.Resolve(entries[2]); err != nil { // BadD, opaque
		return nil, err
	}

	files := make([]FileRecord, 0, len(list.Members))
	movies := make(map[string]*resource.Resource)
	casts := make(map[string]*resource.Resource)
	xtras := make(map[string]*resource.Resource)

	for i, member := range list.Members {
		fileEntry, err := dirArchive.EntryAt(int(member.EntryIndex))
		if err != nil {
			return nil, err
		}
		if fileEntry.Tag != "File" {
			return nil, fmt.Errorf("%w: List member %d references mmap entry %d tagged %q, want \"File\"", direrr.ErrStructuralAssertion, i, member.EntryIndex, fileEntry.Tag)
		}

		res, err := dirArchive.Resolve(fileEntry)
		if err != nil {
			return nil, err
		}

		name, ok := dict.Mapping[uint32(i)]
		if !ok {
			return nil, fmt.Errorf("%w: filename Dict has no entry for index %d", direrr.ErrStructuralAssertion, i)
		}

		ft := FileType(member.FileType)
		files = append(files, FileRecord{Filename: name, Type: ft, Resource: res})

		switch ft {
		case DirectorMovie:
			movies[name] = res
		case DirectorCast:
			casts[name] = res
		case Xtra:
			xtras[name] = res
		default:
			return nil, fmt.Errorf("%w: List member %d has unknown FileType %d", direrr.ErrStructuralAssertion, i, member.FileType)
		}
	}

	return &Archive{
		Archive: dirArchive,
		Files:   files,
		Movies:  movies,
		Casts:   casts,
		Xtras:   xtras,
	}, nil
}

// reconstruct is the Application archive's resource-class dispatch: "File"
// entries go through the header-peek probe; everything else is looked up
// in resourceClasses, and an unmatched tag is fatal.
func (p *Parser) reconstruct(a *director.Archive, entry resource.Entry) (*resource.Resource, error) {
	if entry.Tag == "File" {
		return p.reconstructFile(a, entry)
	}

	parse, ok := resourceClasses[entry.Tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", direrr.ErrUnknownResourceType, entry.Tag)
	}

	r := endian.New(a.SourceReaderAt(), a.Order)
	r.Jump(entry.Position + 8)
	body, err := parse(r)
	if err != nil {
		return nil, err
	}
	return &resource.Resource{Tag: entry.Tag, Position: entry.Position, Size: entry.Size, Body: body}, nil
}

// reconstructFile peeks the first header bytes of a "File" entry and
// selects between a nested RIFX archive and a compressed Xtra without ever
// relying on a failed parse as a signal.
func (p *Parser) reconstructFile(a *director.Archive, entry resource.Entry) (*resource.Resource, error) {
	bodyPosition := entry.Position + 8

	head := make([]byte, 12)
	n, _ := readAt(a.SourceReaderAt(), head, bodyPosition)
	head = head[:n]

	tag4 := ""
	if len(head) >= 4 {
		tag4 = string(head[:4])
	}

	switch tag4 {
	case "RIFX", "XFIR":
		body, err := p.ParseNested(bodyPosition, entry.Size)
		if err != nil {
			return nil, err
		}
		return &resource.Resource{Tag: entry.Tag, Position: entry.Position, Size: entry.Size, Body: body}, nil
	case "RIFF":
		r, h, err := chunk.ReadHeader(a.SourceReaderAt(), bodyPosition, "RIFF", entry.Size)
		if err != nil {
			return nil, err
		}
		body, err := resource.ParseXtraFile(r)
		chunk.Close(r, h)
		if err != nil {
			return nil, err
		}
		return &resource.Resource{Tag: entry.Tag, Position: entry.Position, Size: entry.Size, Body: body}, nil
	default:
		slog.Warn("unrecognized File header", "position", bodyPosition, "head", fmt.Sprintf("%x", head))
		return nil, fmt.Errorf("%w: %x", direrr.ErrUnknownFileHeader, head)
	}
}

func readAt(src interface {
	ReadAt(p []byte, off int64) (int, error)
}, p []byte, off int64) (int, error) {
	return src.ReadAt(p, off)
}
