// Package director implements the Director archive parser:
// decode the imap and mmap tables that bootstrap every RIFX archive, then
// walk the resulting entry table resolving each slot through a shared
// resource cache.
package director

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Prilkop/directorfile/internal/chunk"
	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
	"github.com/Prilkop/directorfile/internal/resource"
)

// Types lists the 22 known Director movie/cast sub-type tags.
var Types = map[string]struct{}{
	"M!07": {}, "M!08": {}, "M!85": {}, "M!93": {}, "M!95": {}, "M!97": {},
	"M*07": {}, "M*08": {}, "M*85": {}, "M*95": {}, "M*97": {},
	"MC07": {}, "MC08": {}, "MC85": {}, "MC95": {}, "MC97": {},
	"MMQ5": {},
	"MV07": {}, "MV08": {}, "MV85": {}, "MV93": {}, "MV95": {}, "MV97": {},
}

// ResolvedEntry pairs a raw mmap Entry with the Resource it resolved to.
type ResolvedEntry struct {
	Entry    resource.Entry
	Resource *resource.Resource
}

// Archive is a parsed Director archive: its imap/mmap bootstrap data, the
// full mmap entry table, and a cache of every resource resolved so far.
type Archive struct {
	RIFXPosition int64
	RIFXSize     uint32
	TypeTag      string
	Order        endian.Order
	IMap         *resource.IMap
	IMapPosition int64
	MMap         *resource.MMap

	src         io.ReaderAt
	cache       *resource.Cache
	reconstruct func(entry resource.Entry) (*resource.Resource, error)
}

// Entries returns the mmap entries after the fixed RIFX/imap/mmap prologue
// (mmap.Entries[3:]) — the ones a Director-level consumer walks in order.
func (a *Archive) Entries() []resource.Entry {
	if len(a.MMap.Entries) <= 3 {
		return nil
	}
	return a.MMap.Entries[3:]
}

// SourceReaderAt exposes the archive's backing reader so composing packages
// (internal/application) can peek raw bytes without duplicating it.
func (a *Archive) SourceReaderAt() io.ReaderAt {
	return a.src
}

// EntryAt returns the raw mmap entry at an absolute table index (0 is the
// RIFX itself, 1 imap, 2 mmap, 3+ the walked entries).
func (a *Archive) EntryAt(index int) (resource.Entry, error) {
	if index < 0 || index >= len(a.MMap.Entries) {
		return resource.Entry{}, fmt.Errorf("%w: mmap entry index %d out of range (len %d)", direrr.ErrStructuralAssertion, index, len(a.MMap.Entries))
	}
	return a.MMap.Entries[index], nil
}

// Resolve resolves one entry through the shared cache, reconstructing it on
// a cache miss and never on a hit, so repeat lookups return the same pointer.
func (a *Archive) Resolve(entry resource.Entry) (*resource.Resource, error) {
	return a.cache.Resolve(entry.Tag, entry.Position, func() (*resource.Resource, error) {
		digest := resource.Digest(entry.Tag, entry.Position)
		slog.Debug("resolving resource", "tag", entry.Tag, "position", entry.Position, "digest", digest)
		return a.reconstruct(entry)
	})
}

// Walk resolves every entry in order, skipping ones tagged "free" or "junk".
func (a *Archive) Walk() ([]ResolvedEntry, error) {
	entries := a.Entries()
	out := make([]ResolvedEntry, 0, len(entries))
	for _, e := range entries {
		if e.Tag == "free" || e.Tag == "junk" {
			continue
		}
		res, err := a.Resolve(e)
		if err != nil {
			return nil, err
		}
		out = append(out, ResolvedEntry{Entry: e, Resource: res})
	}
	return out, nil
}

// Parser drives a single Director-archive parse. Reconstruct, when set,
// overrides the default generic-only reconstruction — this is how
// internal/application layers its own typed resource-class registry on top
// without subclassing, replacing deferred class-attribute mutation with an
// explicit, composed table.
type Parser struct {
	Src         io.ReaderAt
	Order       endian.Order
	RIFX        chunk.Header
	TypeTag     string
	Reconstruct func(a *Archive, entry resource.Entry) (*resource.Resource, error)
}

// Parse runs the parse starting at r's current position, which must be
// exactly the imap's position: the RIFX dispatcher leaves the reader there
// immediately after consuming the inner type tag.
func (p *Parser) Parse(r *endian.Reader) (*Archive, error) {
	imapPosition := r.Tell()

	imapReader, imapHeader, err := chunk.ReadHeader(p.Src, imapPosition, "imap", 0)
	if err != nil {
		return nil, err
	}
	imapBody, err := resource.ParseIMap(imapReader)
	chunk.Close(imapReader, imapHeader)
	if err != nil {
		return nil, err
	}

	mmapReader, mmapHeader, err := chunk.ReadHeader(p.Src, int64(imapBody.MMapPosition), "mmap", 0)
	if err != nil {
		return nil, err
	}
	mmapBody, err := resource.ParseMMap(mmapReader)
	chunk.Close(mmapReader, mmapHeader)
	if err != nil {
		return nil, err
	}

	if len(mmapBody.Entries) < 3 {
		return nil, fmt.Errorf("%w: mmap has only %d entries, need at least 3", direrr.ErrStructuralAssertion, len(mmapBody.Entries))
	}
	if mmapBody.Entries[0].Tag != "RIFX" {
		return nil, fmt.Errorf("%w: mmap entry 0 is %q, want \"RIFX\"", direrr.ErrStructuralAssertion, mmapBody.Entries[0].Tag)
	}
	if mmapBody.Entries[1].Tag != "imap" {
		return nil, fmt.Errorf("%w: mmap entry 1 is %q, want \"imap\"", direrr.ErrStructuralAssertion, mmapBody.Entries[1].Tag)
	}
	if mmapBody.Entries[2].Tag != "mmap" {
		return nil, fmt.Errorf("%w: mmap entry 2 is %q, want \"mmap\"", direrr.ErrStructuralAssertion, mmapBody.Entries[2].Tag)
	}

	cache := resource.NewCache()
	cache.Put("RIFX", p.RIFX.Position, &resource.Resource{Tag: "RIFX", Position: p.RIFX.Position, Size: p.RIFX.Size})
	cache.Put("imap", imapPosition, &resource.Resource{Tag: "imap", Position: imapPosition, Size: imapHeader.Size, Body: imapBody})
	cache.Put("mmap", int64(imapBody.MMapPosition), &resource.Resource{Tag: "mmap", Position: int64(imapBody.MMapPosition), Size: mmapHeader.Size, Body: mmapBody})

	a := &Archive{
		RIFXPosition: p.RIFX.Position,
		RIFXSize:     p.RIFX.Size,
		TypeTag:      p.TypeTag,
		Order:        p.Order,
		IMap:         imapBody,
		IMapPosition: imapPosition,
		MMap:         mmapBody,
		src:          p.Src,
		cache:        cache,
	}

	reconstruct := p.Reconstruct
	if reconstruct == nil {
		reconstruct = defaultReconstruct
	}
	a.reconstruct = func(entry resource.Entry) (*resource.Resource, error) {
		return reconstruct(a, entry)
	}

	return a, nil
}

// defaultReconstruct returns a GenericResource for any entry — the base
// behavior a plain Director movie/cast archive uses for every chunk it
// doesn't further interpret.
func defaultReconstruct(a *Archive, entry resource.Entry) (*resource.Resource, error) {
	r := endian.New(a.src, a.Order)
	r.Jump(entry.Position + 8)
	body, err := resource.ParseGeneric(r, entry.Size)
	if err != nil {
		return nil, err
	}
	return &resource.Resource{Tag: entry.Tag, Position: entry.Position, Size: entry.Size, Body: body}, nil
}
