// Package resource defines the typed chunk bodies materialized while
// walking a RIFX archive and the per-archive cache that
// guarantees referential identity for cross-referenced entries.
//
// Resources are modeled as one concrete struct carrying a polymorphic Body,
// not an interface hierarchy: a tagged struct with a type-switched payload
// over the fixed set of chunk shapes this format defines.
package resource

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Entry is one row of an mmap table: entry 0 is always the outer
// RIFX, 1 the imap, 2 the mmap; the rest are walked in order by the archive
// parsers.
type Entry struct {
	Index    int
	Tag      string
	Size     uint32
	Position int64
}

// Resource is a fully-parsed chunk: its header fields plus a typed Body.
// Body is one of *Generic, *IMap, *MMap, *Dict, *List, or *XtraFile, or, for
// a "File" entry holding a nested RIFX archive, the value the application
// parser's NestedRIFXParser returned; the prepopulated outer RIFX entry has a
// nil Body. Callers type-switch on it to recover the concrete shape.
type Resource struct {
	Tag      string
	Position int64
	Size     uint32
	Body     any
}

func (r *Resource) String() string {
	return fmt.Sprintf("<Resource %q @ 0x%08x(%d)>", r.Tag, r.Position, r.Size)
}

// Generic holds the raw post-header payload of a chunk whose tag the caller
// does not interpret.
type Generic struct {
	Data []byte
}

// IMap is the bootstrap chunk pointing at the mmap.
type IMap struct {
	MMapPosition    uint32
	DirectorVersion uint16
}

// MMap is the resource table: the index of every chunk in the archive.
type MMap struct {
	HeaderSize, EntryWidth  uint16
	AllocatedLength, Length uint32
	JunkListIndex1          int32
	JunkListIndex2          int32
	FreeListIndex           int32
	Entries                 []Entry
}

// Dict is the numeric-key -> ASCII-string mapping used for filename tables
// (and, under the BadD tag, for an auxiliary table of unspecified meaning).
// Keys is kept in on-disk order so iteration is deterministic.
type Dict struct {
	Mapping map[uint32]string
	Keys    []uint32
}

// ListMember is one (entry_index, file_type) pair in a List chunk.
type ListMember struct {
	EntryIndex uint32
	FileType   uint32
}

// List is the ordered member sequence correlating Application file entries
// with their Dict-assigned names and FileTypes.
type List struct {
	Members []ListMember
}

// XtraFile is a decompressed RIFF-Xtra payload.
type XtraFile struct {
	Data             []byte
	UncompressedSize uint32
}

// cacheKey is the correctness-critical identity for a resolved Resource.
// It is a plain comparable struct, not a hash, so a collision can never
// cause two distinct chunks to alias or one chunk to resolve to two
// distinct objects.
type cacheKey struct {
	tag      string
	position int64
}

// Cache memoizes resolved resources by (tag, position) for the life of one
// archive parse. It is not safe for concurrent use; a single
// parse is strictly single-threaded.
type Cache struct {
	items map[cacheKey]*Resource
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{items: make(map[cacheKey]*Resource)}
}

// Get returns the cached resource for (tag, position), if any.
func (c *Cache) Get(tag string, position int64) (*Resource, bool) {
	r, ok := c.items[cacheKey{tag, position}]
	return r, ok
}

// Put installs r under (tag, position), replacing any resource already
// stored there. Resolve calls it only after a successful reconstruct, so a
// failed reconstruct never leaves partial state in the cache; archive
// parsers also call it directly to prepopulate entries they parsed
// themselves.
func (c *Cache) Put(tag string, position int64, r *Resource) {
	c.items[cacheKey{tag, position}] = r
}

// Resolve implements the lookup-then-construct protocol: on a cache hit it
// returns the stored pointer (preserving identity for cross-referenced
// entries); on a miss it calls reconstruct and, only if that succeeds,
// stores and returns the result.
func (c *Cache) Resolve(tag string, position int64, reconstruct func() (*Resource, error)) (*Resource, error) {
	if r, ok := c.Get(tag, position); ok {
		return r, nil
	}
	r, err := reconstruct()
	if err != nil {
		return nil, err
	}
	c.Put(tag, position, r)
	return r, nil
}

// Digest returns a stable, non-cryptographic fingerprint of (tag, position)
// suitable for log attributes, e.g. a short label for a resolve call
// without printing the raw position. Never used for map indexing.
func Digest(tag string, position int64) uint64 {
	var d xxhash.Digest
	d.WriteString(tag)
	var posBuf [8]byte
	for i := range posBuf {
		posBuf[i] = byte(position >> (8 * i))
	}
	d.Write(posBuf[:])
	return d.Sum64()
}
