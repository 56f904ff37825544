package resource

import (
	"fmt"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
)

// ParseMMap reads the resource-map table: header fields, then the first
// length of its allocated_length 20-byte entry slots. Slots past length are
// not read.
func ParseMMap(r *endian.Reader) (*MMap, error) {
	headerSize, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if headerSize != 0x18 {
		return nil, fmt.Errorf("%w: mmap header_size is 0x%x, want 0x18", direrr.ErrStructuralAssertion, headerSize)
	}

	entryWidth, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if entryWidth != 0x14 {
		return nil, fmt.Errorf("%w: mmap entry_width is 0x%x, want 0x14", direrr.ErrStructuralAssertion, entryWidth)
	}

	allocatedLength, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	length, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if length > allocatedLength {
		return nil, fmt.Errorf("%w: mmap length %d exceeds allocated_length %d", direrr.ErrStructuralAssertion, length, allocatedLength)
	}

	junkListIndex1, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	junkListIndex2, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	freeListIndex, err := r.ReadI32()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, length)
	for i := uint32(0); i < length; i++ {
		tag, err := r.ReadTag()
		if err != nil {
			return nil, err
		}
		size, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		position, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		r.Skip(8) // reserved

		entries = append(entries, Entry{
			Index:    int(i),
			Tag:      tag,
			Size:     size,
			Position: int64(position),
		})
	}

	m := &MMap{
		HeaderSize:      headerSize,
		EntryWidth:      entryWidth,
		AllocatedLength: allocatedLength,
		Length:          length,
		JunkListIndex1:  junkListIndex1,
		JunkListIndex2:  junkListIndex2,
		FreeListIndex:   freeListIndex,
		Entries:         entries,
	}

	if err := validateListIndex(m, junkListIndex1, "junk"); err != nil {
		return nil, err
	}
	if err := validateListIndex(m, junkListIndex2, "junk"); err != nil {
		return nil, err
	}
	if err := validateListIndex(m, freeListIndex, "free"); err != nil {
		return nil, err
	}

	return m, nil
}

// validateListIndex enforces the mmap invariant that a junk/free index,
// when not -1, must reference an entry tagged accordingly.
func validateListIndex(m *MMap, index int32, wantTag string) error {
	if index == -1 {
		return nil
	}
	if index < 0 || int(index) >= len(m.Entries) {
		return fmt.Errorf("%w: mmap %s-list index %d out of range", direrr.ErrStructuralAssertion, wantTag, index)
	}
	if got := m.Entries[index].Tag; got != wantTag {
		return fmt.Errorf("%w: mmap %s-list index %d tagged %q, want %q", direrr.ErrStructuralAssertion, wantTag, index, got, wantTag)
	}
	return nil
}
