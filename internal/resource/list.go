package resource

import (
	"fmt"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
)

// ParseList reads a List body: an entry header mirroring Dict's, then
// length pairs of (entry_index, file_type).
func ParseList(r *endian.Reader) (*List, error) {
	r.Skip(8)

	length, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	allocatedLength, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if allocatedLength != length {
		return nil, fmt.Errorf("%w: List allocated_length %d != length %d", direrr.ErrStructuralAssertion, allocatedLength, length)
	}

	fixed14, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if fixed14 != 0x0014 {
		return nil, fmt.Errorf("%w: List fixed field is 0x%x, want 0x0014", direrr.ErrStructuralAssertion, fixed14)
	}
	fixed08, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if fixed08 != 0x0008 {
		return nil, fmt.Errorf("%w: List fixed field is 0x%x, want 0x0008", direrr.ErrStructuralAssertion, fixed08)
	}

	members := make([]ListMember, 0, length)
	for i := uint32(0); i < length; i++ {
		entryIndex, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		fileType, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		members = append(members, ListMember{EntryIndex: entryIndex, FileType: fileType})
	}

	return &List{Members: members}, nil
}
