package resource

import (
	"fmt"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
)

// ParseDict reads a Dict (or, under the BadD tag, the structurally
// identical secondary table) body: a paired offset/key table followed by a
// length-prefixed ASCII string heap.
//
// The value-heap base is cursor-relative: the reader position right after
// the values_chunk_offset/values_chunk_size words, plus values_chunk_offset.
// The post-pair-table position assertion below checks that the pair table
// ends exactly at that base.
func ParseDict(r *endian.Reader) (*Dict, error) {
	valuesChunkOffset, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	_, err = r.ReadU32() // values_chunk_size, unused beyond bounds the heap itself enforces
	if err != nil {
		return nil, err
	}

	valuesBase := r.Tell() + int64(valuesChunkOffset)

	r.Skip(8)

	length, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if length >= 0x10000 {
		return nil, fmt.Errorf("%w: Dict length %d looks like the wrong endianness", direrr.ErrStructuralAssertion, length)
	}
	allocatedLength, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if allocatedLength != length {
		return nil, fmt.Errorf("%w: Dict allocated_length %d != length %d", direrr.ErrStructuralAssertion, allocatedLength, length)
	}

	fixed1c, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if fixed1c != 0x1c {
		return nil, fmt.Errorf("%w: Dict fixed field is 0x%x, want 0x1c", direrr.ErrStructuralAssertion, fixed1c)
	}
	fixed08, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if fixed08 != 0x08 {
		return nil, fmt.Errorf("%w: Dict fixed field is 0x%x, want 0x08", direrr.ErrStructuralAssertion, fixed08)
	}
	r.Skip(8)

	type pair struct {
		key         uint32
		valueOffset uint32
	}
	pairs := make([]pair, 0, length)
	for i := uint32(0); i < length; i++ {
		valueOffset, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		key, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{key: key, valueOffset: valueOffset})
	}

	if got := r.Tell(); got != valuesBase {
		return nil, fmt.Errorf("%w: Dict pair table ends at 0x%x, expected value heap at 0x%x", direrr.ErrStructuralAssertion, got, valuesBase)
	}

	mapping := make(map[uint32]string, length)
	keys := make([]uint32, 0, length)
	for _, p := range pairs {
		if _, dup := mapping[p.key]; dup {
			return nil, fmt.Errorf("%w: Dict key %d repeated", direrr.ErrStructuralAssertion, p.key)
		}
		r.Jump(valuesBase + int64(p.valueOffset))
		value, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		mapping[p.key] = value
		keys = append(keys, p.key)
	}

	return &Dict{Mapping: mapping, Keys: keys}, nil
}
