package resource

import "github.com/Prilkop/directorfile/internal/endian"

// ParseGeneric reads the raw post-header payload of a chunk whose tag the
// caller does not interpret. size is the chunk's declared body
// length, already excluding the 8-byte header.
func ParseGeneric(r *endian.Reader, size uint32) (*Generic, error) {
	data, err := r.ReadBytes(int(size))
	if err != nil {
		return nil, err
	}
	return &Generic{Data: data}, nil
}
