package resource

import (
	"fmt"

	"github.com/Prilkop/directorfile/internal/direrr"
	"github.com/Prilkop/directorfile/internal/endian"
)

// directorVersions enumerates the known imap director_version codes.
var directorVersions = map[uint16]string{
	0x4c1: "5.0",
	0x4c7: "6.0",
	0x57e: "7.0",
	0x640: "8.0",
	0x708: "8.5",
	0x73a: "8.5.1",
	0x742: "10.0",
	0x744: "10.1",
	0x782: "11.5.0r593",
	0x783: "11.5.8.612",
	0x79f: "12",
}

// DirectorVersionName returns the human-readable name for a director_version
// code, or "" if it is not in the known enumeration.
func DirectorVersionName(code uint16) string {
	return directorVersions[code]
}

// ParseIMap reads the imap body: fixed prefix word 0x00000001, mmap
// position, director version, fixed trailing zero word.
func ParseIMap(r *endian.Reader) (*IMap, error) {
	one, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if one != 1 {
		return nil, fmt.Errorf("%w: imap prefix word is 0x%x, want 1", direrr.ErrStructuralAssertion, one)
	}

	mmapPosition, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	versionWord, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	version := uint16(versionWord)
	if _, known := directorVersions[version]; !known {
		return nil, fmt.Errorf("%w: 0x%x", direrr.ErrUnknownDirectorVersion, version)
	}

	trailer, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	if trailer != 0 {
		return nil, fmt.Errorf("%w: imap trailer is %d, want 0", direrr.ErrStructuralAssertion, trailer)
	}

	return &IMap{MMapPosition: mmapPosition, DirectorVersion: version}, nil
}
