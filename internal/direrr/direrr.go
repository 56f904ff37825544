// Package direrr holds the fixed error taxonomy shared by every layer of the
// decoder. Each sentinel is wrapped with fmt.Errorf("...: %w", ...) at the
// call site that detects it.
package direrr

import "errors"

var (
	// ErrUnexpectedTag: a chunk's on-disk tag matches neither the expected
	// canonical form nor its reversed form. Fatal wherever it occurs; the
	// Application parser's "File" probe peeks at the header bytes instead
	// of recovering from this error.
	ErrUnexpectedTag = errors.New("unexpected tag")

	// ErrUnknownResourceType: a non-"File" mmap entry references a tag not
	// in the resource-class registry.
	ErrUnknownResourceType = errors.New("unknown resource type")

	// ErrUnknownFileHeader: every candidate file-resource parser rejected a
	// "File" entry.
	ErrUnknownFileHeader = errors.New("unknown file header")

	// ErrUnknownDirectorVersion: imap director_version is not in the known
	// enumeration.
	ErrUnknownDirectorVersion = errors.New("unknown Director version")

	// ErrStructuralAssertion: a fixed constant (header width, width field,
	// zero padding, index bound) did not match.
	ErrStructuralAssertion = errors.New("structural assertion failed")

	// ErrProjectorAnchorNotFound: neither projector header convention
	// applied.
	ErrProjectorAnchorNotFound = errors.New("could not locate a PJ section")

	// ErrDecompressionFailed: zlib reported an error, or the decompressed
	// length didn't match the declared uncompressed size.
	ErrDecompressionFailed = errors.New("decompression failed")

	// ErrShortRead: the byte source ended before a required field was read.
	ErrShortRead = errors.New("short read")
)
