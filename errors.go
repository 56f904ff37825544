package directorfile

import "github.com/Prilkop/directorfile/internal/direrr"

// Sentinel errors callers can match against with errors.Is. Every error from
// locating or parsing an archive wraps one of these; errors from opening or
// memory-mapping the file in Open, and glob-pattern errors from an
// Application archive's Match, are returned unwrapped.
var (
	ErrUnexpectedTag           = direrr.ErrUnexpectedTag
	ErrUnknownResourceType     = direrr.ErrUnknownResourceType
	ErrUnknownFileHeader       = direrr.ErrUnknownFileHeader
	ErrUnknownDirectorVersion  = direrr.ErrUnknownDirectorVersion
	ErrStructuralAssertion     = direrr.ErrStructuralAssertion
	ErrProjectorAnchorNotFound = direrr.ErrProjectorAnchorNotFound
	ErrDecompressionFailed     = direrr.ErrDecompressionFailed
	ErrShortRead               = direrr.ErrShortRead
)
