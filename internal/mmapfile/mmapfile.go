// Package mmapfile opens a file as an io.ReaderAt, memory-mapping it where
// the platform supports that and falling back to plain *os.File reads
// elsewhere: a fast syscall-backed path plus a portable fallback behind the
// same signature.
package mmapfile

import "io"

// ReaderAtCloser is a seekable, closeable byte source an Archive can parse
// directly without ever reading the whole file into memory up front.
type ReaderAtCloser interface {
	io.ReaderAt
	io.Closer
}

// Open maps path into memory when the platform supports it (see
// mmapfile_unix.go), or opens it as a plain *os.File otherwise (see
// mmapfile_other.go).
func Open(path string) (ReaderAtCloser, error) {
	return open(path)
}
