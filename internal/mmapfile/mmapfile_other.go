//go:build !unix

package mmapfile

import "os"

func open(path string) (ReaderAtCloser, error) {
	return os.Open(path)
}
