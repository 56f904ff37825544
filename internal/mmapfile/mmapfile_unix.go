//go:build unix

package mmapfile

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

type mappedFile struct {
	f    *os.File
	data []byte
}

func open(path string) (ReaderAtCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("mmapfile: %s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmapfile: mmap %s: %w", path, err)
	}

	return &mappedFile{f: f, data: data}, nil
}

func (m *mappedFile) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(m.data)) {
		return 0, fmt.Errorf("mmapfile: offset %d out of range (len %d)", off, len(m.data))
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size reports the mapped region's length, letting callers that only hold
// an io.ReaderAt (such as locator.Locate) find the end of the file without
// a second os.Stat.
func (m *mappedFile) Size() int64 {
	return int64(len(m.data))
}

func (m *mappedFile) Close() error {
	err := unix.Munmap(m.data)
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
