package filesystem

import (
	"io"
	"os"
)

// GacheFs lets gache persist its blobs on whichever backend API currently returns.
// It resolves the backend on every call so a test can swap it after the cache was built.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
