//go:build !unix

package mmfile

import (
	"fmt"
	"os"
)

// Map reads the entire file when mmap is not available.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}

// Anon falls back to a heap allocation when anonymous mappings are unavailable.
func Anon(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("mmfile: negative mapping size %d", n)
	}
	return make([]byte, n), nil
}

// Unmap is a no-op for heap-backed memory.
func Unmap([]byte) error { return nil }
