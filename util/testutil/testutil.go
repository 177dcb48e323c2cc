// Package testutil provides test helpers shared by the stencil packages.
package testutil

import (
	"os"
	"testing"
)

// CreateDummyBuf creates a byte slice that is `size` big.
// It's filled with the repeating numbers [0...255].
func CreateDummyBuf(size int64) []byte {
	buf := make([]byte, size)

	for i := int64(0); i < size; i++ {
		// Be evil and stripe the data:
		buf[i] = byte(i % 255)
	}

	return buf
}

// CreateFile creates a temporary file filled with `size` bytes of striped
// content from CreateDummyBuf. The caller has to remove it.
func CreateFile(t *testing.T, size int64) string {
	fd, err := os.CreateTemp("", "stencil_test")
	if err != nil {
		t.Fatalf("cannot create temp file: %v", err)
	}

	if _, err := fd.Write(CreateDummyBuf(size)); err != nil {
		t.Fatalf("cannot fill temp file: %v", err)
	}

	if err := fd.Close(); err != nil {
		t.Fatalf("cannot close temp file: %v", err)
	}

	return fd.Name()
}

// Remover removes all paths recursively and complains when that fails.
// It is meant to be used in defer statements.
func Remover(t *testing.T, paths ...string) {
	for _, path := range paths {
		if err := os.RemoveAll(path); err != nil {
			t.Errorf("removing temp path failed: %v", err)
		}
	}
}
