package sharedtest

import (
	"os"
)

// WithTempFileContaining creates a temporary file with the given content, passes its name to the
// function, and deletes the file afterward.
func WithTempFileContaining(data []byte, f func(filename string)) {
	file, err := os.CreateTemp("", "test")
	if err != nil {
		panic(err)
	}
	_, _ = file.Write(data)
	_ = file.Close()
	defer func() {
		_ = os.Remove(file.Name())
	}()
	f(file.Name())
}

// ReplaceFileContents overwrites a file, for tests that watch files for changes.
func ReplaceFileContents(filename string, data []byte) {
	if err := os.WriteFile(filename, data, 0600); err != nil {
		panic(err)
	}
}
