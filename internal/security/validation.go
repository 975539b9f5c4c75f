// Package security provides input limits and path checks for untrusted files.
package security

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrSizeLimit is returned when a reader exceeds its byte budget.
var ErrSizeLimit = errors.New("size limit exceeded")

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// This prevents decompression bomb attacks when reading compressed documents.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits. Reading past the limit fails
// with ErrSizeLimit instead of truncating silently.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Probe one byte so an input of exactly the limit still ends cleanly.
		var probe [1]byte
		n, err := l.R.Read(probe[:])
		if n > 0 {
			return 0, ErrSizeLimit
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// ReadAll reads r to the end, failing with ErrSizeLimit beyond maxBytes.
func ReadAll(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(NewLimitedReader(r, maxBytes))
	if err != nil {
		if errors.Is(err, ErrSizeLimit) {
			return nil, fmt.Errorf("input larger than %d bytes: %w", maxBytes, err)
		}
		return nil, err
	}
	return data, nil
}

// ValidateExecutable checks that path names a regular file with an execute
// bit set, before it is launched as a plugin.
func ValidateExecutable(path string) error {
	if path == "" {
		return fmt.Errorf("empty plugin path")
	}

	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("plugin not found: %s", path)
		}
		return fmt.Errorf("failed to stat plugin: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("plugin path is not a regular file: %s", path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("plugin is not executable: %s", path)
	}
	return nil
}

// ValidateFileSize checks a file's size on disk against maxBytes without
// reading it.
func ValidateFileSize(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() > maxBytes {
		return fmt.Errorf("%s is %d bytes, larger than %d: %w", path, info.Size(), maxBytes, ErrSizeLimit)
	}
	return nil
}
