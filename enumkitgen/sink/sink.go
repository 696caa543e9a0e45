// Package sink provides output destinations for generated enum files.
package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// GeneratedMarker starts every file enumkit writes. Remove refuses to delete
// files without it.
const GeneratedMarker = "// Code generated by enumkit. DO NOT EDIT."

// ErrNotGenerated is returned by Remove for files enumkit did not write.
var ErrNotGenerated = errors.New("file was not generated by enumkit")

// OutputSink receives generated file content.
// Implementations must be safe for concurrent calls.
type OutputSink interface {
	// WriteFile writes content to the slash-separated relative path.
	WriteFile(ctx context.Context, path string, content []byte) error

	// Remove deletes a previously generated file. Removing a missing file
	// is not an error.
	Remove(ctx context.Context, path string) error
}

// FilesystemSink writes below a directory on the local filesystem.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite controls behavior for existing files.
	// If false, writing to an existing path fails.
	Overwrite bool
}

// NewFilesystemSink returns a sink rooted at root that overwrites files.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root, Mode: 0o644, Overwrite: true}
}

func (s *FilesystemSink) resolve(p string) (string, error) {
	if err := ValidatePath(p); err != nil {
		return "", fmt.Errorf("invalid path %q: %w", p, err)
	}
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", fmt.Errorf("resolve root directory: %w", err)
	}
	full := filepath.Join(absRoot, filepath.FromSlash(p))
	if !strings.HasPrefix(full, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes root directory: %q", p)
	}
	return full, nil
}

// WriteFile writes content atomically via a temp file and rename, creating
// parent directories as needed. A file that already holds content is left
// untouched so its modification time does not change.
func (s *FilesystemSink) WriteFile(ctx context.Context, p string, content []byte) error {
	full, err := s.resolve(p)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	existing, err := os.ReadFile(full)
	switch {
	case err == nil && !s.Overwrite:
		return fmt.Errorf("file already exists: %q", p)
	case err == nil && bytes.Equal(existing, content):
		return nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("read existing file: %w", err)
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0o644
	}

	tmp, err := os.CreateTemp(dir, ".enumkit-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	// Leftover temp files share the .enumkit-*.tmp prefix.
	cleanup := func() { _ = os.Remove(tmpPath) }

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("set file mode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmpPath, full); err != nil {
			cleanup()
			return fmt.Errorf("rename temp file: %w", err)
		}
		return nil
	}
	// os.Link fails if the target appeared since the read above.
	if err := os.Link(tmpPath, full); err != nil {
		cleanup()
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("file already exists: %q", p)
		}
		return fmt.Errorf("create file: %w", err)
	}
	cleanup()
	return nil
}

// Remove deletes a generated file. Files that do not start with
// GeneratedMarker are kept and ErrNotGenerated is returned.
func (s *FilesystemSink) Remove(ctx context.Context, p string) error {
	full, err := s.resolve(p)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %q: %w", p, err)
	}
	if !bytes.HasPrefix(content, []byte(GeneratedMarker)) {
		return fmt.Errorf("remove %q: %w", p, ErrNotGenerated)
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", p, err)
	}
	return nil
}

// MemorySink stores generated files in memory.
// All operations are safe for concurrent use.
type MemorySink struct {
	mu     sync.RWMutex
	files  map[string][]byte
	writes int
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content. Storing the content a path already
// holds is not counted as a write.
func (s *MemorySink) WriteFile(ctx context.Context, p string, content []byte) error {
	if err := ValidatePath(p); err != nil {
		return fmt.Errorf("invalid path %q: %w", p, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.files[p]; ok && bytes.Equal(old, content) {
		return nil
	}
	s.files[p] = bytes.Clone(content)
	s.writes++
	return nil
}

// Remove deletes p from the store.
func (s *MemorySink) Remove(ctx context.Context, p string) error {
	if err := ValidatePath(p); err != nil {
		return fmt.Errorf("invalid path %q: %w", p, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, p)
	return nil
}

// Files returns a copy of all stored files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(s.files))
	for p, content := range s.files {
		result[p] = bytes.Clone(content)
	}
	return result
}

// Paths returns the stored paths in sorted order.
func (s *MemorySink) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Get returns a copy of one file, or nil if it is not stored.
func (s *MemorySink) Get(p string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[p]
	if !ok {
		return nil
	}
	return bytes.Clone(content)
}

// Writes returns the number of WriteFile calls that changed a file.
func (s *MemorySink) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Reset clears all stored files and the write count.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string][]byte)
	s.writes = 0
}

// ValidatePath checks that p is usable as output path: relative,
// slash-separated, clean and free of ".." components.
func ValidatePath(p string) error {
	if p == "" {
		return errors.New("path is empty")
	}
	if strings.HasPrefix(p, "/") || filepath.IsAbs(p) || filepath.VolumeName(p) != "" || hasDriveLetter(p) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(p, `\`) {
		return errors.New("path must use / as separator")
	}
	if slices.Contains(strings.Split(p, "/"), "..") {
		return errors.New("path traversal not allowed")
	}
	if cleaned := path.Clean(p); cleaned != p || cleaned == "." {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, p)
	}
	return nil
}

func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0] | 0x20
	return c >= 'a' && c <= 'z'
}
