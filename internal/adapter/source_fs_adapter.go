// Package adapter contains filesystem and persistence adapters for seedclean.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	m "seedclean.dev/pkg/seedclean/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the clean workflow
// relies on, so the domain layer can be tested without touching the disk.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile truncates and overwrites the file in place.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// WriteFileAtomic writes content to a temporary file next to path and
	// renames it over path.
	WriteFileAtomic(path m.Path, content []byte, perm os.FileMode) error

	// HashContent returns the SHA-256 fingerprint of content.
	HashContent(content []byte) string

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - the path is the file the user asked to clean
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// WriteFileAtomic writes through a temporary file in the same directory.
func (a *LocalSourceFSAdapter) WriteFileAtomic(path m.Path, content []byte, perm os.FileMode) error {
	target := string(path)

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	committed := false

	defer func() {
		if committed {
			return
		}

		_ = tmp.Close()

		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Warn("failed to remove temp file", "path", tmpName, "error", rmErr)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	if err := os.Rename(tmpName, target); err != nil {
		return err
	}

	committed = true

	slog.Debug("atomic write committed", "path", target, "bytes", len(content))

	return nil
}

// HashContent returns the hex SHA-256 hash of content.
func (a *LocalSourceFSAdapter) HashContent(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
