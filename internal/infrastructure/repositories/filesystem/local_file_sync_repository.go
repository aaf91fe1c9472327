package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// LocalFileSyncRepository mirrors files between directories on the local disk.
type LocalFileSyncRepository struct{}

// NewLocalFileSyncRepository creates a new LocalFileSyncRepository.
func NewLocalFileSyncRepository() repositories.FileSyncRepository {
	return &LocalFileSyncRepository{}
}

// SyncTree makes dst an exact copy of src. Entries of dst whose name starts with a dot
// are kept; excluded names are neither copied nor deleted.
func (it *LocalFileSyncRepository) SyncTree(src, dst string, excludes []string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", src)
	}

	entries, err := os.ReadDir(dst)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || slices.Contains(excludes, name) {
			continue
		}
		if removeErr := os.RemoveAll(filepath.Join(dst, name)); removeErr != nil {
			return removeErr
		}
	}

	logger.Infof("[sync] Syncing %s into %s", src, dst)
	return filepath.WalkDir(src, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == src {
			return nil
		}
		if slices.Contains(excludes, entry.Name()) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755) //nolint:gosec // mirrors the source tree
		}
		return copyFile(path, target)
	})
}

// Copy copies a file, or a directory recursively, creating missing parents of dst.
func (it *LocalFileSyncRepository) Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(src, dst)
	}

	return filepath.WalkDir(src, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755) //nolint:gosec // mirrors the source tree
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil { //nolint:gosec // mirrors the source tree
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
