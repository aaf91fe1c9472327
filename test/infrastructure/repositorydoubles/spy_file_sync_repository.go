//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// SyncCall is one recorded SyncTree invocation.
type SyncCall struct {
	Src      string
	Dst      string
	Excludes []string
}

// CopyCall is one recorded Copy invocation.
type CopyCall struct {
	Src string
	Dst string
}

// SpyFileSyncRepository implements repositories.FileSyncRepository without touching the disk.
type SpyFileSyncRepository struct {
	SyncErr error
	CopyErr error

	Syncs  []SyncCall
	Copies []CopyCall
}

var _ repositories.FileSyncRepository = (*SpyFileSyncRepository)(nil)

func (s *SpyFileSyncRepository) SyncTree(src, dst string, excludes []string) error {
	s.Syncs = append(s.Syncs, SyncCall{Src: src, Dst: dst, Excludes: excludes})
	return s.SyncErr
}

func (s *SpyFileSyncRepository) Copy(src, dst string) error {
	s.Copies = append(s.Copies, CopyCall{Src: src, Dst: dst})
	return s.CopyErr
}
