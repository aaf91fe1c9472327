package repositories

// FileSyncRepository copies release files between working trees.
type FileSyncRepository interface {
	// SyncTree replaces the content of dst with the content of src, leaving dst's
	// dot-entries (e.g. .git) in place and skipping excluded names at any depth.
	SyncTree(src, dst string, excludes []string) error

	// Copy copies a file or directory tree from src to dst.
	Copy(src, dst string) error
}
