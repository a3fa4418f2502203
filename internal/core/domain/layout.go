package domain

import (
	"path/filepath"
	"time"
)

const (
	// BiofindDirName is the name of the local working directory.
	BiofindDirName = ".biofind"

	// SnapshotFileName is the name of the persisted snapshot document.
	SnapshotFileName = "snapshot.json"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "biofind.yaml"

	// DefaultRepositoryRoot is the repository indexed when nothing else is configured.
	DefaultRepositoryRoot = "/cvmfs/singularity.galaxyproject.org/all"

	// DefaultReloadDebounce is how long the watcher waits for writes to settle.
	DefaultReloadDebounce = 250 * time.Millisecond

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultSnapshotPath returns the default snapshot location.
// It joins .biofind and snapshot.json.
func DefaultSnapshotPath() string {
	return filepath.Join(BiofindDirName, SnapshotFileName)
}
