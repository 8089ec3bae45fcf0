package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BackupMode selects where CreateBackup stores the original content.
type BackupMode string

// Backup modes.
const (
	BackupModeSidecar   BackupMode = "sidecar"   // <name>.stylint.bak beside the file
	BackupModeDirectory BackupMode = "directory" // .stylint-backups/<name>.bak beside the file
	BackupModeNone      BackupMode = "none"
)

const (
	// BackupSuffix names sidecar backups.
	BackupSuffix = ".stylint.bak"

	// BackupDir holds directory-mode backups.
	BackupDir = ".stylint-backups"
)

// BackupModes lists every supported mode.
func BackupModes() []BackupMode {
	return []BackupMode{BackupModeSidecar, BackupModeDirectory, BackupModeNone}
}

// BackupConfig controls whether and where fixes back up the original.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig is sidecar mode, disabled. The CLI enables it from
// configuration.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns where path is backed up under mode, or "" for
// BackupModeNone. Unknown modes behave as sidecar.
func BackupPath(path string, mode BackupMode) string {
	switch mode {
	case BackupModeNone:
		return ""
	case BackupModeDirectory:
		return filepath.Join(filepath.Dir(path), BackupDir, filepath.Base(path)+".bak")
	}
	return path + BackupSuffix
}

// CreateBackup stores original, the content read for info, as the backup of
// info.Path, keeping info's mode. An existing backup is left alone so the
// oldest content survives repeated fixes. Returns true if a backup was
// written.
func CreateBackup(ctx context.Context, info *FileInfo, original []byte, cfg BackupConfig) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	target := BackupPath(info.Path, cfg.Mode)
	if !cfg.Enabled || target == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	switch _, err := os.Lstat(target); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("create backup directory: %w", err)
	}
	if err := WriteAtomic(ctx, target, original, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
