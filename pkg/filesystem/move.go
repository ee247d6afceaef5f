package filesystem

import (
	"io/fs"

	"github.com/edge-suite/edgebuild/pkg/types"
)

// Move renames src to dst, falling back to copy-and-remove when the
// rename fails (typically a cross-device move between the temporary
// workspace and the destination filesystem).
func Move(fsys types.FS, src, dst string) error {
	if err := fsys.Rename(src, dst); err == nil {
		return nil
	}

	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fs.FileMode(0644)
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(dst, data, perm); err != nil {
		return err
	}
	return fsys.Remove(src)
}
