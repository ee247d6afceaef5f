// Package workspace manages the temporary extraction trees for
// pipeline runs: one uniquely named directory per run, archive
// extraction into it, and best-effort cleanup on every exit path.
package workspace

import (
	"archive/zip"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/logging"
	"github.com/edge-suite/edgebuild/pkg/types"
)

// probeName is the throwaway file used to verify a directory is writable
const probeName = ".edgebuild-probe"

// Manager owns the workspace root under which per-run directories live
type Manager struct {
	fs   types.FS
	root string
}

// New creates a workspace manager rooted at root
func New(fsys types.FS, root string) *Manager {
	return &Manager{fs: fsys, root: root}
}

// EnsureRoot guarantees the workspace root exists and is writable
func (m *Manager) EnsureRoot() error {
	return EnsureWritableDir(m.fs, m.root)
}

// NewRun creates a fresh uniquely named run directory. The unique
// suffix only guards against collisions between runs started close
// together; it is not a lock.
func (m *Manager) NewRun() (*Run, error) {
	if err := m.EnsureRoot(); err != nil {
		return nil, err
	}

	dir := filepath.Join(m.root, "run-"+uuid.NewString())
	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "failed to create run directory %s", dir)
	}

	log := logging.GetLogger("workspace")
	log.Debug().Str("dir", dir).Msg("Run directory created")

	return &Run{fs: m.fs, dir: dir}, nil
}

// Run is the temporary extraction tree of a single pipeline run
type Run struct {
	fs  types.FS
	dir string
}

// Dir returns the run directory path
func (r *Run) Dir() string {
	return r.dir
}

// Extract unpacks the zip archive into the run directory. Any
// pre-existing contents are cleared first so the tree is guaranteed
// clean. Entries escaping the run directory are rejected.
func (r *Run) Extract(archive string) error {
	log := logging.GetLogger("workspace")

	if _, err := r.fs.Stat(archive); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveNotFound, "archive %s does not exist", archive)
	}

	// Clean slate for repeated runs against the same directory
	if err := r.fs.RemoveAll(r.dir); err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to clear run directory %s", r.dir)
	}
	if err := r.fs.MkdirAll(r.dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to recreate run directory %s", r.dir)
	}

	reader, err := zip.OpenReader(archive)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to open archive %s", archive)
	}
	defer func() { _ = reader.Close() }()

	for _, entry := range reader.File {
		if err := r.extractEntry(entry); err != nil {
			return err
		}
	}

	log.Info().Str("archive", archive).Str("dir", r.dir).Int("entries", len(reader.File)).Msg("Archive extracted")
	return nil
}

func (r *Run) extractEntry(entry *zip.File) error {
	target, err := r.securePath(entry.Name)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		if err := r.fs.MkdirAll(target, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to create directory %s", target)
		}
		return nil
	}

	if err := r.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to create directory for %s", target)
	}

	src, err := entry.Open()
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to open archive entry %s", entry.Name)
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to read archive entry %s", entry.Name)
	}

	perm := entry.Mode().Perm()
	if perm == 0 {
		perm = fs.FileMode(0644)
	}
	if err := r.fs.WriteFile(target, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrExtractionFailed, "failed to write %s", target)
	}
	return nil
}

// securePath resolves an archive entry name inside the run directory,
// rejecting absolute names and upward traversal (zip-slip).
func (r *Run) securePath(name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrExtractionFailed, "archive entry %q escapes the extraction directory", name)
	}
	return filepath.Join(r.dir, cleaned), nil
}

// Cleanup removes the run directory. It is best-effort: safe to call
// after a partial extraction and on every orchestrator exit path.
func (r *Run) Cleanup() {
	log := logging.GetLogger("workspace")
	if err := r.fs.RemoveAll(r.dir); err != nil {
		log.Warn().Err(err).Str("dir", r.dir).Msg("Failed to remove run directory")
		return
	}
	log.Debug().Str("dir", r.dir).Msg("Run directory removed")
}

// EnsureWritableDir creates dir if needed and probes that it accepts writes
func EnsureWritableDir(fsys types.FS, dir string) error {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigInvalid, "failed to create directory %s", dir)
	}

	probe := filepath.Join(dir, probeName)
	if err := fsys.WriteFile(probe, []byte{}, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigInvalid, "directory %s is not writable", dir)
	}
	if err := fsys.Remove(probe); err != nil {
		return errors.Wrapf(err, errors.ErrConfigInvalid, "failed to remove probe file in %s", dir)
	}
	return nil
}
