// Package libraries reconciles a composition's bundled runtime
// libraries against the shared cross-composition library store.
package libraries

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/edge-suite/edgebuild/pkg/errors"
	"github.com/edge-suite/edgebuild/pkg/filesystem"
	"github.com/edge-suite/edgebuild/pkg/types"
)

// Store is the shared library repository seam. The pipeline core stays
// stateless across runs; callers decide where the store lives and how
// access to it is serialized.
type Store interface {
	// Contains reports whether a library of this name is already stored
	Contains(name string) (bool, error)

	// Put moves the file at srcPath into the store under name,
	// replacing any existing copy
	Put(name, srcPath string) error
}

// lockFileName is the advisory lock guarding a DirStore directory
const lockFileName = ".edgebuild.lock"

// DirStore keeps libraries as plain files in one shared directory. A
// flock-based advisory lock serializes access across processes;
// in-process callers still must not run two reconciliations at once.
type DirStore struct {
	fs   types.FS
	dir  string
	lock *flock.Flock
}

// NewDirStore creates a store rooted at dir
func NewDirStore(fsys types.FS, dir string) *DirStore {
	return &DirStore{
		fs:   fsys,
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockFileName)),
	}
}

// Dir returns the store directory
func (s *DirStore) Dir() string {
	return s.dir
}

// Lock acquires the advisory store lock, creating the store directory
// first so the lock file has somewhere to live.
func (s *DirStore) Lock() error {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigInvalid, "failed to create library store %s", s.dir)
	}
	return s.lock.Lock()
}

// Unlock releases the advisory store lock
func (s *DirStore) Unlock() error {
	return s.lock.Unlock()
}

func (s *DirStore) Contains(name string) (bool, error) {
	_, err := s.fs.Stat(filepath.Join(s.dir, name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *DirStore) Put(name, srcPath string) error {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return filesystem.Move(s.fs, srcPath, filepath.Join(s.dir, name))
}
