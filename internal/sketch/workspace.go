package sketch

import (
	"errors"
	"fmt"

	"github.com/arduino/go-paths-helper"
)

// The toolchain requires the sketch folder and its main file to share a base name.
const (
	Name       = "sketch"
	Extension  = ".ino"
	tempPrefix = "arduino-agent-"
)

// ErrWorkspaceIO marks a failure to create or populate a workspace.
var ErrWorkspaceIO = errors.New("workspace i/o error")

// Workspace is a single-use build tree holding one sketch.
type Workspace struct {
	root *paths.Path
	dir  *paths.Path
	file *paths.Path
}

// Root is the temporary directory owning the whole tree.
func (w *Workspace) Root() string { return w.root.String() }

// Dir is the sketch folder passed to the toolchain.
func (w *Workspace) Dir() string { return w.dir.String() }

// File is the sketch source file.
func (w *Workspace) File() string { return w.file.String() }

// Remove deletes the whole tree. Safe to call more than once.
func (w *Workspace) Remove() error {
	if w == nil || w.root == nil {
		return nil
	}
	if err := w.root.RemoveAll(); err != nil {
		return fmt.Errorf("remove workspace %s: %w", w.root, err)
	}
	return nil
}

// Stager creates workspaces under a base directory.
type Stager struct {
	baseDir string // empty means the OS temp dir
}

// NewStager returns a Stager rooted at baseDir ("" for the OS temp dir).
func NewStager(baseDir string) *Stager {
	return &Stager{baseDir: baseDir}
}

// Stage creates a fresh uniquely named tree and writes source verbatim into
// <tmp>/sketch/sketch.ino. The caller owns the returned Workspace and must
// Remove it.
func (s *Stager) Stage(source string) (*Workspace, error) {
	root, err := paths.MkTempDir(s.baseDir, tempPrefix)
	if err != nil {
		return nil, ioError("create temp dir", err)
	}
	ws := &Workspace{
		root: root,
		dir:  root.Join(Name),
		file: root.Join(Name, Name+Extension),
	}

	if err := ws.dir.MkdirAll(); err != nil {
		_ = ws.Remove()
		return nil, ioError("create sketch dir", err)
	}
	if err := ws.file.WriteFile([]byte(source)); err != nil {
		_ = ws.Remove()
		return nil, ioError("write sketch", err)
	}
	return ws, nil
}

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrWorkspaceIO, op, err)
}
