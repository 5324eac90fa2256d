// Package shader tracks GPU programs built from vertex/fragment source files and
// rebuilds them when the files change on disk.
package shader

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

// Program is a linked GPU program handle. A Unit hands out the same *Program
// until a reload succeeds.
type Program struct {
	ID uint32
}

// Source provides shader file metadata and contents.
type Source interface {
	// ModTime returns the last modification time without reading the file.
	ModTime(path string) (time.Time, error)
	ReadFile(path string) (string, error)
}

// Compiler turns vertex and fragment source text into a program handle.
type Compiler interface {
	Compile(vertexSrc, fragmentSrc string) (uint32, error)
	Release(id uint32)
}

// OSSource reads shaders from the local filesystem.
type OSSource struct{}

// ModTime stats the file.
func (OSSource) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// ReadFile reads the whole file as text.
func (OSSource) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// state pairs a program with the source timestamp it was built from.
// It is replaced as a whole, never modified in place.
type state struct {
	program *Program
	modTime time.Time
}

// Unit owns one program and the two source files it was compiled from.
type Unit struct {
	name         string
	vertexPath   string
	fragmentPath string
	src          Source
	compiler     Compiler
	current      *state
}

// ReloadError reports a failed reload. The unit keeps its previous program.
type ReloadError struct {
	Unit string
	Err  error
}

func (e *ReloadError) Error() string {
	return "reload " + e.Unit + ": " + e.Err.Error()
}

// Cause returns the underlying error.
func (e *ReloadError) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *ReloadError) Unwrap() error { return e.Err }

// Load compiles a unit from its source files. Any failure is returned.
func Load(name, vertexPath, fragmentPath string, src Source, c Compiler) (*Unit, error) {
	u := &Unit{
		name:         name,
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
		src:          src,
		compiler:     c,
	}

	modTime, err := u.newestModTime()
	if err != nil {
		return nil, errors.Wrapf(err, "shader %s", name)
	}
	st, err := u.build(modTime)
	if err != nil {
		return nil, errors.Wrapf(err, "shader %s", name)
	}
	u.current = st
	return u, nil
}

// ReloadIfStale recompiles the unit when either source file is newer than the
// program. It only stats the files unless a rebuild is needed. On failure the
// previous program and timestamp stay in place and a *ReloadError is returned.
func (u *Unit) ReloadIfStale() (bool, error) {
	modTime, err := u.newestModTime()
	if err != nil {
		return false, &ReloadError{Unit: u.name, Err: err}
	}
	if !modTime.After(u.current.modTime) {
		return false, nil
	}

	st, err := u.build(modTime)
	if err != nil {
		return false, &ReloadError{Unit: u.name, Err: err}
	}

	old := u.current
	u.current = st
	u.compiler.Release(old.program.ID)
	return true, nil
}

// Program returns the current program.
func (u *Unit) Program() *Program { return u.current.program }

// ModTime returns the source timestamp the current program was built from.
func (u *Unit) ModTime() time.Time { return u.current.modTime }

// Name returns the unit name.
func (u *Unit) Name() string { return u.name }

// Paths returns the vertex and fragment source paths.
func (u *Unit) Paths() (vertex, fragment string) { return u.vertexPath, u.fragmentPath }

// Release frees the current program.
func (u *Unit) Release() {
	if u.current != nil && u.current.program.ID != 0 {
		u.compiler.Release(u.current.program.ID)
		u.current = &state{program: &Program{}, modTime: u.current.modTime}
	}
}

func (u *Unit) newestModTime() (time.Time, error) {
	vt, err := u.src.ModTime(u.vertexPath)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "stat %s", u.vertexPath)
	}
	ft, err := u.src.ModTime(u.fragmentPath)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "stat %s", u.fragmentPath)
	}
	if ft.After(vt) {
		return ft, nil
	}
	return vt, nil
}

func (u *Unit) build(modTime time.Time) (*state, error) {
	vertexSrc, err := u.src.ReadFile(u.vertexPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", u.vertexPath)
	}
	fragmentSrc, err := u.src.ReadFile(u.fragmentPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", u.fragmentPath)
	}

	id, err := u.compiler.Compile(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}
	return &state{program: &Program{ID: id}, modTime: modTime}, nil
}
