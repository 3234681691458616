package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dsnet/arc/archive"
)

// Error is the wrapper type for CLI-boundary errors: filesystem access,
// existence/regularity checks, and metadata restoration. The core packages
// never produce these; they are specific to this binary's interaction with
// the host filesystem.
type Error string

func (e Error) Error() string { return string(e) }

var (
	errNoFile        error = Error("no such file")
	errNotRegular    error = Error("not a regular file")
	errOpenFailure   error = Error("could not open file")
	errCreateFailure error = Error("could not create file")
	errWriteFailure  error = Error("could not write file")
)

// namedError pairs a file name with the boundary error it triggered, so the
// CLI can report "file 'x' does not exist" rather than a bare sentinel.
type namedError struct {
	name string
	err  error
}

func (e *namedError) Error() string { return fmt.Sprintf("%s: %s", e.name, e.err) }
func (e *namedError) Unwrap() error { return e.err }

// gatherSources stats every name in names before opening anything: every
// bad name is collected and reported, and the archive is not written at all
// unless every input passes its existence and regular-file check.
func gatherSources(names []string) ([]archive.Source, error) {
	var (
		sources []archive.Source
		errs    []error
	)
	for _, name := range names {
		info, err := os.Stat(name)
		switch {
		case os.IsNotExist(err):
			errs = append(errs, &namedError{name, errNoFile})
			continue
		case err != nil:
			errs = append(errs, &namedError{name, err})
			continue
		case !info.Mode().IsRegular():
			errs = append(errs, &namedError{name, errNotRegular})
			continue
		}

		sources = append(sources, archive.Source{
			Name: name,
			Meta: archive.FileMetadata{
				Mode:    uint32(info.Mode().Perm()),
				Size:    uint64(info.Size()),
				ModTime: info.ModTime().UnixNano(),
			},
			Open: func() (io.ReadCloser, error) {
				f, err := os.Open(name)
				if err != nil {
					return nil, &namedError{name, errOpenFailure}
				}
				return f, nil
			},
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return sources, nil
}

// taggedFile wraps an output *os.File so that every failed Write carries
// errWriteFailure, letting the exit-code mapping tell a failing output sink
// apart from a failing input read.
type taggedFile struct {
	name string
	f    *os.File
}

func (t *taggedFile) Write(p []byte) (int, error) {
	n, err := t.f.Write(p)
	if err != nil {
		return n, &namedError{t.name, errWriteFailure}
	}
	return n, nil
}

func (t *taggedFile) Close() error { return t.f.Close() }

// fsSink implements archive.Sink and archive.Restorer by creating files
// relative to the current working directory, matching unpack's documented
// "extracts all files to their recorded names in the current working
// directory".
type fsSink struct{}

func (fsSink) Create(name string, meta archive.FileMetadata) (io.Writer, error) {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return nil, &namedError{name, errCreateFailure}
		}
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(meta.Mode)|0o600)
	if err != nil {
		return nil, &namedError{name, errCreateFailure}
	}
	return &taggedFile{name, f}, nil
}

func (fsSink) Restore(name string, meta archive.FileMetadata) error {
	if err := os.Chmod(name, os.FileMode(meta.Mode)); err != nil {
		return err
	}
	t := time.Unix(0, meta.ModTime)
	return os.Chtimes(name, t, t)
}
