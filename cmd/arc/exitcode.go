package main

import (
	"errors"
	"io"
	"io/fs"

	"github.com/dsnet/arc/archive"
	"github.com/dsnet/arc/block"
	"github.com/dsnet/arc/lzw"
)

// Exit codes, one per distinct error kind the CLI reports.
const (
	exitOK = iota
	exitNoCommand
	exitNoFile
	exitOpenFailure
	exitNotRegular
	exitAllocationFailure
	exitIOError
	exitReadError
	exitWriteError
	exitDecodeError
	exitNotArchive
	exitChecksumError
	exitCreateError
)

// exitCodeFor maps a returned error to the process exit code it should
// produce. Checksum and decode failures are matched before the generic I/O
// fallback so a corrupted archive is distinguishable from a failing disk.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNoCommand), errors.Is(err, errBadUsage):
		return exitNoCommand
	case errors.Is(err, errNoFile):
		return exitNoFile
	case errors.Is(err, errNotRegular):
		return exitNotRegular
	case errors.Is(err, fs.ErrNotExist):
		return exitNoFile
	case errors.Is(err, archive.ErrNotArchive):
		return exitNotArchive
	case errors.Is(err, block.ErrChecksum):
		return exitChecksumError
	case errors.Is(err, lzw.ErrCorrupt):
		return exitDecodeError
	case errors.Is(err, errCreateFailure):
		return exitCreateError
	case errors.Is(err, errOpenFailure):
		return exitOpenFailure
	case errors.Is(err, errWriteFailure):
		return exitWriteError
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return exitReadError
	default:
		return exitIOError
	}
}
