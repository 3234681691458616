// Package archive implements the arc container format: an 8-byte
// signature, a file count, and a concatenated sequence of per-file records
// (metadata, name, compressed block stream) produced by package block.
//
// The core here never touches a filesystem. It reads an io.Reader or
// writes an io.Writer and treats FileMetadata as an opaque carrier: Pack
// takes metadata the caller already gathered, and Unpack hands metadata it
// read back to the caller's Sink unexamined. Stat calls, existence checks,
// and permission/mtime restoration are the caller's job (see cmd/arc).
package archive

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dsnet/arc/block"
)

// Signature identifies this container format. It is written verbatim as
// the first 8 bytes of every archive and checked verbatim on Unpack.
var Signature = [8]byte{'a', 'r', 'c', 'f', 'm', 't', '0', '1'}

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "archive: " + string(e) }

// ErrNotArchive is returned by Unpack when the stream's first 8 bytes do
// not match Signature. No further bytes are read.
var ErrNotArchive error = Error("not an arc archive")

// FileMetadata is the fixed-size record stored immediately before each
// file's name in the archive. Pack uses Size to drive how many bytes it
// reads from the file's stream; the rest is round-tripped without
// interpretation by the core.
type FileMetadata struct {
	Mode    uint32 // POSIX permission bits
	Size    uint64
	ModTime int64 // unix nanoseconds since epoch
}

// Source describes one input to Pack: its recorded name and metadata, and
// a func to open its byte stream on demand (Pack calls it once, in order,
// immediately before compressing that file).
type Source struct {
	Name string
	Meta FileMetadata
	Open func() (io.ReadCloser, error)
}

// Sink receives decompressed files from Unpack.
type Sink interface {
	// Create returns a writer for name's decompressed bytes. Unpack closes
	// it (if it implements io.Closer) after writing every decoded block to
	// it, or on the first error. The byte count is not checked against
	// meta.Size.
	Create(name string, meta FileMetadata) (io.Writer, error)
}

// Restorer is an optional interface a Sink may implement to restore
// filesystem attributes (permissions, modification time) after a file's
// bytes have been fully written. A Restore error is non-fatal: Unpack
// reports it through warn and continues with the next file.
type Restorer interface {
	Restore(name string, meta FileMetadata) error
}

// Pack writes an archive containing files to dst, in order. The first
// Source whose Open call fails aborts the operation; no partial archive
// recovery is attempted.
func Pack(dst io.Writer, files []Source) error {
	if _, err := dst.Write(Signature[:]); err != nil {
		return err
	}
	if err := binary.Write(dst, binary.LittleEndian, int32(len(files))); err != nil {
		return err
	}

	w := block.NewWriter()
	for _, f := range files {
		if err := writeMetadata(dst, f.Meta, uint64(len(f.Name))); err != nil {
			return err
		}
		if _, err := io.WriteString(dst, f.Name); err != nil {
			return err
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("archive: opening %q: %w", f.Name, err)
		}
		err = w.CompressFile(dst, rc, f.Meta.Size)
		closeErr := rc.Close()
		if err != nil {
			return fmt.Errorf("archive: compressing %q: %w", f.Name, err)
		}
		if closeErr != nil {
			return closeErr
		}
	}
	return nil
}

// Unpack reads an archive from src and writes each file's decompressed
// bytes to sink. It returns ErrNotArchive immediately if the signature does
// not match. A block.ErrChecksum or lzw.ErrCorrupt on any file aborts the
// whole operation: no retry, no partial recovery of the remaining files.
// warn, if non-nil, is called for every non-fatal Restorer failure.
func Unpack(src io.Reader, sink Sink, warn func(name string, err error)) error {
	var sig [8]byte
	if _, err := io.ReadFull(src, sig[:]); err != nil {
		return fmt.Errorf("archive: short read: %w", err)
	}
	if sig != Signature {
		return ErrNotArchive
	}

	var fileCount int32
	if err := binary.Read(src, binary.LittleEndian, &fileCount); err != nil {
		return fmt.Errorf("archive: short read: %w", err)
	}

	r := block.NewReader()
	for i := int32(0); i < fileCount; i++ {
		meta, nameSize, err := readMetadata(src)
		if err != nil {
			return err
		}
		nameBuf := make([]byte, nameSize)
		if _, err := io.ReadFull(src, nameBuf); err != nil {
			return fmt.Errorf("archive: short read: %w", err)
		}
		name := string(nameBuf)

		w, err := sink.Create(name, meta)
		if err != nil {
			return fmt.Errorf("archive: creating %q: %w", name, err)
		}
		err = r.DecompressFile(w, src)
		if closer, ok := w.(io.Closer); ok {
			if closeErr := closer.Close(); err == nil {
				err = closeErr
			}
		}
		if err != nil {
			return fmt.Errorf("archive: decompressing %q: %w", name, err)
		}

		if restorer, ok := sink.(Restorer); ok {
			if err := restorer.Restore(name, meta); err != nil && warn != nil {
				warn(name, err)
			}
		}
	}
	return nil
}

// wireMetadataSize is the fixed on-disk size of FileMetadata plus its
// trailing name_size field: mode(4) + size(8) + mod_time(8) + name_size(8).
const wireMetadataSize = 4 + 8 + 8 + 8

func writeMetadata(dst io.Writer, meta FileMetadata, nameSize uint64) error {
	rec := struct {
		Mode     uint32
		Size     uint64
		ModTime  int64
		NameSize uint64
	}{meta.Mode, meta.Size, meta.ModTime, nameSize}
	return binary.Write(dst, binary.LittleEndian, rec)
}

func readMetadata(src io.Reader) (FileMetadata, uint64, error) {
	var rec struct {
		Mode     uint32
		Size     uint64
		ModTime  int64
		NameSize uint64
	}
	if err := binary.Read(src, binary.LittleEndian, &rec); err != nil {
		return FileMetadata{}, 0, fmt.Errorf("archive: short read: %w", err)
	}
	return FileMetadata{Mode: rec.Mode, Size: rec.Size, ModTime: rec.ModTime}, rec.NameSize, nil
}
