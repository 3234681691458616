// Package block implements the fixed-size block pipeline that wraps the
// lzw codec, the packer, and the checksum: it splits a file's byte stream
// into Size-byte blocks, compresses and packs each one independently, and
// protects each with a CRC-32 over exactly the bytes written for it.
//
// The wire layout per block, in order and with no padding, is:
//
//	code_count  uint64
//	packed_size uint64
//	packed_bytes [packed_size]byte
//	checksum    uint32
//
// All integers are little-endian.
package block

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dsnet/arc/internal/checksum"
	"github.com/dsnet/arc/lzw"
	"github.com/dsnet/arc/packer"
)

// Size is the fixed number of raw bytes compressed into one block: 4096*4.
const Size = 4096 * 4

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "block: " + string(e) }

// ErrChecksum is returned by DecompressFile when a block's stored checksum
// does not match the CRC-32 of the packed bytes read for it.
var ErrChecksum error = Error("checksum mismatch")

// Writer streams a file's bytes from src into dst as a block_count-prefixed
// sequence of blocks. It owns and reuses three buffers across blocks: the
// raw block, the code sequence, and the packed bytes.
type Writer struct {
	raw    []byte
	codes  []lzw.Code
	packed []byte
}

// NewWriter returns a Writer with buffers pre-sized to one block.
func NewWriter() *Writer {
	return &Writer{raw: make([]byte, Size)}
}

// CompressFile reads exactly size bytes from src, split into Size-byte
// blocks (the last one possibly shorter), and writes the resulting
// block_count and block records to dst. size == 0 writes a block_count of
// zero and no block records.
func (w *Writer) CompressFile(dst io.Writer, src io.Reader, size uint64) error {
	whole := size / Size
	rem := size % Size
	total := whole
	if rem > 0 {
		total++
	}
	if err := binary.Write(dst, binary.LittleEndian, total); err != nil {
		return err
	}
	for i := uint64(0); i < whole; i++ {
		if err := w.compressBlock(dst, src, Size); err != nil {
			return err
		}
	}
	if rem > 0 {
		if err := w.compressBlock(dst, src, rem); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) compressBlock(dst io.Writer, src io.Reader, n uint64) error {
	if uint64(cap(w.raw)) < n {
		w.raw = make([]byte, n)
	}
	w.raw = w.raw[:n]
	if _, err := io.ReadFull(src, w.raw); err != nil {
		return fmt.Errorf("block: short read: %w", err)
	}

	w.codes = lzw.Encode(w.codes, w.raw)
	codeCount := uint64(len(w.codes))

	packed, err := packer.Pack(w.packed, w.codes)
	if err != nil {
		return err
	}
	w.packed = packed
	packedSize := uint64(len(w.packed))
	crc := checksum.Checksum(w.packed)

	if err := binary.Write(dst, binary.LittleEndian, codeCount); err != nil {
		return err
	}
	if err := binary.Write(dst, binary.LittleEndian, packedSize); err != nil {
		return err
	}
	if _, err := dst.Write(w.packed); err != nil {
		return err
	}
	return binary.Write(dst, binary.LittleEndian, crc)
}

// Reader reverses Writer: it reads a block_count-prefixed sequence of
// blocks from src and writes the decompressed bytes to dst.
type Reader struct {
	packed []byte
	codes  []lzw.Code
	raw    []byte
}

// NewReader returns a Reader with buffers pre-sized to one block.
func NewReader() *Reader {
	return &Reader{packed: make([]byte, Size)}
}

// DecompressFile reads a block_count followed by that many block records
// from src, and writes the concatenated decompressed bytes to dst. It
// returns ErrChecksum on the first mismatching block and lzw.ErrCorrupt on
// the first block whose code sequence is malformed; in both cases it stops
// without consuming further blocks.
func (r *Reader) DecompressFile(dst io.Writer, src io.Reader) error {
	var total uint64
	if err := binary.Read(src, binary.LittleEndian, &total); err != nil {
		return fmt.Errorf("block: short read: %w", err)
	}
	for i := uint64(0); i < total; i++ {
		if err := r.decompressBlock(dst, src); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) decompressBlock(dst io.Writer, src io.Reader) error {
	var codeCount, packedSize uint64
	if err := binary.Read(src, binary.LittleEndian, &codeCount); err != nil {
		return fmt.Errorf("block: short read: %w", err)
	}
	if err := binary.Read(src, binary.LittleEndian, &packedSize); err != nil {
		return fmt.Errorf("block: short read: %w", err)
	}

	if uint64(cap(r.packed)) < packedSize {
		r.packed = make([]byte, packedSize)
	}
	r.packed = r.packed[:packedSize]
	if _, err := io.ReadFull(src, r.packed); err != nil {
		return fmt.Errorf("block: short read: %w", err)
	}

	var wantCRC uint32
	if err := binary.Read(src, binary.LittleEndian, &wantCRC); err != nil {
		return fmt.Errorf("block: short read: %w", err)
	}
	if gotCRC := checksum.Checksum(r.packed); gotCRC != wantCRC {
		return ErrChecksum
	}

	r.codes = packer.Unpack(r.codes, int(codeCount), r.packed)
	raw, err := lzw.Decode(r.raw, r.codes)
	if err != nil {
		return err
	}
	r.raw = raw

	_, err = dst.Write(r.raw)
	return err
}
