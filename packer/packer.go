// Package packer translates between a sequence of 12-bit LZW codes and the
// dense on-disk byte representation the arc archive format stores: two
// codes packed into three bytes.
//
// Given consecutive codes A and B, each no wider than 12 bits, the three
// output bytes are
//
//	byte0 = A & 0xFF
//	byte1 = (A>>8)<<4 | (B>>8)
//	byte2 = B & 0xFF
package packer

import "github.com/dsnet/arc/lzw"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "packer: " + string(e) }

// ErrCodeRange is returned by Pack when a Code's upper 4 bits are non-zero;
// the packer is defined only for 12-bit values.
var ErrCodeRange error = Error("code exceeds 12 bits")

// Pack encodes codes into a dense byte string of length
// ceil(len(codes)/2)*3. If codes has an odd length, a sentinel Code 0 is
// packed as the final code's partner; codes itself is left unmodified.
func Pack(dst []byte, codes []lzw.Code) ([]byte, error) {
	n := len(codes)
	size := (n + 1) / 2 * 3
	dst = growBytes(dst, size)

	i, j := 0, 0
	for ; i+1 < n; i, j = i+2, j+3 {
		if err := packPair(dst[j:j+3], codes[i], codes[i+1]); err != nil {
			return nil, err
		}
	}
	if i < n {
		if err := packPair(dst[j:j+3], codes[i], 0); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func packPair(out []byte, a, b lzw.Code) error {
	if a >= lzw.MaxCode || b >= lzw.MaxCode {
		return ErrCodeRange
	}
	out[0] = byte(a)
	out[1] = byte(a>>8)<<4 | byte(b>>8)
	out[2] = byte(b)
	return nil
}

// Unpack reconstructs ceil(codeCount/2)*2 codes from packed, a byte string
// of length ceil(codeCount/2)*3, and returns the first codeCount of them:
// the trailing sentinel packed for an odd codeCount is discarded.
func Unpack(dst []lzw.Code, codeCount int, packed []byte) []lzw.Code {
	full := (codeCount + 1) / 2
	dst = growCodes(dst, full*2)

	for i, j := 0, 0; i < full; i, j = i+1, j+3 {
		a, b := unpackPair(packed[j : j+3])
		dst[2*i] = a
		dst[2*i+1] = b
	}
	return dst[:codeCount]
}

func unpackPair(in []byte) (a, b lzw.Code) {
	a = lzw.Code(in[0]) | lzw.Code(in[1]>>4)<<8
	b = lzw.Code(in[2]) | lzw.Code(in[1]&0x0F)<<8
	return a, b
}

func growBytes(b []byte, n int) []byte {
	if cap(b) >= n {
		return b[:n]
	}
	return make([]byte, n)
}

func growCodes(c []lzw.Code, n int) []lzw.Code {
	if cap(c) >= n {
		return c[:n]
	}
	return make([]lzw.Code, n)
}
