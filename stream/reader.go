// Package stream implements the byte-level wire primitives shared by the
// script and witness decoders: little-endian integers, Bitcoin varints,
// and length-prefixed byte strings, all read through a reader that turns
// short reads into a sticky failure flag instead of a returned error.
//
// The Bitcoin varint convention is: a leading byte b0 < 0xfd denotes b0
// itself; 0xfd prefixes a 2-byte little-endian value; 0xfe prefixes a
// 4-byte value; 0xff prefixes an 8-byte value. No canonical (minimal)
// encoding is enforced here; callers that need that guarantee (such as
// consensus validation) must check it themselves.
package stream

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/PinkDiamond1/libbitcoin-system/encoding/bitcoin"
	"github.com/PinkDiamond1/libbitcoin-system/errors"
)

// Reader is a polymorphic byte source with a sticky failure flag. Once a
// read comes up short, Reader stops consulting the underlying io.Reader
// and every subsequent Read* call returns the zero value while Failed
// continues to report true.
type Reader struct {
	r      *errors.Reader
	failed bool
}

// NewReader returns a Reader that pulls bytes from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: errors.NewReader(r)}
}

// Failed reports whether any prior read on this Reader came up short.
// The flag is sticky: once set it is never cleared.
func (r *Reader) Failed() bool {
	return r.failed || r.r.Err() != nil
}

func (r *Reader) fail() {
	r.failed = true
}

// fill reads exactly len(buf) bytes, marking the reader failed (and
// preserving whatever prefix was read) on a short read.
func (r *Reader) fill(buf []byte) bool {
	n, ok := r.fillPartial(buf)
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return ok
}

// fillPartial reads up to len(buf) bytes into buf, returning the number
// of bytes actually placed at the front of buf and whether the read
// fully succeeded. It marks the reader failed on a short read.
func (r *Reader) fillPartial(buf []byte) (n int, ok bool) {
	if r.Failed() {
		return 0, false
	}
	n, err := io.ReadFull(r.r, buf)
	if err != nil {
		r.fail()
		return n, false
	}
	return n, true
}

// ReadByte reads a single byte, or 0 if the reader has failed.
func (r *Reader) ReadByte() byte {
	var b [1]byte
	r.fill(b[:])
	return b[0]
}

// ReadUint16LE reads a 2-byte little-endian unsigned integer.
func (r *Reader) ReadUint16LE() uint16 {
	var b [2]byte
	r.fill(b[:])
	return binary.LittleEndian.Uint16(b[:])
}

// ReadUint32LE reads a 4-byte little-endian unsigned integer.
func (r *Reader) ReadUint32LE() uint32 {
	var b [4]byte
	r.fill(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// ReadUint64LE reads an 8-byte little-endian unsigned integer.
func (r *Reader) ReadUint64LE() uint64 {
	var b [8]byte
	r.fill(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// ReadVarint reads a Bitcoin variable-length unsigned integer.
func (r *Reader) ReadVarint() uint64 {
	if r.Failed() {
		return 0
	}
	v, err := bitcoin.ReadVarint(r.r)
	if err != nil {
		r.fail()
		return 0
	}
	return v
}

// ReadBytes reads exactly n bytes. On a short read it returns whatever
// prefix was actually consumed, zero-padded to length n, and marks the
// reader failed; the caller can trim the result to BytesRead() - start
// if it needs the true truncated prefix.
func (r *Reader) ReadBytes(n uint32) []byte {
	buf := make([]byte, n)
	r.fill(buf)
	return buf
}

// ReadBytesPartial reads up to n bytes and returns exactly the bytes
// that were consumed before any failure (never zero-padded), along with
// whether the full n bytes were read. It is used by operation decoding
// to preserve the raw image of a truncated final push.
func (r *Reader) ReadBytesPartial(n uint32) (data []byte, complete bool) {
	buf := make([]byte, n)
	got, ok := r.fillPartial(buf)
	return buf[:got], ok
}

// ReadVarBytes reads a varint length followed by that many bytes. If the
// declared length exceeds maxSize, the reader fails without attempting
// to read the payload (this guards against a hostile length field
// driving an unbounded allocation).
func (r *Reader) ReadVarBytes(maxSize uint64) []byte {
	if r.Failed() {
		return nil
	}
	max := maxSize
	if max > math.MaxInt32 {
		max = math.MaxInt32
	}
	data, err := bitcoin.ReadBytes(r.r, int(max))
	if err != nil {
		r.fail()
		return nil
	}
	return data
}

// BytesRead returns the number of bytes successfully consumed from the
// underlying source.
func (r *Reader) BytesRead() int64 {
	return r.r.BytesRead()
}
