package stream

import (
	"encoding/binary"
	"io"

	"github.com/PinkDiamond1/libbitcoin-system/encoding/bitcoin"
	"github.com/PinkDiamond1/libbitcoin-system/errors"
)

// Writer is a polymorphic byte sink. Writer never fails on its own; it
// only surfaces the sticky error of the underlying sink, mirroring
// Reader's sticky-failure contract on the write side.
type Writer struct {
	w *errors.Writer
}

// NewWriter returns a Writer that appends to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: errors.NewWriter(w)}
}

// Err returns the first error produced by the underlying sink, if any.
func (w *Writer) Err() error {
	return w.w.Err()
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) {
	w.w.Write([]byte{b})
}

// WriteUint16LE writes a 2-byte little-endian unsigned integer.
func (w *Writer) WriteUint16LE(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.w.Write(b[:])
}

// WriteUint32LE writes a 4-byte little-endian unsigned integer.
func (w *Writer) WriteUint32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.w.Write(b[:])
}

// WriteUint64LE writes an 8-byte little-endian unsigned integer.
func (w *Writer) WriteUint64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.w.Write(b[:])
}

// WriteVarint writes v in the Bitcoin varint format.
func (w *Writer) WriteVarint(v uint64) {
	bitcoin.WriteVarint(w.w, v)
}

// WriteBytes writes p verbatim, with no length prefix.
func (w *Writer) WriteBytes(p []byte) {
	w.w.Write(p)
}

// WriteVarBytes writes a varint length followed by p.
func (w *Writer) WriteVarBytes(p []byte) {
	bitcoin.WriteBytes(w.w, p)
}

// Written returns the number of bytes successfully written so far.
func (w *Writer) Written() int64 {
	return w.w.Written()
}
