package script

import (
	"github.com/PinkDiamond1/libbitcoin-system/stream"
)

// MaxPushDataSize is the largest payload a single push operation may
// carry under consensus rules. A push whose data exceeds this is
// oversized and therefore never valid, regardless of how it is encoded.
const MaxPushDataSize = 520

// Operation is a single parsed script instruction: an opcode, the push
// payload it carries (if any), and whether the stream ran out of bytes
// before the payload the opcode promised could be fully read.
//
// An Operation with Underflow set is not garbage: its Code and every
// byte read after the opcode - length prefix included, even if that
// prefix itself was only partially read - are kept in Data so the
// operation can still be serialized back to its original (truncated)
// wire image. This mirrors how a damaged or deliberately malformed
// script is round-tripped rather than rejected outright - rejection is
// the interpreter's job, not the decoder's.
type Operation struct {
	Code      Opcode
	Data      []byte
	Underflow bool
}

// NewOperation returns a payload-free operation for the given opcode.
// It panics if c is a payload-carrying push opcode (push_size_1..75,
// OP_PUSHDATA1/2/4); use NewPushOperation for those. OP_0, OP_1NEGATE
// and OP_1..OP_16 are accepted.
func NewOperation(c Opcode) Operation {
	if c.IsPush() && c.IsPayload() {
		panic("script: NewOperation called with a payload-carrying opcode")
	}
	return Operation{Code: c}
}

// NewPushOperation returns the minimal-push encoding of data: the
// shortest opcode sequence that places data on the stack, preferring
// the numeric opcodes (OP_0, OP_1NEGATE, OP_1..OP_16) over a literal
// push_size opcode whenever data round-trips through one of them. When
// the minimal opcode is numeric, the payload is dropped: the opcode
// alone carries the value, so there is nothing left to store.
func NewPushOperation(data []byte) Operation {
	code := MinimalOpcodeFromData(data)
	if code.IsNumeric() || code == OpPushSize0 {
		return Operation{Code: code}
	}
	return Operation{Code: code, Data: data}
}

// NewNominalPushOperation returns the literal-size encoding of data:
// the push_size/push_data opcode matching data's length exactly, never
// substituting a numeric opcode even when one would be shorter.
func NewNominalPushOperation(data []byte) Operation {
	return Operation{Code: NominalOpcodeFromData(data), Data: data}
}

// OpcodeFromSize returns the literal push opcode that declares a
// payload of exactly size bytes: an embedded-length opcode for size <=
// 75, otherwise the smallest of OP_PUSHDATA1/2/4 that can hold size.
func OpcodeFromSize(size int) Opcode {
	switch {
	case size <= int(OpPushData1Max):
		return Opcode(size)
	case size <= 0xff:
		return OpPushData1
	case size <= 0xffff:
		return OpPushData2
	default:
		return OpPushData4
	}
}

// MinimalOpcodeFromData returns the shortest opcode that pushes data,
// substituting a numeric opcode for the handful of byte strings that
// have one.
func MinimalOpcodeFromData(data []byte) Opcode {
	if len(data) == 0 {
		return OpPushSize0
	}
	if len(data) == 1 {
		switch {
		case data[0] == 0x81:
			return Op1Negate
		case data[0] >= 1 && data[0] <= 16:
			return OpcodeFromPositive(int(data[0]))
		}
	}
	return OpcodeFromSize(len(data))
}

// NominalOpcodeFromData returns the literal-size opcode for data,
// never substituting a numeric opcode.
func NominalOpcodeFromData(data []byte) Opcode {
	return OpcodeFromSize(len(data))
}

// OpcodeFromVersion returns the opcode that encodes a witness program
// version number (0, or 1 through 16).
func OpcodeFromVersion(version int) Opcode {
	if version == 0 {
		return OpPushSize0
	}
	return OpcodeFromPositive(version)
}

// OpcodeFromPositive returns OP_1..OP_16 for value in [1, 16]. It
// panics outside that range: callers must check IsPositive's domain
// themselves.
func OpcodeFromPositive(value int) Opcode {
	if value < 1 || value > 16 {
		panic("script: OpcodeFromPositive value out of range")
	}
	return Opcode(int(Op1) + value - 1)
}

// OpcodeToPositive returns the integer value of a push_positive opcode
// (OP_1..OP_16). The caller must confirm IsPositive first.
func OpcodeToPositive(c Opcode) int {
	return int(c) - int(Op1) + 1
}

// ReadOperation parses a single operation from r. The returned
// operation's Underflow flag, not a separate error, reports whether
// the stream had enough bytes to satisfy the opcode's declared
// payload; callers should check r.Failed() only for errors that
// predate reading the opcode itself (there are none at this layer,
// since even reading the opcode byte off an exhausted stream yields
// a well-formed, payload-less OP_INVALIDOPCODE-shaped zero operation).
func ReadOperation(r *stream.Reader) Operation {
	if r.Failed() {
		return Operation{Code: OpInvalidOpcode, Underflow: true}
	}
	c := Opcode(r.ReadByte())
	if r.Failed() {
		return Operation{Code: OpInvalidOpcode, Underflow: true}
	}

	prefix, size, ok := pushPayloadSize(r, c)
	if !ok {
		return Operation{Code: c, Data: prefix, Underflow: true}
	}
	if size == 0 {
		return Operation{Code: c}
	}

	payload, complete := r.ReadBytesPartial(size)
	if !complete {
		return Operation{Code: c, Data: append(prefix, payload...), Underflow: true}
	}
	return Operation{Code: c, Data: payload}
}

// pushPayloadSize returns the number of payload bytes c declares, along
// with the raw length-prefix bytes consumed from r to decode it (nil for
// an embedded-length opcode, which declares its size in the opcode byte
// itself and consumes no prefix). ok is false if a length prefix was
// required but the stream ran out while reading it; in that case prefix
// holds whatever prefix bytes were actually read, so the caller can fold
// them into an underflowed operation's Data for an exact round trip.
func pushPayloadSize(r *stream.Reader, c Opcode) (prefix []byte, size uint32, ok bool) {
	switch c.pushKind() {
	case pushEmbeddedLen:
		return nil, uint32(c), true
	case pushOneByteLen:
		b, complete := r.ReadBytesPartial(1)
		if !complete {
			return b, 0, false
		}
		return b, uint32(b[0]), true
	case pushTwoByteLen:
		b, complete := r.ReadBytesPartial(2)
		if !complete {
			return b, 0, false
		}
		return b, uint32(b[0]) | uint32(b[1])<<8, true
	case pushFourByteLen:
		b, complete := r.ReadBytesPartial(4)
		if !complete {
			return b, 0, false
		}
		return b, uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, true
	default:
		return nil, 0, true
	}
}

// WriteTo serializes op to w in its original wire form: opcode byte,
// any length prefix the opcode requires, then the payload. An
// underflowed operation is written back exactly as it was read - opcode
// plus the raw bytes ReadOperation managed to consume after it, prefix
// included - so re-serializing a truncated script reproduces the exact
// same truncated bytes.
func (op Operation) WriteTo(w *stream.Writer) {
	w.WriteByte(op.Code.Value())
	if op.Underflow {
		// Data already holds whatever length-prefix bytes and partial
		// payload ReadOperation consumed, verbatim; there is nothing
		// left to recompute.
		w.WriteBytes(op.Data)
		return
	}
	if !op.Code.IsPayload() {
		return
	}
	switch op.Code.pushKind() {
	case pushOneByteLen:
		w.WriteByte(byte(len(op.Data)))
	case pushTwoByteLen:
		w.WriteUint16LE(uint16(len(op.Data)))
	case pushFourByteLen:
		w.WriteUint32LE(uint32(len(op.Data)))
	}
	w.WriteBytes(op.Data)
}

// SerializedSize returns the number of bytes op occupies on the wire.
func (op Operation) SerializedSize() uint32 {
	if op.Underflow {
		return 1 + uint32(len(op.Data))
	}
	size := uint32(1)
	switch op.Code.pushKind() {
	case pushOneByteLen:
		size++
	case pushTwoByteLen:
		size += 2
	case pushFourByteLen:
		size += 4
	}
	return size + uint32(len(op.Data))
}

// IsValid reports whether op names a consensus-valid opcode. It is
// false for the default operation (OP_INVALIDOPCODE with Underflow set)
// that an exhausted stream or an unparseable mnemonic produces. A
// truncated push keeps its valid opcode and is reported through
// IsUnderflow, not through IsValid, since the bytes it did manage to
// read still deserve to round-trip.
func (op Operation) IsValid() bool {
	return !op.Code.IsInvalid()
}

// IsOversized reports whether op's payload exceeds MaxPushDataSize.
// An oversized push is invalid under consensus regardless of how it is
// otherwise encoded.
func (op Operation) IsOversized() bool {
	return len(op.Data) > MaxPushDataSize
}

// PushData returns the bytes op actually pushes onto the stack,
// whether they are stored literally (a size-prefixed push) or
// synthesized from the opcode itself (a numeric push). Non-push
// opcodes return nil.
func (op Operation) PushData() []byte {
	switch {
	case !op.Code.IsPush():
		return nil
	case op.Code == Op1Negate:
		return []byte{0x81}
	case op.Code.IsPositive():
		return []byte{byte(OpcodeToPositive(op.Code))}
	default:
		return op.Data
	}
}

// IsMinimalPush reports whether op encodes its logical push data using
// the shortest possible opcode, substituting a numeric opcode where
// one applies. A non-push operation is vacuously a minimal push: it
// has no data to encode more or less economically.
func (op Operation) IsMinimalPush() bool {
	if !op.Code.IsPush() {
		return true
	}
	return op.Code == MinimalOpcodeFromData(op.PushData())
}

// IsNominalPush reports whether op encodes its logical push data using
// the literal size-based opcode, i.e. without a numeric-opcode
// substitution.
func (op Operation) IsNominalPush() bool {
	if !op.Code.IsPush() {
		return true
	}
	return op.Code == NominalOpcodeFromData(op.PushData())
}

// IsUnderflow reports whether op ran out of stream bytes while
// decoding its payload.
func (op Operation) IsUnderflow() bool {
	return op.Underflow
}
