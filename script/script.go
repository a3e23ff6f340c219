package script

import (
	"bytes"
	"strings"

	"github.com/PinkDiamond1/libbitcoin-system/stream"
)

// Script is an ordered sequence of operations, the unit a witness
// extracts and an interpreter executes. It is deliberately a thin
// slice type: scripts compare and copy the way any other Go slice
// does, and the interpreter that walks them is out of scope here.
type Script []Operation

// ParseScript decodes raw into a Script, consuming operations until
// the bytes are exhausted. A truncated final operation is kept with
// its Underflow flag set rather than dropped, so Bytes reproduces the
// original input exactly.
func ParseScript(raw []byte) Script {
	r := stream.NewReader(bytes.NewReader(raw))
	var ops Script
	for r.BytesRead() < int64(len(raw)) {
		op := ReadOperation(r)
		ops = append(ops, op)
		if op.IsUnderflow() {
			break
		}
	}
	return ops
}

// String disassembles s into its whitespace-separated mnemonic form,
// one token per operation; see Operation.String.
func (s Script) String() string {
	tokens := make([]string, len(s))
	for i, op := range s {
		tokens[i] = op.String()
	}
	return strings.Join(tokens, " ")
}

// Bytes serializes the script back to its wire form.
func (s Script) Bytes() []byte {
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	for _, op := range s {
		op.WriteTo(w)
	}
	return buf.Bytes()
}

// Equal reports whether s and other contain the same operations in the
// same order.
func (s Script) Equal(other Script) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].Code != other[i].Code || s[i].Underflow != other[i].Underflow {
			return false
		}
		if !bytes.Equal(s[i].Data, other[i].Data) {
			return false
		}
	}
	return true
}

// IsPushOnly reports whether every operation in s is a relaxed push,
// the shape required of a signature script spending a witness output.
func (s Script) IsPushOnly() bool {
	for _, op := range s {
		if !op.Code.IsRelaxedPush() {
			return false
		}
	}
	return true
}

// IsValid reports whether every operation in s decoded without
// underflow and names a consensus-valid opcode.
func (s Script) IsValid() bool {
	for _, op := range s {
		if !op.IsValid() || op.IsUnderflow() {
			return false
		}
	}
	return true
}

// WitnessVersion reports the version and program bytes if s has the
// shape of a witness program: OP_0..OP_16 followed by a single push of
// 2 to 40 bytes and nothing else. ok is false for any other shape.
func (s Script) WitnessVersion() (version int, program []byte, ok bool) {
	if len(s) != 2 {
		return 0, nil, false
	}
	first := s[0]
	if !first.Code.IsVersion() {
		return 0, nil, false
	}
	switch {
	case first.Code == OpPushSize0:
		version = 0
	case first.Code.IsPositive():
		version = OpcodeToPositive(first.Code)
	default:
		return 0, nil, false
	}

	second := s[1]
	if !second.Code.IsPush() || !second.Code.IsPayload() {
		return 0, nil, false
	}
	data := second.PushData()
	if len(data) < 2 || len(data) > 40 {
		return 0, nil, false
	}
	return version, data, true
}
