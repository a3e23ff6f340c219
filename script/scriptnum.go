// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"github.com/PinkDiamond1/libbitcoin-system/errors"
)

// maxScriptNumLen is the maximum number of bytes a number interpreted
// from the stack may occupy under consensus rules.
const maxScriptNumLen = 8

// ErrNumberTooBig and ErrNonMinimalData are returned by
// DecodeScriptNum when the encoded bytes cannot be interpreted as a
// consensus-valid number.
var (
	ErrNumberTooBig   = errors.New("script: number exceeds maximum length")
	ErrNonMinimalData = errors.New("script: number is not minimally encoded")
)

// scriptNum is the little-endian, sign-and-magnitude integer encoding
// used for numeric opcodes and for the decimal tokens accepted by
// ParseOperation. It stores every value as an int64; bounding that
// value to the ranges consensus actually permits is the caller's job.
type scriptNum int64

// Bytes returns n serialized as little-endian sign-and-magnitude.
//
// Example encodings:
//
//	  127 -> [0x7f]
//	 -127 -> [0xff]
//	  128 -> [0x80 0x00]
//	 -128 -> [0x80 0x80]
//	  129 -> [0x81 0x00]
//	 -129 -> [0x81 0x80]
//	  256 -> [0x00 0x01]
//	 -256 -> [0x00 0x81]
//	32767 -> [0xff 0x7f]
func (n scriptNum) Bytes() []byte {
	if n == 0 {
		return nil
	}

	isNegative := n < 0
	if isNegative {
		n = -n
	}

	result := make([]byte, 0, 9)
	for n > 0 {
		result = append(result, byte(n&0xff))
		n >>= 8
	}

	if result[len(result)-1]&0x80 != 0 {
		extra := byte(0x00)
		if isNegative {
			extra = 0x80
		}
		result = append(result, extra)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// isMinimallyEncoded reports whether v is the shortest possible
// sign-and-magnitude encoding of its value, rejecting in particular
// the negative-zero encoding [0x80].
func isMinimallyEncoded(v []byte) bool {
	if len(v) == 0 {
		return true
	}
	if v[len(v)-1]&0x7f != 0 {
		return true
	}
	// The high byte is 0x00 or 0x80 with no payload bits set: that is
	// only non-minimal unless a second byte needed its own top bit
	// clear to avoid colliding with the sign bit (e.g. 255 -> 0xff00).
	return len(v) > 1 && v[len(v)-2]&0x80 != 0
}

// DecodeScriptNum interprets v as a sign-and-magnitude integer. It
// fails if v is longer than maxLen, or if requireMinimal is set and v
// is not the shortest possible encoding of its value.
func DecodeScriptNum(v []byte, requireMinimal bool, maxLen int) (int64, error) {
	if len(v) > maxLen {
		return 0, ErrNumberTooBig
	}
	if requireMinimal && !isMinimallyEncoded(v) {
		return 0, ErrNonMinimalData
	}
	if len(v) == 0 {
		return 0, nil
	}

	var result int64
	for i, b := range v {
		result |= int64(b) << uint8(8*i)
	}

	if v[len(v)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint8(8*(len(v)-1)))
		return -result, nil
	}
	return result, nil
}
