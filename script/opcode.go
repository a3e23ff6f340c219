// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

// Opcode identifies a single Bitcoin script instruction. Values 0x00
// through 0x60 either push data directly or encode a small constant;
// values 0x61 through 0xb9 name a control-flow, stack, arithmetic or
// crypto instruction; everything from 0xba through 0xff is unassigned
// and invalid unless a future soft fork gives it meaning.
type Opcode byte

// The push family. A push_size_N opcode (1 <= N <= 75) is simply the
// byte value N: the next N bytes of the stream are the push payload.
const (
	OpPushSize0    Opcode = 0x00
	OpPushData1Min Opcode = 0x01
	OpPushData1Max Opcode = 0x4b
	OpPushData1    Opcode = 0x4c // push_one_size: 1-byte length prefix
	OpPushData2    Opcode = 0x4d // push_two_size: 2-byte LE length prefix
	OpPushData4    Opcode = 0x4e // push_four_size: 4-byte LE length prefix
	Op1Negate      Opcode = 0x4f // push_negative_1
	OpReserved     Opcode = 0x50 // reserved_80
	Op1            Opcode = 0x51 // push_positive_1
	Op16           Opcode = 0x60 // push_positive_16
)

// Named opcodes, 0x61-0xb9.
const (
	OpNop                 Opcode = 0x61
	OpVer                 Opcode = 0x62
	OpIf                  Opcode = 0x63
	OpNotIf               Opcode = 0x64
	OpVerIf               Opcode = 0x65
	OpVerNotIf            Opcode = 0x66
	OpElse                Opcode = 0x67
	OpEndIf               Opcode = 0x68
	OpVerify              Opcode = 0x69
	OpReturn              Opcode = 0x6a
	OpToAltStack          Opcode = 0x6b
	OpFromAltStack        Opcode = 0x6c
	Op2Drop               Opcode = 0x6d
	Op2Dup                Opcode = 0x6e
	Op3Dup                Opcode = 0x6f
	Op2Over               Opcode = 0x70
	Op2Rot                Opcode = 0x71
	Op2Swap               Opcode = 0x72
	OpIfDup               Opcode = 0x73
	OpDepth               Opcode = 0x74
	OpDrop                Opcode = 0x75
	OpDup                 Opcode = 0x76
	OpNip                 Opcode = 0x77
	OpOver                Opcode = 0x78
	OpPick                Opcode = 0x79
	OpRoll                Opcode = 0x7a
	OpRot                 Opcode = 0x7b
	OpSwap                Opcode = 0x7c
	OpTuck                Opcode = 0x7d
	OpCat                 Opcode = 0x7e
	OpSubstr              Opcode = 0x7f
	OpLeft                Opcode = 0x80
	OpRight               Opcode = 0x81
	OpSize                Opcode = 0x82
	OpInvert              Opcode = 0x83
	OpAnd                 Opcode = 0x84
	OpOr                  Opcode = 0x85
	OpXor                 Opcode = 0x86
	OpEqual               Opcode = 0x87
	OpEqualVerify         Opcode = 0x88
	OpReserved1           Opcode = 0x89
	OpReserved2           Opcode = 0x8a
	Op1Add                Opcode = 0x8b
	Op1Sub                Opcode = 0x8c
	Op2Mul                Opcode = 0x8d
	Op2Div                Opcode = 0x8e
	OpNegate              Opcode = 0x8f
	OpAbs                 Opcode = 0x90
	OpNot                 Opcode = 0x91
	Op0NotEqual           Opcode = 0x92
	OpAdd                 Opcode = 0x93
	OpSub                 Opcode = 0x94
	OpMul                 Opcode = 0x95
	OpDiv                 Opcode = 0x96
	OpMod                 Opcode = 0x97
	OpLShift              Opcode = 0x98
	OpRShift              Opcode = 0x99
	OpBoolAnd             Opcode = 0x9a
	OpBoolOr              Opcode = 0x9b
	OpNumEqual            Opcode = 0x9c
	OpNumEqualVerify      Opcode = 0x9d
	OpNumNotEqual         Opcode = 0x9e
	OpLessThan            Opcode = 0x9f
	OpGreaterThan         Opcode = 0xa0
	OpLessThanOrEqual     Opcode = 0xa1
	OpGreaterThanOrEqual  Opcode = 0xa2
	OpMin                 Opcode = 0xa3
	OpMax                 Opcode = 0xa4
	OpWithin              Opcode = 0xa5
	OpRipemd160           Opcode = 0xa6
	OpSha1                Opcode = 0xa7
	OpSha256              Opcode = 0xa8
	OpHash160             Opcode = 0xa9
	OpHash256             Opcode = 0xaa
	OpCodeSeparator       Opcode = 0xab
	OpCheckSig            Opcode = 0xac
	OpCheckSigVerify      Opcode = 0xad
	OpCheckMultiSig       Opcode = 0xae
	OpCheckMultiSigVerify Opcode = 0xaf
	OpNop1                Opcode = 0xb0
	OpNop2                Opcode = 0xb1
	OpNop3                Opcode = 0xb2
	OpNop4                Opcode = 0xb3
	OpNop5                Opcode = 0xb4
	OpNop6                Opcode = 0xb5
	OpNop7                Opcode = 0xb6
	OpNop8                Opcode = 0xb7
	OpNop9                Opcode = 0xb8
	OpNop10               Opcode = 0xb9
)

// Bitcoind-internal pseudo-opcodes, kept for mnemonic completeness.
const (
	OpPubkeyHash    Opcode = 0xfd
	OpPubkey        Opcode = 0xfe
	OpInvalidOpcode Opcode = 0xff
)

// pushKind classifies how an opcode's payload size is determined.
type pushKind int

const (
	notPush         pushKind = iota
	pushEmbeddedLen          // size == opcode value (push_size_0..75)
	pushOneByteLen           // push_one_size: next 1 byte is the length
	pushTwoByteLen           // push_two_size: next 2 LE bytes are the length
	pushFourByteLen          // push_four_size: next 4 LE bytes are the length
)

type opcodeEntry struct {
	name string
	push pushKind
	cat  category
}

// category is a bitmask of the opcode predicates from section 3.1 of the
// operation model: which table an opcode belongs to is a pure function
// of its byte value, so a single array of these bitmasks, built once at
// init time, answers every is_* predicate in O(1).
type category uint16

const (
	catPush category = 1 << iota
	catPayload
	catCounted
	catVersion
	catNumeric
	catPositive
	catInvalid
	catReserved
	catConditional
	catRelaxedPush
)

// table is indexed by opcode value and holds the mnemonic name and
// category bitmask for every one of the 256 possible byte values.
var table [256]opcodeEntry

// namedOpcodes holds the mnemonic names for the control-flow, stack,
// arithmetic and crypto opcodes in 0x61-0xb9, in order.
var namedOpcodes = []string{
	"OP_NOP", "OP_VER", "OP_IF", "OP_NOTIF", "OP_VERIF", "OP_VERNOTIF",
	"OP_ELSE", "OP_ENDIF", "OP_VERIFY", "OP_RETURN",
	"OP_TOALTSTACK", "OP_FROMALTSTACK", "OP_2DROP", "OP_2DUP", "OP_3DUP",
	"OP_2OVER", "OP_2ROT", "OP_2SWAP", "OP_IFDUP", "OP_DEPTH", "OP_DROP",
	"OP_DUP", "OP_NIP", "OP_OVER", "OP_PICK", "OP_ROLL", "OP_ROT",
	"OP_SWAP", "OP_TUCK",
	"OP_CAT", "OP_SUBSTR", "OP_LEFT", "OP_RIGHT", "OP_SIZE", "OP_INVERT",
	"OP_AND", "OP_OR", "OP_XOR", "OP_EQUAL", "OP_EQUALVERIFY",
	"OP_RESERVED1", "OP_RESERVED2",
	"OP_1ADD", "OP_1SUB", "OP_2MUL", "OP_2DIV", "OP_NEGATE", "OP_ABS",
	"OP_NOT", "OP_0NOTEQUAL", "OP_ADD", "OP_SUB", "OP_MUL", "OP_DIV",
	"OP_MOD", "OP_LSHIFT", "OP_RSHIFT", "OP_BOOLAND", "OP_BOOLOR",
	"OP_NUMEQUAL", "OP_NUMEQUALVERIFY", "OP_NUMNOTEQUAL", "OP_LESSTHAN",
	"OP_GREATERTHAN", "OP_LESSTHANOREQUAL", "OP_GREATERTHANOREQUAL",
	"OP_MIN", "OP_MAX", "OP_WITHIN",
	"OP_RIPEMD160", "OP_SHA1", "OP_SHA256", "OP_HASH160", "OP_HASH256",
	"OP_CODESEPARATOR", "OP_CHECKSIG", "OP_CHECKSIGVERIFY",
	"OP_CHECKMULTISIG", "OP_CHECKMULTISIGVERIFY",
	"OP_NOP1", "OP_NOP2", "OP_NOP3", "OP_NOP4", "OP_NOP5", "OP_NOP6",
	"OP_NOP7", "OP_NOP8", "OP_NOP9", "OP_NOP10",
}

// reservedOpcodes are the named opcodes (OP_RESERVED at 0x50 plus the
// listed ones in 0x61-0xb9) that are defined-but-invalid: executing any of them fails the
// script unconditionally. OP_RETURN is deliberately excluded: it is a
// valid, defined opcode whose execution always fails, which is a
// different thing from being an undefined opcode.
var reservedOpcodes = []Opcode{OpReserved, OpVer, OpVerIf, OpVerNotIf, OpReserved1, OpReserved2}

func init() {
	for v := 0; v < 256; v++ {
		table[v] = classify(Opcode(v))
	}
}

func classify(c Opcode) opcodeEntry {
	switch {
	case c == OpPushSize0:
		return opcodeEntry{name: "OP_0", push: pushEmbeddedLen, cat: catPush | catVersion | catRelaxedPush}
	case c >= OpPushData1Min && c <= OpPushData1Max:
		return opcodeEntry{
			name: dataOpName(c),
			push: pushEmbeddedLen,
			cat:  catPush | catPayload | catRelaxedPush,
		}
	case c == OpPushData1:
		return opcodeEntry{name: "OP_PUSHDATA1", push: pushOneByteLen, cat: catPush | catPayload | catRelaxedPush}
	case c == OpPushData2:
		return opcodeEntry{name: "OP_PUSHDATA2", push: pushTwoByteLen, cat: catPush | catPayload | catRelaxedPush}
	case c == OpPushData4:
		return opcodeEntry{name: "OP_PUSHDATA4", push: pushFourByteLen, cat: catPush | catPayload | catRelaxedPush}
	case c == Op1Negate:
		return opcodeEntry{name: "OP_1NEGATE", push: notPush, cat: catPush | catNumeric | catRelaxedPush}
	case c == OpReserved:
		return opcodeEntry{name: "OP_RESERVED", push: notPush, cat: catInvalid | catReserved | catRelaxedPush}
	case c >= Op1 && c <= Op16:
		return opcodeEntry{
			name: positiveOpName(c),
			push: notPush,
			cat:  catPush | catVersion | catNumeric | catPositive | catRelaxedPush,
		}
	case c >= OpNop && c <= OpNop10:
		name := namedOpcodes[int(c)-int(OpNop)]
		var cat category
		if isConditionalName(name) {
			cat |= catConditional
		}
		if isReservedOpcode(c) {
			cat |= catInvalid | catReserved
		}
		if uint8(c) > uint8(Op16) {
			cat |= catCounted
		}
		return opcodeEntry{name: name, push: notPush, cat: cat}
	case c == OpPubkeyHash:
		return opcodeEntry{name: "OP_PUBKEYHASH", push: notPush, cat: catInvalid | catCounted}
	case c == OpPubkey:
		return opcodeEntry{name: "OP_PUBKEY", push: notPush, cat: catInvalid | catCounted}
	case c == OpInvalidOpcode:
		return opcodeEntry{name: "OP_INVALIDOPCODE", push: notPush, cat: catInvalid | catCounted}
	default:
		// 0xba..0xfc: unassigned, invalid unless a soft fork claims them.
		return opcodeEntry{name: unknownOpName(c), push: notPush, cat: catInvalid | catCounted}
	}
}

func isReservedOpcode(c Opcode) bool {
	for _, r := range reservedOpcodes {
		if r == c {
			return true
		}
	}
	return false
}

func isConditionalName(name string) bool {
	switch name {
	case "OP_IF", "OP_NOTIF", "OP_ELSE", "OP_ENDIF":
		return true
	}
	return false
}

func dataOpName(c Opcode) string {
	return "OP_DATA_" + itoa(int(c))
}

func positiveOpName(c Opcode) string {
	return "OP_" + itoa(int(c)-int(Op1)+1)
}

func unknownOpName(c Opcode) string {
	return "OP_UNKNOWN" + itoa(int(c))
}

// itoa avoids pulling in strconv for a handful of call sites that run
// once at package init.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [3]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Value returns the raw byte value of the opcode.
func (c Opcode) Value() byte { return byte(c) }

// String returns the opcode's mnemonic name, e.g. "OP_DUP" or
// "OP_DATA_20". It never fails: every one of the 256 byte values has an
// entry in the table.
func (c Opcode) String() string {
	return table[c].name
}

// IsPush reports whether c pushes a value (literal or synthesized) onto
// the stack.
func (c Opcode) IsPush() bool { return table[c].cat&catPush != 0 }

// IsPayload reports whether c consumes payload bytes directly from the
// script stream (as opposed to synthesizing its push value from the
// opcode itself).
func (c Opcode) IsPayload() bool { return table[c].cat&catPayload != 0 }

// IsCounted reports whether executing c counts against the per-script
// operation budget.
func (c Opcode) IsCounted() bool { return table[c].cat&catCounted != 0 }

// IsVersion reports whether c encodes a valid witness program version
// (0 or 1..16).
func (c Opcode) IsVersion() bool { return table[c].cat&catVersion != 0 }

// IsNumeric reports whether c synthesizes a signed numeric push value
// from the opcode alone (OP_1NEGATE, OP_1..OP_16).
func (c Opcode) IsNumeric() bool { return table[c].cat&catNumeric != 0 }

// IsPositive reports whether c is OP_1..OP_16.
func (c Opcode) IsPositive() bool { return table[c].cat&catPositive != 0 }

// IsInvalid reports whether c is not a consensus-valid opcode.
func (c Opcode) IsInvalid() bool { return table[c].cat&catInvalid != 0 }

// IsReserved reports whether c is a named-but-reserved opcode: defined,
// but always fails execution (unlike an unassigned/invalid byte value).
func (c Opcode) IsReserved() bool { return table[c].cat&catReserved != 0 }

// IsConditional reports whether c is one of OP_IF/OP_NOTIF/OP_ELSE/OP_ENDIF.
func (c Opcode) IsConditional() bool { return table[c].cat&catConditional != 0 }

// IsRelaxedPush reports whether c is accepted as "push-like" under the
// relaxed push-only check used outside of strict consensus validation
// (every opcode through OP_16, including OP_RESERVED).
func (c Opcode) IsRelaxedPush() bool { return table[c].cat&catRelaxedPush != 0 }

// pushKind reports how c's push payload size is determined: embedded in
// the opcode, read from a 1-, 2- or 4-byte length prefix, or notPush if
// c carries no stream payload.
func (c Opcode) pushKind() pushKind { return table[c].push }
