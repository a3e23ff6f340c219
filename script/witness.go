package script

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/PinkDiamond1/libbitcoin-system/stream"
)

// maxWitnessItemSize bounds a single witness stack entry for
// IsPushSize, mirroring the push-payload limit enforced on ordinary
// script operations. It is deliberately not used to bound the read in
// readWitnessItems: a consensus-valid witness item (e.g. a large
// multisig witnessScript in a P2WSH spend) routinely exceeds 520 bytes,
// even though such an item could then never be produced by a single
// push operation.
const maxWitnessItemSize = MaxPushDataSize

// maxWitnessItemAllocSize bounds the allocation readWitnessItems will
// make for a single stack entry. It exists only to stop a corrupt or
// hostile length prefix from driving an unbounded allocation; no
// consensus-valid item can approach the block weight limit this
// mirrors, so it never rejects real witness data.
const maxWitnessItemAllocSize = 4_000_000

// witnessReservedMarker is the version byte that, alone on an
// otherwise-empty stack entry of the right length, marks a taproot
// annex per BIP-341's reserved-pattern carve-out for future upgrade.
const witnessReservedMarker = 0x50

// Witness is a segregated-witness stack: an ordered list of byte
// strings attached to a transaction input, together with a validity
// flag. A Witness built by NewWitness is always valid; one built by
// ReadWitness is valid iff the stream did not fail partway through.
type Witness struct {
	Stack [][]byte
	Valid bool
}

// NewWitness wraps stack as a valid witness.
func NewWitness(stack [][]byte) Witness {
	return Witness{Stack: stack, Valid: true}
}

// ReadWitness decodes a prefixed witness from r: a varint item count
// followed by that many length-prefixed items. On any read failure the
// returned witness has an empty stack and Valid is false.
func ReadWitness(r *stream.Reader) Witness {
	count := r.ReadVarint()
	return readWitnessItems(r, count)
}

// ReadWitnessUnprefixed decodes an unprefixed witness from r: exactly
// count length-prefixed items, with no leading count of its own
// because the enclosing container (e.g. a legacy-format transaction
// reconstructing its witness stack from a side channel) already knows
// how many there are.
func ReadWitnessUnprefixed(r *stream.Reader, count uint64) Witness {
	return readWitnessItems(r, count)
}

func readWitnessItems(r *stream.Reader, count uint64) Witness {
	if r.Failed() {
		return Witness{}
	}

	stack := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		item := r.ReadVarBytes(maxWitnessItemAllocSize)
		if r.Failed() {
			return Witness{}
		}
		stack = append(stack, item)
	}
	return Witness{Stack: stack, Valid: true}
}

// WriteTo serializes w to the stream. When prefixed is true, a varint
// item count is written first; when false, the caller's enclosing
// container is responsible for recording the count.
func (w Witness) WriteTo(out *stream.Writer, prefixed bool) {
	if prefixed {
		out.WriteVarint(uint64(len(w.Stack)))
	}
	for _, item := range w.Stack {
		out.WriteVarBytes(item)
	}
}

// SerializedSize returns the number of bytes w occupies on the wire
// under the given prefix mode.
func (w Witness) SerializedSize(prefixed bool) int {
	size := 0
	if prefixed {
		size += varintSize(uint64(len(w.Stack)))
	}
	for _, item := range w.Stack {
		size += varintSize(uint64(len(item))) + len(item)
	}
	return size
}

func varintSize(v uint64) int {
	switch {
	case v < 0xfd:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// String renders w as a space-separated list of hex-encoded stack
// entries, empty entries rendering as an empty pair of brackets.
func (w Witness) String() string {
	items := make([]string, len(w.Stack))
	for i, item := range w.Stack {
		items[i] = "[" + hex.EncodeToString(item) + "]"
	}
	return strings.Join(items, " ")
}

// Equal reports stack equality. Validity is deliberately excluded: an
// invalid witness with an empty stack and a valid, explicitly
// constructed empty-stack witness compare equal.
func (w Witness) Equal(other Witness) bool {
	if len(w.Stack) != len(other.Stack) {
		return false
	}
	for i := range w.Stack {
		if !bytes.Equal(w.Stack[i], other.Stack[i]) {
			return false
		}
	}
	return true
}

// IsPushSize reports whether every entry of the stack is small enough
// to have been produced by a single push operation.
func (w Witness) IsPushSize() bool {
	for _, item := range w.Stack {
		if len(item) > maxWitnessItemSize {
			return false
		}
	}
	return true
}

// IsReservedPattern reports whether the stack is the single-item,
// version-tagged shape reserved for future witness program upgrades:
// exactly one entry, 2 to 41 bytes long, whose first byte is the
// reserved version marker.
func (w Witness) IsReservedPattern() bool {
	if len(w.Stack) != 1 {
		return false
	}
	item := w.Stack[0]
	return len(item) >= 2 && len(item) < 42 && item[0] == witnessReservedMarker
}

// ExtractScript derives the script and stack an interpreter should run
// against, given the previous output's program_script. It implements
// the witness-v0 rules: a 20-byte program is P2WPKH (the synthesized
// script is the standard pubkey-hash template, and the whole stack
// passes through); a 32-byte program is P2WSH (the last stack entry is
// the serialized witness script, consumed as the program and popped
// from the returned stack). Any other program shape fails extraction.
func (w Witness) ExtractScript(programScript Script) (out Script, stack [][]byte, ok bool) {
	version, program, isProgram := programScript.WitnessVersion()
	if !isProgram || version != 0 {
		return nil, nil, false
	}

	switch len(program) {
	case 20:
		if len(w.Stack) != 2 {
			return nil, nil, false
		}
		return p2wpkhScript(program), w.Stack, true
	case 32:
		if len(w.Stack) == 0 {
			return nil, nil, false
		}
		last := w.Stack[len(w.Stack)-1]
		if sha256.Sum256(last) != [32]byte(program) {
			return nil, nil, false
		}
		return ParseScript(last), w.Stack[:len(w.Stack)-1], true
	default:
		return nil, nil, false
	}
}

// ExtractSigOpScript returns only the script used for signature
// operation counting under the witness-v0 rules: identical to the
// script half of ExtractScript, but callers that only need the count
// need not also unpack the adjusted stack.
func (w Witness) ExtractSigOpScript(programScript Script) (Script, bool) {
	out, _, ok := w.ExtractScript(programScript)
	return out, ok
}

func p2wpkhScript(pubKeyHash []byte) Script {
	return Script{
		NewOperation(OpDup),
		NewOperation(OpHash160),
		NewNominalPushOperation(pubKeyHash),
		NewOperation(OpEqualVerify),
		NewOperation(OpCheckSig),
	}
}

// Forks is a bitmask of the soft-fork rules active at validation time,
// passed through to the interpreter untouched.
type Forks uint32

// VerifyCode is a result from the out-of-scope script interpreter.
// VerifySuccess is the only code that indicates the witness passed.
type VerifyCode int

// VerifySuccess indicates the interpreter accepted the witness.
const VerifySuccess VerifyCode = 0

// Interpreter is the external consumer that actually executes a script
// against a transaction input. Its error taxonomy, and everything
// about how it walks operations, is out of scope here: Witness only
// needs to hand it the extracted script, stack, and signing context.
type Interpreter interface {
	Verify(tx interface{}, inputIndex int, forks Forks, programScript Script, stack [][]byte, value int64) VerifyCode
}

// Verify extracts the script and stack per ExtractScript and delegates
// to interp. A failed extraction is reported the same way the
// interpreter would report any other validation failure: as a
// non-success code, never as a Go error, since witness verification
// has no recoverable failure mode short of rejecting the spend.
func (w Witness) Verify(interp Interpreter, tx interface{}, inputIndex int, forks Forks, programScript Script, value int64) VerifyCode {
	out, stack, ok := w.ExtractScript(programScript)
	if !ok {
		return VerifyCode(-1)
	}
	return interp.Verify(tx, inputIndex, forks, out, stack, value)
}
