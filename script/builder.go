package script

import "github.com/PinkDiamond1/libbitcoin-system/errors"

// Builder assembles a Script one operation at a time. It is a thin
// convenience wrapper over the Operation constructors: every Add
// method appends exactly one operation and returns the builder so
// calls can be chained.
type Builder struct {
	ops Script
	err error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddOp appends a single opcode that carries no payload. A
// payload-carrying push opcode is rejected; OP_0, OP_1NEGATE and
// OP_1..OP_16 are accepted.
func (b *Builder) AddOp(c Opcode) *Builder {
	if b.err != nil {
		return b
	}
	if c.IsPush() && c.IsPayload() {
		b.err = errBuilderPushOpcode
		return b
	}
	b.ops = append(b.ops, NewOperation(c))
	return b
}

// AddData appends the minimal-push encoding of data. A data item
// larger than MaxPushDataSize is rejected: there is no way to encode
// it that a consensus-valid script interpreter would accept.
func (b *Builder) AddData(data []byte) *Builder {
	if b.err != nil {
		return b
	}
	if len(data) > MaxPushDataSize {
		b.err = errBuilderDataTooLarge
		return b
	}
	b.ops = append(b.ops, NewPushOperation(data))
	return b
}

// AddInt64 appends the minimal numeric push of n.
func (b *Builder) AddInt64(n int64) *Builder {
	if b.err != nil {
		return b
	}
	b.ops = append(b.ops, NewPushOperation(scriptNum(n).Bytes()))
	return b
}

// Script returns the assembled script and any error recorded along
// the way. Once an error has occurred, every subsequent Add call is a
// no-op and Script continues to return that same error.
func (b *Builder) Script() (Script, error) {
	return b.ops, b.err
}

var (
	errBuilderPushOpcode   = errors.New("script: AddOp called with a payload-carrying opcode; use AddData")
	errBuilderDataTooLarge = errors.New("script: AddData called with a payload larger than MaxPushDataSize")
)
