package script

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/PinkDiamond1/libbitcoin-system/stream"
)

func parseOp(t *testing.T, hexStr string) (Operation, *stream.Reader) {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		t.Fatalf("bad test hex %q: %v", hexStr, err)
	}
	r := stream.NewReader(bytes.NewReader(raw))
	return ReadOperation(r), r
}

func (op Operation) bytes() []byte {
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	op.WriteTo(w)
	return buf.Bytes()
}

func TestEmptyPush(t *testing.T) {
	op, _ := parseOp(t, "00")
	if op.Code != OpPushSize0 || len(op.Data) != 0 || op.Underflow {
		t.Fatalf("got %+v", op)
	}
	if got := hex.EncodeToString(op.bytes()); got != "00" {
		t.Fatalf("serialize = %s want 00", got)
	}
}

func TestMinimalSingleByteSeven(t *testing.T) {
	op := NewPushOperation([]byte{0x07})
	if op.Code != Op1+6 {
		t.Fatalf("code = %v want OP_7", op.Code)
	}
	if len(op.Data) != 0 {
		t.Fatalf("data = %x want empty (numeric push carries no data)", op.Data)
	}
	if got := hex.EncodeToString(op.bytes()); got != "57" {
		t.Fatalf("serialize = %s want 57", got)
	}
}

func TestNonMinimalSingleByteSeven(t *testing.T) {
	op := NewNominalPushOperation([]byte{0x07})
	if op.Code != Opcode(1) {
		t.Fatalf("code = %v want push_size_1", op.Code)
	}
	if got := hex.EncodeToString(op.bytes()); got != "0107" {
		t.Fatalf("serialize = %s want 0107", got)
	}
}

func TestTwoByteEnvelopeBoundary(t *testing.T) {
	data := make([]byte, 76)
	op := NewPushOperation(data)
	if op.Code != OpPushData1 {
		t.Fatalf("code = %v want OP_PUSHDATA1", op.Code)
	}
	got := op.bytes()
	if len(got) < 3 || got[0] != 0x4c || got[1] != 0x4c || got[2] != 0x00 {
		t.Fatalf("serialize prefix = %x want 4c4c00...", got[:3])
	}
}

func TestTruncatedFinalPush(t *testing.T) {
	op, r := parseOp(t, "4c05aabb")
	if op.Code != OpPushData1 {
		t.Fatalf("code = %v want OP_PUSHDATA1", op.Code)
	}
	if !op.Underflow {
		t.Fatal("want underflow")
	}
	if !bytes.Equal(op.Data, []byte{0x05, 0xaa, 0xbb}) {
		t.Fatalf("data = %x want 05aabb (length prefix plus partial payload)", op.Data)
	}
	if !r.Failed() {
		t.Fatal("want reader in failed state")
	}
	// OP_PUSHDATA1 itself is a consensus-valid opcode, so IsValid is
	// unaffected; IsUnderflow is the signal a caller must check to
	// reject this operation for execution.
	if !op.IsValid() {
		t.Fatal("a truncated push of an otherwise-valid opcode is still IsValid")
	}
	if !op.IsUnderflow() {
		t.Fatal("want IsUnderflow")
	}
}

func TestBoundaryPushLengths(t *testing.T) {
	cases := []struct {
		n    int
		code Opcode
	}{
		{0, OpPushSize0},
		{1, Opcode(1)},
		{75, Opcode(75)},
		{76, OpPushData1},
		{255, OpPushData1},
		{256, OpPushData2},
		{65535, OpPushData2},
		{65536, OpPushData4},
	}
	for _, c := range cases {
		data := make([]byte, c.n)
		if c.n > 0 {
			data[0] = 0xaa // avoid accidental numeric substitution at n==1
		}
		got := NominalOpcodeFromData(data)
		if got != c.code {
			t.Errorf("len %d: opcode = %v want %v", c.n, got, c.code)
		}
	}
}

func TestIsOversized(t *testing.T) {
	if NewNominalPushOperation(make([]byte, MaxPushDataSize)).IsOversized() {
		t.Fatal("520 bytes must not be oversized")
	}
	if !NewNominalPushOperation(make([]byte, MaxPushDataSize+1)).IsOversized() {
		t.Fatal("521 bytes must be oversized")
	}
}

func TestNumericPushOfZeroUsesPushSize0(t *testing.T) {
	op := NewPushOperation(nil)
	if op.Code != OpPushSize0 {
		t.Fatalf("code = %v want OP_0", op.Code)
	}
}

func TestRoundTripValidOperations(t *testing.T) {
	ops := []Operation{
		NewOperation(OpDup),
		NewOperation(OpHash160),
		NewPushOperation([]byte{0x81}),
		NewPushOperation(bytes.Repeat([]byte{0xcd}, 20)),
		NewNominalPushOperation(bytes.Repeat([]byte{0xef}, 300)),
		NewOperation(OpCheckSig),
	}
	for _, op := range ops {
		raw := op.bytes()
		r := stream.NewReader(bytes.NewReader(raw))
		got := ReadOperation(r)
		if got.Code != op.Code || !bytes.Equal(got.Data, op.Data) || got.Underflow {
			t.Errorf("round trip of %v: got %+v", op, got)
		}
	}
}

func TestMinimalPushNeverLongerThanNominal(t *testing.T) {
	samples := [][]byte{
		nil,
		{0x00},
		{0x01},
		{0x10},
		{0x81},
		{0x7f},
		bytes.Repeat([]byte{0x01}, 2),
		bytes.Repeat([]byte{0x01}, 75),
		bytes.Repeat([]byte{0x01}, 76),
	}
	for _, data := range samples {
		minimal := NewPushOperation(data).bytes()
		nominal := NewNominalPushOperation(data).bytes()
		if len(minimal) > len(nominal) {
			t.Errorf("data %x: minimal (%d bytes) longer than nominal (%d bytes)", data, len(minimal), len(nominal))
		}
	}
}

func TestIsMinimalAndNominalPush(t *testing.T) {
	min := NewPushOperation([]byte{0x07})
	if !min.IsMinimalPush() {
		t.Fatal("want minimal")
	}
	nom := NewNominalPushOperation([]byte{0x07})
	if nom.IsMinimalPush() {
		t.Fatal("push_size_1 of a single positive byte is not minimal")
	}
	if !nom.IsNominalPush() {
		t.Fatal("want nominal")
	}
}

func TestDefaultOperationIsInvalid(t *testing.T) {
	op, _ := parseOp(t, "")
	if op.IsValid() {
		t.Fatal("default operation must be invalid")
	}
	if !op.Underflow {
		t.Fatal("default operation is reported via underflow, not a separate error")
	}
}

func TestSerializedSize(t *testing.T) {
	op := NewNominalPushOperation(bytes.Repeat([]byte{0x01}, 300))
	if got, want := op.SerializedSize(), uint32(1+2+300); got != want {
		t.Fatalf("serialized size = %d want %d", got, want)
	}
}
