package script

import "testing"

func TestOpcodeCategoriesArePureFunctionsOfValue(t *testing.T) {
	// The table is built once at init; calling the predicates twice for
	// every byte value must always agree with itself and with a second,
	// independently constructed Opcode of the same value.
	for v := 0; v < 256; v++ {
		a := Opcode(v)
		b := Opcode(byte(v))
		if a.IsPush() != b.IsPush() ||
			a.IsPayload() != b.IsPayload() ||
			a.IsCounted() != b.IsCounted() ||
			a.IsVersion() != b.IsVersion() ||
			a.IsNumeric() != b.IsNumeric() ||
			a.IsPositive() != b.IsPositive() ||
			a.IsInvalid() != b.IsInvalid() ||
			a.IsReserved() != b.IsReserved() ||
			a.IsConditional() != b.IsConditional() ||
			a.IsRelaxedPush() != b.IsRelaxedPush() {
			t.Fatalf("opcode 0x%02x: predicates disagree across identical values", v)
		}
	}
}

func TestPushSizeOpcodesEmbedTheirOwnLength(t *testing.T) {
	for n := 1; n <= 75; n++ {
		c := Opcode(n)
		if !c.IsPush() || !c.IsPayload() {
			t.Fatalf("opcode 0x%02x: want push+payload", n)
		}
		if c.pushKind() != pushEmbeddedLen {
			t.Fatalf("opcode 0x%02x: want embedded-length push", n)
		}
	}
}

func TestPushSize0IsVersionButNotPayload(t *testing.T) {
	if !OpPushSize0.IsPush() {
		t.Fatal("OP_0 should be a push opcode")
	}
	if OpPushSize0.IsPayload() {
		t.Fatal("OP_0 carries no stream payload")
	}
	if !OpPushSize0.IsVersion() {
		t.Fatal("OP_0 is a valid witness version")
	}
}

func TestPushDataOpcodesCarryLengthPrefixes(t *testing.T) {
	cases := []struct {
		c    Opcode
		kind pushKind
	}{
		{OpPushData1, pushOneByteLen},
		{OpPushData2, pushTwoByteLen},
		{OpPushData4, pushFourByteLen},
	}
	for _, c := range cases {
		if !c.c.IsPush() || !c.c.IsPayload() {
			t.Fatalf("%v: want push+payload", c.c)
		}
		if c.c.pushKind() != c.kind {
			t.Fatalf("%v: wrong push kind", c.c)
		}
	}
}

func TestNumericOpcodes(t *testing.T) {
	if !Op1Negate.IsNumeric() || !Op1Negate.IsPush() {
		t.Fatal("OP_1NEGATE should be numeric and push")
	}
	if Op1Negate.IsPositive() {
		t.Fatal("OP_1NEGATE is not positive")
	}
	for n := 1; n <= 16; n++ {
		c := OpcodeFromPositive(n)
		if !c.IsPositive() || !c.IsNumeric() || !c.IsPush() || !c.IsVersion() {
			t.Fatalf("OP_%d: want positive, numeric, push and version", n)
		}
		if OpcodeToPositive(c) != n {
			t.Fatalf("OpcodeToPositive(OP_%d) = %d", n, OpcodeToPositive(c))
		}
	}
}

func TestReservedOpcodesAreInvalid(t *testing.T) {
	for _, c := range reservedOpcodes {
		if !c.IsInvalid() || !c.IsReserved() {
			t.Fatalf("%v: reserved opcode must be invalid and reserved", c)
		}
	}
	if OpReturn.IsReserved() {
		t.Fatal("OP_RETURN is a defined, always-failing opcode, not a reserved one")
	}
}

func TestUnassignedRangeIsInvalid(t *testing.T) {
	for v := 0xba; v <= 0xff; v++ {
		c := Opcode(v)
		if c == OpPubkeyHash || c == OpPubkey || c == OpInvalidOpcode {
			continue
		}
		if !c.IsInvalid() {
			t.Fatalf("opcode 0x%02x: unassigned byte value must be invalid", v)
		}
	}
}

func TestConditionalOpcodes(t *testing.T) {
	for _, c := range []Opcode{OpIf, OpNotIf, OpElse, OpEndIf} {
		if !c.IsConditional() {
			t.Fatalf("%v: expected conditional", c)
		}
	}
	if OpVerify.IsConditional() {
		t.Fatal("OP_VERIFY is not a conditional opcode")
	}
}

func TestRelaxedPushCoversThroughOp16(t *testing.T) {
	for v := 0; v <= int(Op16); v++ {
		if !Opcode(v).IsRelaxedPush() {
			t.Fatalf("opcode 0x%02x: expected relaxed-push", v)
		}
	}
	if OpNop.IsRelaxedPush() {
		t.Fatal("OP_NOP should not be a relaxed push")
	}
}

func TestOpcodeStringIsNeverEmpty(t *testing.T) {
	for v := 0; v < 256; v++ {
		if Opcode(v).String() == "" {
			t.Fatalf("opcode 0x%02x: empty mnemonic", v)
		}
	}
}
