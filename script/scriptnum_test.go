// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"bytes"
	"testing"
)

func TestScriptNumBytes(t *testing.T) {
	cases := []struct {
		n    int64
		want []byte
	}{
		{0, nil},
		{127, []byte{0x7f}},
		{-127, []byte{0xff}},
		{128, []byte{0x80, 0x00}},
		{-128, []byte{0x80, 0x80}},
		{129, []byte{0x81, 0x00}},
		{-129, []byte{0x81, 0x80}},
		{256, []byte{0x00, 0x01}},
		{-256, []byte{0x00, 0x81}},
		{32767, []byte{0xff, 0x7f}},
		{-32767, []byte{0xff, 0xff}},
		{32768, []byte{0x00, 0x80, 0x00}},
		{-32768, []byte{0x00, 0x80, 0x80}},
	}
	for _, c := range cases {
		got := scriptNum(c.n).Bytes()
		if !bytes.Equal(got, c.want) {
			t.Errorf("scriptNum(%d).Bytes() = %x want %x", c.n, got, c.want)
		}
	}
}

func TestDecodeScriptNumRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 127, -127, 128, -128, 32767, -32768} {
		encoded := scriptNum(n).Bytes()
		got, err := DecodeScriptNum(encoded, true, maxScriptNumLen)
		if err != nil {
			t.Fatalf("DecodeScriptNum(%x): %v", encoded, err)
		}
		if got != n {
			t.Errorf("DecodeScriptNum(%x) = %d want %d", encoded, got, n)
		}
	}
}

func TestDecodeScriptNumRejectsNonMinimal(t *testing.T) {
	_, err := DecodeScriptNum([]byte{0x7f, 0x00}, true, maxScriptNumLen)
	if err != ErrNonMinimalData {
		t.Fatalf("err = %v want ErrNonMinimalData", err)
	}
	_, err = DecodeScriptNum([]byte{0x80}, true, maxScriptNumLen)
	if err != ErrNonMinimalData {
		t.Fatalf("err = %v want ErrNonMinimalData (negative zero)", err)
	}
}

func TestDecodeScriptNumRejectsOverlong(t *testing.T) {
	_, err := DecodeScriptNum(make([]byte, 9), false, maxScriptNumLen)
	if err != ErrNumberTooBig {
		t.Fatalf("err = %v want ErrNumberTooBig", err)
	}
}

func TestDecodeScriptNumEmptyIsZero(t *testing.T) {
	n, err := DecodeScriptNum(nil, true, maxScriptNumLen)
	if err != nil || n != 0 {
		t.Fatalf("DecodeScriptNum(nil) = %d, %v want 0, nil", n, err)
	}
}
