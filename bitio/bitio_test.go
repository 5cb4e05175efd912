// Copyright 2016 CoreOS, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bitio

import (
	"bytes"
	"testing"
)

func TestReadBitsLSBFirst(t *testing.T) {
	// 0xb5 = 1011_0101, 0x0f = 0000_1111
	r := NewReader([]byte{0xb5, 0x0f})

	tests := []struct {
		n    uint
		want uint32
	}{
		{1, 1},
		{2, 2},
		{3, 6},
		{4, 0xe}, // two high bits of 0xb5 then two low bits of 0x0f
		{6, 0x03},
	}

	for i, tt := range tests {
		got, err := r.ReadBits(tt.n)
		if err != nil {
			t.Fatalf("case %d: err=%v", i, err)
		}
		if got != tt.want {
			t.Errorf("case %d: got %#x, want %#x", i, got, tt.want)
		}
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", r.Remaining())
	}
}

func TestReadBitsExhausted(t *testing.T) {
	r := NewReader([]byte{0xff})
	if _, err := r.ReadBits(5); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadBits(4); err != ErrExhausted {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
	// A failed read consumes nothing.
	if r.Remaining() != 3 {
		t.Errorf("remaining = %d, want 3", r.Remaining())
	}
	if v, err := r.ReadBits(3); err != nil || v != 7 {
		t.Errorf("got %d, %v", v, err)
	}
	if _, err := r.ReadBit(); err != ErrExhausted {
		t.Errorf("err = %v, want ErrExhausted", err)
	}
}

func TestPeekPadsWithZeros(t *testing.T) {
	r := NewReader([]byte{0x81})
	r.SkipBits(4)
	v, got := r.PeekBits(9)
	if got != 4 || v != 0x8 {
		t.Errorf("PeekBits = %#x, %d; want 0x8, 4", v, got)
	}
	if r.Offset() != 4 {
		t.Errorf("offset = %d, want 4", r.Offset())
	}
}

func TestRead32Unaligned(t *testing.T) {
	r := NewReader([]byte{0xf0, 0x12, 0x34, 0x56, 0x78, 0x0a})
	r.SkipBits(4)
	v, err := r.ReadBits(32)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x8563412f {
		t.Errorf("got %#x", v)
	}
}

func TestAlignAndReadBytes(t *testing.T) {
	r := NewReader([]byte{0x07, 'a', 'b', 'c', 0x00})
	if _, err := r.ReadBits(3); err != nil {
		t.Fatal(err)
	}
	r.AlignToByte()
	if !r.Aligned() || r.Offset() != 8 {
		t.Fatalf("offset after align = %d", r.Offset())
	}
	b, err := r.ReadBytes(3)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte("abc")) {
		t.Errorf("got %q", b)
	}
	// Aligning an aligned cursor is a no-op.
	r.AlignToByte()
	if r.Offset() != 32 {
		t.Errorf("offset = %d, want 32", r.Offset())
	}
	if _, err := r.ReadBytes(2); err != ErrExhausted {
		t.Errorf("err = %v, want ErrExhausted", err)
	}
}

func TestReadBytesUnaligned(t *testing.T) {
	r := NewReader([]byte{0x10, 0x32, 0x04})
	r.SkipBits(4)
	b, err := r.ReadBytes(2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte{0x21, 0x43}) {
		t.Errorf("got % x", b)
	}
}
