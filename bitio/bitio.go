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

// Package bitio implements the bit cursor used by DEFLATE decoding. Bits are
// consumed least-significant-bit first within each byte, as described in
// RFC 1951 section 3.1.1.
package bitio

import "errors"

// ErrExhausted is returned when a read needs more bits than remain.
var ErrExhausted = errors.New("bitio: input exhausted")

// A Reader is a bit cursor over an in-memory byte slice.
type Reader struct {
	data []byte
	pos  uint // bit position of the next unread bit
}

// NewReader returns a Reader positioned at the first bit of p.
func NewReader(p []byte) *Reader {
	return &Reader{data: p}
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() uint {
	return uint(len(r.data))*8 - r.pos
}

// Offset returns the number of bits consumed so far.
func (r *Reader) Offset() int64 {
	return int64(r.pos)
}

// Aligned reports whether the cursor sits on a byte boundary.
func (r *Reader) Aligned() bool {
	return r.pos&7 == 0
}

// PeekBits returns up to n bits (n <= 32) without consuming them, along with
// the number of bits actually available. Missing bits read as zero.
func (r *Reader) PeekBits(n uint) (uint32, uint) {
	if avail := r.Remaining(); n > avail {
		n = avail
	}
	if n == 0 {
		return 0, 0
	}
	i := int(r.pos >> 3)
	var v uint64
	// 5 bytes hold any 32 bit window starting inside the first byte.
	for k := 0; k < 5 && i+k < len(r.data); k++ {
		v |= uint64(r.data[i+k]) << (8 * uint(k))
	}
	v >>= r.pos & 7
	return uint32(v & (1<<n - 1)), n
}

// SkipBits consumes n bits. It consumes nothing if fewer than n remain.
func (r *Reader) SkipBits(n uint) error {
	if n > r.Remaining() {
		return ErrExhausted
	}
	r.pos += n
	return nil
}

// ReadBits consumes n bits (n <= 32) and returns them as an unsigned value,
// the first bit read being the least significant.
func (r *Reader) ReadBits(n uint) (uint32, error) {
	if n > 32 {
		panic("bitio: ReadBits count out of range")
	}
	v, got := r.PeekBits(n)
	if got < n {
		return 0, ErrExhausted
	}
	r.pos += n
	return v, nil
}

// ReadBit consumes a single bit.
func (r *Reader) ReadBit() (uint8, error) {
	v, err := r.ReadBits(1)
	return uint8(v), err
}

// AlignToByte discards any bits left in the current partial byte.
func (r *Reader) AlignToByte() {
	r.pos = (r.pos + 7) &^ 7
}

// ReadByte consumes the next 8 bits. On an aligned cursor that is the next
// input byte.
func (r *Reader) ReadByte() (byte, error) {
	v, err := r.ReadBits(8)
	return byte(v), err
}

// ReadBytes consumes n whole bytes and returns a copy of them.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || uint(n)*8 > r.Remaining() {
		return nil, ErrExhausted
	}
	out := make([]byte, n)
	if r.Aligned() {
		i := int(r.pos >> 3)
		copy(out, r.data[i:i+n])
		r.pos += uint(n) * 8
		return out, nil
	}
	for k := range out {
		out[k], _ = r.ReadByte()
	}
	return out, nil
}
