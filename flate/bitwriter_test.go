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

package flate

// bitWriter builds DEFLATE bit streams by hand for tests.
type bitWriter struct {
	buf []byte
	n   uint // bits written
}

func (w *bitWriter) bit(b uint32) {
	if w.n%8 == 0 {
		w.buf = append(w.buf, 0)
	}
	w.buf[len(w.buf)-1] |= byte(b&1) << (w.n % 8)
	w.n++
}

// bits writes the low nb bits of v, least significant first.
func (w *bitWriter) bits(v uint32, nb uint) *bitWriter {
	for i := uint(0); i < nb; i++ {
		w.bit(v >> i)
	}
	return w
}

// code writes an nb-bit Huffman code, most significant bit first.
func (w *bitWriter) code(c uint32, nb uint) *bitWriter {
	for i := int(nb) - 1; i >= 0; i-- {
		w.bit(c >> uint(i))
	}
	return w
}

// fixed writes literal/length symbol sym with the fixed Huffman code.
func (w *bitWriter) fixed(sym int) *bitWriter {
	switch {
	case sym < 144:
		return w.code(uint32(0x30+sym), 8)
	case sym < 256:
		return w.code(uint32(0x190+sym-144), 9)
	case sym < 280:
		return w.code(uint32(sym-256), 7)
	default:
		return w.code(uint32(0xc0+sym-280), 8)
	}
}

func (w *bitWriter) align() *bitWriter {
	w.n = uint(len(w.buf)) * 8
	return w
}

func (w *bitWriter) raw(p []byte) *bitWriter {
	w.align()
	w.buf = append(w.buf, p...)
	w.n += uint(len(p)) * 8
	return w
}

// header writes BFINAL and BTYPE.
func (w *bitWriter) header(final bool, typ BlockType) *bitWriter {
	var f uint32
	if final {
		f = 1
	}
	return w.bits(f, 1).bits(uint32(typ), 2)
}

// stored writes a complete stored block.
func (w *bitWriter) stored(final bool, p []byte) *bitWriter {
	w.header(final, Stored).align()
	n := uint32(len(p))
	return w.bits(n, 16).bits(^n&0xffff, 16).raw(p)
}

func (w *bitWriter) bytes() []byte { return w.buf }
