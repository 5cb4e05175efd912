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

// Package huffman builds canonical prefix-code decoders from arrays of code
// lengths, as used by DEFLATE (RFC 1951 section 3.2.2).
//
// The decoding table is based on that of zlib. There is a lookup table of a
// fixed bit width (chunkBits). Codes shorter than the table width occupy
// several entries (each combination of trailing bits maps to the same value).
// Codes longer than the table width go through a link to an overflow table
// whose width is the maximum code length minus the chunk width.
//
// A lookup may be done without all bits present. Missing bits are zero, and
// since shorter codes sort before longer ones in a canonical code, the length
// found is a lower bound on the real one.
package huffman

import (
	"errors"
	"math/bits"
)

// MaxCodeLen is the longest code length DEFLATE can describe.
const MaxCodeLen = 15

// chunk & countMask is the number of bits,
// chunk >> valueShift is the symbol or link index.
const (
	chunkBits  = 9
	numChunks  = 1 << chunkBits
	countMask  = 15
	valueShift = 4
)

var (
	ErrInvalidLength  = errors.New("huffman: code length out of range")
	ErrOversubscribed = errors.New("huffman: over-subscribed code lengths")
	ErrIncomplete     = errors.New("huffman: incomplete code lengths")
	ErrOrderMismatch  = errors.New("huffman: more lengths than symbol order entries")
	ErrEmptyCode      = errors.New("huffman: decode from empty code")
	ErrInvalidCode    = errors.New("huffman: invalid code")
)

// BitSource is the cursor a Decoder reads codes from. PeekBits returns up to
// n bits, LSB-first, zero padded, and how many were really available.
type BitSource interface {
	PeekBits(n uint) (uint32, uint)
	SkipBits(n uint) error
}

// A Decoder decodes one prefix code.
type Decoder struct {
	min, max int               // shortest and longest code length
	chunks   [numChunks]uint32 // first-level table
	links    [][]uint32        // overflow tables
	linkMask uint32            // mask for an index into a link table
	symbols  int               // number of symbols with a nonzero length
}

// Build returns a Decoder for the canonical code described by lengths.
//
// If order is nil, lengths[i] is the code length of symbol i. Otherwise
// lengths[i] is the code length of symbol order[i], and every symbol in order
// not covered by lengths has length zero.
//
// A set of lengths that are all zero yields an empty Decoder, which fails on
// every Decode. Incomplete codes are rejected except for a lone one-bit code.
func Build(lengths []uint8, order []int) (*Decoder, error) {
	lens := lengths
	if order != nil {
		if len(lengths) > len(order) {
			return nil, ErrOrderMismatch
		}
		lens = make([]uint8, len(order))
		for i, n := range lengths {
			lens[order[i]] = n
		}
	}

	// Count number of codes of each length,
	// compute min and max length.
	var count [MaxCodeLen + 1]int
	var min, max int
	for _, n := range lens {
		if n == 0 {
			continue
		}
		if n > MaxCodeLen {
			return nil, ErrInvalidLength
		}
		if min == 0 || int(n) < min {
			min = int(n)
		}
		if int(n) > max {
			max = int(n)
		}
		count[n]++
	}

	h := new(Decoder)
	if max == 0 {
		return h, nil
	}

	left := 1
	for i := 1; i <= MaxCodeLen; i++ {
		left = left<<1 - count[i]
		if left < 0 {
			return nil, ErrOversubscribed
		}
	}
	if left > 0 && !(max == 1 && count[1] == 1) {
		return nil, ErrIncomplete
	}

	h.min, h.max = min, max
	var linkBits uint
	var numLinks int
	if max > chunkBits {
		linkBits = uint(max) - chunkBits
		numLinks = 1 << linkBits
		h.linkMask = uint32(numLinks - 1)
	}

	code := 0
	var nextcode [MaxCodeLen + 1]int
	for i := min; i <= max; i++ {
		if i == chunkBits+1 {
			// create link tables
			link := code >> 1
			h.links = make([][]uint32, numChunks-link)
			for j := link; j < numChunks; j++ {
				reverse := int(bits.Reverse16(uint16(j))) >> (16 - chunkBits)
				off := j - link
				h.chunks[reverse] = uint32(off<<valueShift | i)
				h.links[off] = make([]uint32, numLinks)
			}
		}
		nextcode[i] = code
		code += count[i]
		code <<= 1
	}

	for sym, n := range lens {
		if n == 0 {
			continue
		}
		h.symbols++
		code := nextcode[n]
		nextcode[n]++
		chunk := uint32(sym<<valueShift | int(n))
		reverse := int(bits.Reverse16(uint16(code))) >> (16 - n)
		if n <= chunkBits {
			for off := reverse; off < numChunks; off += 1 << n {
				h.chunks[off] = chunk
			}
			continue
		}
		value := h.chunks[reverse&(numChunks-1)] >> valueShift
		if value >= uint32(len(h.links)) {
			return nil, ErrOversubscribed
		}
		linktab := h.links[value]
		reverse >>= chunkBits
		for off := reverse; off < numLinks; off += 1 << (n - chunkBits) {
			linktab[off] = chunk
		}
	}
	return h, nil
}

// Empty reports whether the code has no symbols.
func (h *Decoder) Empty() bool { return h.max == 0 }

// Symbols returns the number of symbols with a nonzero code length.
func (h *Decoder) Symbols() int { return h.symbols }

// MaxLen returns the longest code length in use.
func (h *Decoder) MaxLen() int { return h.max }

// Decode reads the next symbol from src.
func (h *Decoder) Decode(src BitSource) (int, error) {
	if h.max == 0 {
		return 0, ErrEmptyCode
	}
	v, got := src.PeekBits(uint(h.max))
	chunk := h.chunks[v&(numChunks-1)]
	n := uint(chunk & countMask)
	if n > chunkBits {
		chunk = h.links[chunk>>valueShift][(v>>chunkBits)&h.linkMask]
		n = uint(chunk & countMask)
	}
	if n == 0 || n > got {
		if got < uint(h.max) {
			// Ran off the end; let the source report it.
			if err := src.SkipBits(uint(h.max)); err != nil {
				return 0, err
			}
		}
		return 0, ErrInvalidCode
	}
	if err := src.SkipBits(n); err != nil {
		return 0, err
	}
	return int(chunk >> valueShift), nil
}
