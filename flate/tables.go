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

import "math/bits"

// Alphabet sizes come from the RFC, sections 3.2.5 and 3.2.7.
const (
	maxLit   = 288 // 257+HLIT can name the two reserved codes 286 and 287
	maxDist  = 32
	numCodes = 19 // number of codes in Huffman meta-code

	endOfBlock = 256
	firstLen   = 257
	lastLen    = 285
	numDist    = 30 // distance codes 30 and 31 never occur

	// MaxHist is the largest distance a reference may reach back.
	MaxHist = 32768
)

// codeOrder is the order in which code length code lengths are sent.
var codeOrder = [...]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// An extraBits entry maps a code to a base value plus a count of extra bits
// read LSB-first and added to the base.
type extraBits struct {
	base  uint16
	extra uint8
}

// lengthTable is indexed by length code - 257.
var lengthTable = [...]extraBits{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distTable is indexed by distance code.
var distTable = [...]extraBits{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// resolve reads the extra bits for e and returns base + extra.
func (f *decompressor) resolve(e extraBits) (int, error) {
	if e.extra == 0 {
		return int(e.base), nil
	}
	v, err := f.br.ReadBits(uint(e.extra))
	if err != nil {
		return 0, err
	}
	return int(e.base) + int(v), nil
}

// fixedLengths returns the literal/length code lengths of RFC 1951
// section 3.2.6.
func fixedLengths() []uint8 {
	lens := make([]uint8, maxLit)
	for i := range lens {
		switch {
		case i < 144:
			lens[i] = 8
		case i < 256:
			lens[i] = 9
		case i < 280:
			lens[i] = 7
		default:
			lens[i] = 8
		}
	}
	return lens
}

// fixedDist turns a 5-bit field read LSB-first into the distance code it
// carries. Fixed distance codes are Huffman codes and so are packed starting
// with their most significant bit.
func fixedDist(v uint32) int {
	return int(bits.Reverse8(uint8(v << 3)))
}
