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

import "fmt"

// BlockType is the 2-bit BTYPE field of a block header.
type BlockType uint8

const (
	Stored         BlockType = 0
	FixedHuffman   BlockType = 1
	DynamicHuffman BlockType = 2
)

func (t BlockType) String() string {
	switch t {
	case Stored:
		return "stored"
	case FixedHuffman:
		return "fixed"
	case DynamicHuffman:
		return "dynamic"
	default:
		return fmt.Sprintf("reserved(%d)", uint8(t))
	}
}

// SymbolKind says how a decoded Symbol contributes to the output.
type SymbolKind uint8

const (
	Literal    SymbolKind = iota // one byte of output
	Reference                    // copy Length bytes from Distance back
	EndOfBlock                   // code 256
	Reserved                     // codes 286 and 287, no output
)

// A Symbol is one decoded literal/length code, fully resolved.
type Symbol struct {
	Kind     SymbolKind
	Code     uint16 // literal/length alphabet code; literal value for stored data
	Length   uint16 // Reference only, 3..258
	Distance uint16 // Reference only, 1..32768
}

// Lit returns a Literal symbol for b.
func Lit(b byte) Symbol { return Symbol{Kind: Literal, Code: uint16(b)} }

// Ref returns a Reference symbol. Code is left zero.
func Ref(length, distance int) Symbol {
	return Symbol{Kind: Reference, Length: uint16(length), Distance: uint16(distance)}
}

// Byte returns the literal value of a Literal symbol.
func (s Symbol) Byte() byte { return byte(s.Code) }

func (s Symbol) String() string {
	switch s.Kind {
	case Literal:
		return fmt.Sprintf("lit(%q)", s.Byte())
	case Reference:
		return fmt.Sprintf("ref(%d,%d)", s.Length, s.Distance)
	case EndOfBlock:
		return "eob"
	default:
		return fmt.Sprintf("reserved(%d)", s.Code)
	}
}

// StoredHeader holds the LEN and NLEN fields of a stored block.
type StoredHeader struct {
	Len  uint16
	NLen uint16
}

// DynamicHeader holds the code description of a dynamic Huffman block.
type DynamicHeader struct {
	HLit  int // number of literal/length codes - 257
	HDist int // number of distance codes - 1
	HCLen int // number of code length codes - 4

	CodeLengthLengths [numCodes]uint8 // indexed by meta-symbol
	LitLenLengths     []uint8
	DistLengths       []uint8
}

// A Block is one decoded DEFLATE block.
type Block struct {
	Final   bool
	Type    BlockType
	Stored  *StoredHeader  // Stored only
	Dynamic *DynamicHeader // DynamicHuffman only
	Symbols []Symbol
}

// A Stream is the result of decoding a complete DEFLATE stream.
type Stream struct {
	Blocks []Block
	Data   []byte // decompressed output
}

// Symbols returns the symbols of every block in order.
func (s *Stream) Symbols() []Symbol {
	n := 0
	for i := range s.Blocks {
		n += len(s.Blocks[i].Symbols)
	}
	syms := make([]Symbol, 0, n)
	for i := range s.Blocks {
		syms = append(syms, s.Blocks[i].Symbols...)
	}
	return syms
}
