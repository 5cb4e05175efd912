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

// Package flate implements decoding of the DEFLATE compressed data format,
// described in RFC 1951. Container formats such as gzip, zlib and PNG hand
// their compressed payload to Decode and then parse the result on their own.
package flate

import (
	"fmt"

	"github.com/coreos/inflate/bitio"
	"github.com/coreos/inflate/huffman"
)

// fixedHuffmanDecoder decodes the literal/length codes of fixed Huffman
// blocks.
var fixedHuffmanDecoder = func() *huffman.Decoder {
	h, err := huffman.Build(fixedLengths(), nil)
	if err != nil {
		panic("flate: bad fixed literal/length table: " + err.Error())
	}
	return h
}()

// Decompress state.
type decompressor struct {
	br   *bitio.Reader
	opts *Options
	out  *Materializer
}

// Decode reads one DEFLATE stream from br, block by block, until a block
// with BFINAL set has been decoded. It returns the decoded blocks together
// with the decompressed data. On return br is positioned just past the final
// block, so a container can align it and read a trailer.
//
// Every failure is fatal and no partial output is returned.
func Decode(br *bitio.Reader, opts *Options) (*Stream, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	f := &decompressor{
		br:   br,
		opts: opts,
		out:  NewMaterializer(opts.Dict, opts.MaxOutput),
	}

	var s Stream
	for {
		blk, err := f.nextBlock()
		if err != nil {
			return nil, err
		}
		for _, sym := range blk.Symbols {
			if err := f.out.Apply(sym); err != nil {
				if err == ErrOutputLimit {
					return nil, fmt.Errorf("flate: %w (%d bytes)", err, opts.MaxOutput)
				}
				return nil, f.corrupt(err)
			}
		}
		s.Blocks = append(s.Blocks, blk)
		if blk.Final {
			break
		}
	}
	s.Data = f.out.Bytes()
	return &s, nil
}

// DecodeBytes decodes the DEFLATE stream at the start of p.
func DecodeBytes(p []byte, opts *Options) (*Stream, error) {
	return Decode(bitio.NewReader(p), opts)
}

// Inflate returns the decompressed contents of the DEFLATE stream in p.
func Inflate(p []byte) ([]byte, error) {
	s, err := DecodeBytes(p, nil)
	if err != nil {
		return nil, err
	}
	return s.Data, nil
}

func (f *decompressor) corrupt(err error) error {
	switch err {
	case bitio.ErrExhausted:
		err = ErrStreamExhausted
	case huffman.ErrInvalidCode, huffman.ErrEmptyCode:
		err = ErrUnknownSymbol
	}
	return &CorruptInputError{Offset: f.br.Offset(), Err: err}
}

func (f *decompressor) nextBlock() (Block, error) {
	var blk Block
	hdr, err := f.br.ReadBits(1 + 2)
	if err != nil {
		return blk, f.corrupt(err)
	}
	blk.Final = hdr&1 == 1
	blk.Type = BlockType(hdr >> 1)

	switch blk.Type {
	case Stored:
		err = f.dataBlock(&blk)
	case FixedHuffman:
		blk.Symbols, err = f.huffmanBlock(fixedHuffmanDecoder, nil)
	case DynamicHuffman:
		var hl, hd *huffman.Decoder
		if blk.Dynamic, hl, hd, err = f.readHuffman(); err != nil {
			break
		}
		blk.Symbols, err = f.huffmanBlock(hl, hd)
	default:
		// 3 is reserved.
		err = ErrInvalidBlockType
	}
	if err != nil {
		return blk, f.corrupt(err)
	}
	return blk, nil
}

// Copy a single uncompressed data block from input to output.
func (f *decompressor) dataBlock(blk *Block) error {
	// Discard current partial byte.
	f.br.AlignToByte()

	// Length then ones-complement of length.
	v, err := f.br.ReadBits(16 + 16)
	if err != nil {
		return err
	}
	hdr := &StoredHeader{Len: uint16(v), NLen: uint16(v >> 16)}
	blk.Stored = hdr
	if f.opts.VerifyStoredLength && hdr.NLen != ^hdr.Len {
		return ErrStoredLengthMismatch
	}

	data, err := f.br.ReadBytes(int(hdr.Len))
	if err != nil {
		return err
	}
	blk.Symbols = make([]Symbol, len(data))
	for i, b := range data {
		blk.Symbols[i] = Lit(b)
	}
	return nil
}

// readHuffman reads the code description of a dynamic block (RFC 1951
// section 3.2.7) and builds its literal/length and distance decoders.
func (f *decompressor) readHuffman() (*DynamicHeader, *huffman.Decoder, *huffman.Decoder, error) {
	// HLIT[5], HDIST[5], HCLEN[4].
	v, err := f.br.ReadBits(5 + 5 + 4)
	if err != nil {
		return nil, nil, nil, err
	}
	hdr := &DynamicHeader{
		HLit:  int(v & 0x1F),
		HDist: int(v >> 5 & 0x1F),
		HCLen: int(v >> 10 & 0xF),
	}
	nlit := hdr.HLit + 257
	ndist := hdr.HDist + 1
	nclen := hdr.HCLen + 4

	// (HCLEN+4)*3 bits: code lengths in the magic codeOrder order.
	codebits := make([]uint8, nclen)
	for i := range codebits {
		x, err := f.br.ReadBits(3)
		if err != nil {
			return hdr, nil, nil, err
		}
		codebits[i] = uint8(x)
		hdr.CodeLengthLengths[codeOrder[i]] = uint8(x)
	}
	hc, err := huffman.Build(codebits, codeOrder[:])
	if err != nil {
		return hdr, nil, nil, fmt.Errorf("%w: code length code: %v", ErrInvalidCodeLengths, err)
	}

	lens, err := f.readCodeLengths(hc, nlit+ndist)
	if err != nil {
		return hdr, nil, nil, err
	}
	hdr.LitLenLengths = lens[:nlit]
	hdr.DistLengths = lens[nlit:]

	hl, err := huffman.Build(hdr.LitLenLengths, nil)
	if err != nil {
		return hdr, nil, nil, fmt.Errorf("%w: literal/length code: %v", ErrInvalidCodeLengths, err)
	}
	hd, err := huffman.Build(hdr.DistLengths, nil)
	if err != nil {
		return hdr, nil, nil, fmt.Errorf("%w: distance code: %v", ErrInvalidCodeLengths, err)
	}
	return hdr, hl, hd, nil
}

// readCodeLengths decodes exactly n code lengths written with the code
// length alphabet hc.
func (f *decompressor) readCodeLengths(hc *huffman.Decoder, n int) ([]uint8, error) {
	lens := make([]uint8, 0, n)
	for len(lens) < n {
		x, err := hc.Decode(f.br)
		if err != nil {
			return nil, err
		}
		if x < 16 {
			// Actual length.
			lens = append(lens, uint8(x))
			continue
		}

		// Repeat previous length or zero.
		var rep int
		var nb uint
		var b uint8
		switch x {
		case 16:
			if len(lens) == 0 {
				return nil, ErrMalformedCodeLengths
			}
			rep, nb, b = 3, 2, lens[len(lens)-1]
		case 17:
			rep, nb = 3, 3
		case 18:
			rep, nb = 11, 7
		default:
			return nil, ErrUnknownSymbol
		}
		extra, err := f.br.ReadBits(nb)
		if err != nil {
			return nil, err
		}
		rep += int(extra)
		if len(lens)+rep > n {
			return nil, ErrMalformedCodeLengths
		}
		for j := 0; j < rep; j++ {
			lens = append(lens, b)
		}
	}
	return lens, nil
}

// Decode the symbols of a single Huffman block.
// hl and hd are the decoders for the literal/length and distance codes.
// If hd == nil, the fixed 5-bit distance encoding of fixed Huffman blocks
// is used.
func (f *decompressor) huffmanBlock(hl, hd *huffman.Decoder) ([]Symbol, error) {
	var syms []Symbol
	for {
		v, err := hl.Decode(f.br)
		if err != nil {
			return nil, err
		}
		switch {
		case v < endOfBlock:
			syms = append(syms, Lit(byte(v)))
			continue
		case v == endOfBlock:
			// Done with huffman block; read next block.
			return append(syms, Symbol{Kind: EndOfBlock, Code: endOfBlock}), nil
		case v > lastLen:
			if v >= maxLit {
				return nil, ErrUnknownSymbol
			}
			syms = append(syms, Symbol{Kind: Reserved, Code: uint16(v)})
			continue
		}

		// otherwise, reference to older data
		length, err := f.resolve(lengthTable[v-firstLen])
		if err != nil {
			return nil, err
		}

		var dist int
		if hd == nil {
			x, err := f.br.ReadBits(5)
			if err != nil {
				return nil, err
			}
			dist = fixedDist(x)
		} else if dist, err = hd.Decode(f.br); err != nil {
			return nil, err
		}
		if dist >= numDist {
			return nil, ErrUnknownSymbol
		}
		distance, err := f.resolve(distTable[dist])
		if err != nil {
			return nil, err
		}

		syms = append(syms, Symbol{
			Kind:     Reference,
			Code:     uint16(v),
			Length:   uint16(length),
			Distance: uint16(distance),
		})
	}
}
