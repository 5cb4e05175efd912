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

// A Materializer performs LZ77 reconstruction: it turns a sequence of
// Symbols into bytes by appending literals and resolving back-references
// against the output produced so far.
type Materializer struct {
	buf  []byte // preset dictionary followed by the output
	base int    // length of the dictionary prefix of buf
	max  int64  // output limit, 0 for none
}

// NewMaterializer returns a Materializer whose history starts with the last
// MaxHist bytes of dict. max limits the output size; zero means no limit.
func NewMaterializer(dict []byte, max int64) *Materializer {
	if len(dict) > MaxHist {
		// Will only remember the tail.
		dict = dict[len(dict)-MaxHist:]
	}
	buf := make([]byte, len(dict), len(dict)+4096)
	copy(buf, dict)
	return &Materializer{buf: buf, base: len(dict), max: max}
}

// Len returns the number of output bytes produced.
func (m *Materializer) Len() int { return len(m.buf) - m.base }

// Bytes returns the output produced so far. It aliases the internal buffer
// and is only valid until the next append.
func (m *Materializer) Bytes() []byte { return m.buf[m.base:] }

func (m *Materializer) reserve(n int) error {
	if m.max > 0 && int64(m.Len())+int64(n) > m.max {
		return ErrOutputLimit
	}
	return nil
}

// Literal appends b.
func (m *Materializer) Literal(b byte) error {
	if err := m.reserve(1); err != nil {
		return err
	}
	m.buf = append(m.buf, b)
	return nil
}

// Reference appends length bytes copied from distance bytes back. The
// source may overlap the bytes being appended: when length > distance the
// copy repeats the last distance bytes.
func (m *Materializer) Reference(length, distance int) error {
	if distance <= 0 || distance > len(m.buf) {
		return ErrDanglingReference
	}
	if err := m.reserve(length); err != nil {
		return err
	}
	start := len(m.buf) - distance
	for length > 0 {
		// The source window grows by n every pass, so each pass copies
		// only bytes that already exist.
		n := len(m.buf) - start
		if n > length {
			n = length
		}
		m.buf = append(m.buf, m.buf[start:start+n]...)
		start += n
		length -= n
	}
	return nil
}

// Apply appends the output of s. End-of-block and reserved symbols produce
// nothing.
func (m *Materializer) Apply(s Symbol) error {
	switch s.Kind {
	case Literal:
		return m.Literal(s.Byte())
	case Reference:
		return m.Reference(int(s.Length), int(s.Distance))
	}
	return nil
}

// Materialize runs syms through a new Materializer configured by opts and
// returns the output.
func Materialize(syms []Symbol, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	m := NewMaterializer(opts.Dict, opts.MaxOutput)
	for _, s := range syms {
		if err := m.Apply(s); err != nil {
			return nil, err
		}
	}
	return m.Bytes(), nil
}
