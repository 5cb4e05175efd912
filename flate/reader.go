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

import (
	"io"
	"io/ioutil"
)

// Resetter resets a ReadCloser returned by NewReader or NewReaderDict to
// to switch to a new underlying Reader. This permits reusing a ReadCloser
// instead of allocating a new one.
type Resetter interface {
	// Reset discards any buffered data and resets the Resetter as if it was
	// newly initialized with the given reader.
	Reset(r io.Reader, dict []byte) error
}

// reader adapts Decode to io.Reader. The whole compressed stream is consumed
// and decoded on the first Read; output is only handed out once decoding has
// succeeded.
type reader struct {
	r       io.Reader
	opts    Options
	decoded bool
	toRead  []byte
	err     error
}

func (z *reader) inflate() {
	z.decoded = true
	in, err := ioutil.ReadAll(z.r)
	if err != nil {
		z.err = &ReadError{Offset: int64(len(in)), Err: err}
		return
	}
	s, err := DecodeBytes(in, &z.opts)
	if err != nil {
		z.err = err
		return
	}
	z.toRead = s.Data
	z.err = io.EOF
}

func (z *reader) Read(b []byte) (int, error) {
	if !z.decoded {
		z.inflate()
	}
	if len(z.toRead) > 0 {
		n := copy(b, z.toRead)
		z.toRead = z.toRead[n:]
		return n, nil
	}
	return 0, z.err
}

func (z *reader) Close() error {
	if z.err == io.EOF {
		return nil
	}
	return z.err
}

func (z *reader) Reset(r io.Reader, dict []byte) error {
	opts := z.opts
	opts.Dict = dict
	*z = reader{r: r, opts: opts}
	return nil
}

// NewReader returns a new ReadCloser that can be used
// to read the uncompressed version of r.
// It is the caller's responsibility to call Close on the ReadCloser
// when finished reading.
//
// The ReadCloser returned by NewReader also implements Resetter.
func NewReader(r io.Reader) io.ReadCloser {
	return NewReaderOptions(r, nil)
}

// NewReaderDict is like NewReader but initializes the reader
// with a preset dictionary. The returned Reader behaves as if
// the uncompressed data stream started with the given dictionary,
// which has already been read.
func NewReaderDict(r io.Reader, dict []byte) io.ReadCloser {
	opts := DefaultOptions()
	opts.Dict = dict
	return NewReaderOptions(r, opts)
}

// NewReaderOptions is like NewReader but decodes with opts.
func NewReaderOptions(r io.Reader, opts *Options) io.ReadCloser {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &reader{r: r, opts: *opts}
}
