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
	"errors"
	"strconv"
)

// Decode failures. They are wrapped in a *CorruptInputError by Decode, so
// test for them with errors.Is.
var (
	ErrStreamExhausted      = errors.New("input ended inside a block")
	ErrInvalidBlockType     = errors.New("reserved block type 3")
	ErrMalformedCodeLengths = errors.New("malformed code length sequence")
	ErrInvalidCodeLengths   = errors.New("code lengths do not form a prefix code")
	ErrDanglingReference    = errors.New("back-reference distance exceeds output")
	ErrUnknownSymbol        = errors.New("symbol out of range")
	ErrStoredLengthMismatch = errors.New("stored block length check failed")
	ErrOutputLimit          = errors.New("output exceeds configured limit")
)

// A CorruptInputError reports a decode failure at a given bit offset into the
// compressed stream.
type CorruptInputError struct {
	Offset int64 // bit offset where the error was detected
	Err    error
}

func (e *CorruptInputError) Error() string {
	return "flate: corrupt input before bit offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Err.Error()
}

func (e *CorruptInputError) Unwrap() error { return e.Err }

// A ReadError reports an error encountered while reading input.
type ReadError struct {
	Offset int64 // byte offset where error occurred
	Err    error // error returned by underlying Read
}

func (e *ReadError) Error() string {
	return "flate: read error at offset " + strconv.FormatInt(e.Offset, 10) + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }
