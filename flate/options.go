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

// Options configures decoding. A nil *Options means DefaultOptions.
type Options struct {
	// VerifyStoredLength rejects stored blocks whose NLEN field is not the
	// ones' complement of LEN. When false the field is read and ignored.
	VerifyStoredLength bool
	// MaxOutput caps the number of decompressed bytes. Zero means no limit.
	MaxOutput int64
	// Dict is a preset dictionary. Back-references may reach into its last
	// MaxHist bytes; it is not part of the output.
	Dict []byte
}

// DefaultOptions returns strict options with no output limit and no
// dictionary.
func DefaultOptions() *Options {
	return &Options{VerifyStoredLength: true}
}
