// Copyright 2026 Blink Labs Software
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

// Package cbor provides the CBOR encoding used for records persisted in the
// account store.
//
// This package wraps github.com/fxamacker/cbor/v2. Encoding is deterministic
// (core deterministic map key ordering) so that the same record always
// produces the same bytes, and decoding rejects unknown fields.
//
// Records embed StructAsArray so that they encode as a CBOR array, which
// keeps stored values compact and makes field order part of the format:
//
//	type Record struct {
//	    cbor.StructAsArray
//	    Field1 string
//	    Field2 uint64
//	}
//
// New fields must only ever be appended.
package cbor
