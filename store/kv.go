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

// Package store implements the persistent keyed storage that backs the
// per-channel account records
package store

// KVStore is an ordered key/value store
type KVStore interface {
	// Get returns the value stored at key and whether it was present
	Get(key string) ([]byte, bool, error)
	// Set stores value at key, overwriting any existing value
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error
	Delete(key string) error
	// Ascend calls fn for every key with the given prefix in ascending key
	// order, stopping early when fn returns false
	Ascend(prefix string, fn func(key string, value []byte) bool) error
}

// Flusher is implemented by stores that buffer writes in memory and persist
// them on demand
type Flusher interface {
	Flush() error
}

func copyBytes(src []byte) []byte {
	if src == nil {
		return nil
	}
	ret := make([]byte, len(src))
	copy(ret, src)
	return ret
}
