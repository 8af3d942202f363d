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

package store

import (
	"slices"
	"strings"
	"sync"
)

// MemStore is an in-memory KVStore that keeps its keys sorted
type MemStore struct {
	mu     sync.RWMutex
	keys   []string
	values map[string][]byte
}

var _ KVStore = (*MemStore)(nil)

// NewMemStore returns an empty MemStore
func NewMemStore() *MemStore {
	return &MemStore{
		values: make(map[string][]byte),
	}
}

func (m *MemStore) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return copyBytes(val), true, nil
}

func (m *MemStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		idx, _ := slices.BinarySearch(m.keys, key)
		m.keys = slices.Insert(m.keys, idx, key)
	}
	m.values[key] = copyBytes(value)
	return nil
}

func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		return nil
	}
	delete(m.values, key)
	if idx, found := slices.BinarySearch(m.keys, key); found {
		m.keys = slices.Delete(m.keys, idx, idx+1)
	}
	return nil
}

// Ascend walks a snapshot of the matching entries, so fn may safely modify
// the store
func (m *MemStore) Ascend(prefix string, fn func(string, []byte) bool) error {
	m.mu.RLock()
	start, _ := slices.BinarySearch(m.keys, prefix)
	type entry struct {
		key   string
		value []byte
	}
	var entries []entry
	for _, key := range m.keys[start:] {
		if !strings.HasPrefix(key, prefix) {
			break
		}
		entries = append(entries, entry{key: key, value: copyBytes(m.values[key])})
	}
	m.mu.RUnlock()
	for _, e := range entries {
		if !fn(e.key, e.value) {
			break
		}
	}
	return nil
}

// Len returns the number of stored keys
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.keys)
}
