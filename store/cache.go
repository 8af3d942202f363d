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
	"errors"
	"fmt"
	"slices"
	"strings"
)

type cacheEntry struct {
	value   []byte
	deleted bool
}

// CacheStore buffers writes on top of a parent KVStore. Reads see the
// buffered writes; the parent is untouched until Write is called. Dropping a
// CacheStore without calling Write discards every buffered change.
type CacheStore struct {
	parent KVStore
	dirty  map[string]cacheEntry
}

var _ KVStore = (*CacheStore)(nil)

// NewCacheStore returns a CacheStore branched from parent
func NewCacheStore(parent KVStore) *CacheStore {
	return &CacheStore{
		parent: parent,
		dirty:  make(map[string]cacheEntry),
	}
}

func (c *CacheStore) Get(key string) ([]byte, bool, error) {
	if entry, ok := c.dirty[key]; ok {
		if entry.deleted {
			return nil, false, nil
		}
		return copyBytes(entry.value), true, nil
	}
	return c.parent.Get(key)
}

func (c *CacheStore) Set(key string, value []byte) error {
	c.dirty[key] = cacheEntry{value: copyBytes(value)}
	return nil
}

func (c *CacheStore) Delete(key string) error {
	c.dirty[key] = cacheEntry{deleted: true}
	return nil
}

func (c *CacheStore) Ascend(prefix string, fn func(string, []byte) bool) error {
	merged := make(map[string][]byte)
	err := c.parent.Ascend(prefix, func(key string, value []byte) bool {
		merged[key] = value
		return true
	})
	if err != nil {
		return err
	}
	for key, entry := range c.dirty {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if entry.deleted {
			delete(merged, key)
			continue
		}
		merged[key] = copyBytes(entry.value)
	}
	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if !fn(key, merged[key]) {
			break
		}
	}
	return nil
}

// Dirty reports whether the branch holds any unwritten changes
func (c *CacheStore) Dirty() bool {
	return len(c.dirty) > 0
}

// Write applies the buffered changes to the parent in ascending key order
// and resets the branch. If the parent rejects a change, the changes already
// applied are rolled back.
func (c *CacheStore) Write() error {
	_, err := c.Commit()
	return err
}

// Commit applies the buffered changes like Write and returns a function that
// restores the parent's previous values for every key written
func (c *CacheStore) Commit() (func() error, error) {
	keys := make([]string, 0, len(c.dirty))
	for key := range c.dirty {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	journal := make([]undoEntry, 0, len(keys))
	for _, key := range keys {
		prev, ok, err := c.parent.Get(key)
		if err != nil {
			return nil, errors.Join(
				fmt.Errorf("read %q from parent store: %w", key, err),
				rollback(c.parent, journal),
			)
		}
		journal = append(journal, undoEntry{key: key, value: prev, absent: !ok})
		entry := c.dirty[key]
		if entry.deleted {
			err = c.parent.Delete(key)
		} else {
			err = c.parent.Set(key, entry.value)
		}
		if err != nil {
			return nil, errors.Join(
				fmt.Errorf("write %q to parent store: %w", key, err),
				rollback(c.parent, journal),
			)
		}
	}
	c.dirty = make(map[string]cacheEntry)
	return func() error {
		return rollback(c.parent, journal)
	}, nil
}

type undoEntry struct {
	key    string
	value  []byte
	absent bool
}

func rollback(parent KVStore, journal []undoEntry) error {
	for i := len(journal) - 1; i >= 0; i-- {
		entry := journal[i]
		var err error
		if entry.absent {
			err = parent.Delete(entry.key)
		} else {
			err = parent.Set(entry.key, entry.value)
		}
		if err != nil {
			return fmt.Errorf("restore %q in parent store: %w", entry.key, err)
		}
	}
	return nil
}

// Discard drops the buffered changes
func (c *CacheStore) Discard() {
	c.dirty = make(map[string]cacheEntry)
}
