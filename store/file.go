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
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	fileSchemaVersion = 1
	fileMode          = 0o600
	dirMode           = 0o700
	tempFilePattern   = ".gammquery-store-*.toml.tmp"
)

type fileSchema struct {
	Version int           `toml:"version"`
	Entries []entrySchema `toml:"entries"`
}

type entrySchema struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

// FileStore is a MemStore that is loaded from and flushed to a TOML file.
// Writes stay in memory until Flush is called; Flush replaces the file
// atomically.
type FileStore struct {
	*MemStore
	path string
}

var (
	_ KVStore = (*FileStore)(nil)
	_ Flusher = (*FileStore)(nil)
)

// OpenFileStore loads the store at path. A missing file yields an empty store
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	f := &FileStore{
		MemStore: NewMemStore(),
		path:     filepath.Clean(absPath),
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the absolute path of the backing file
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read store file: %w", err)
	}
	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode store file: %w", err)
	}
	if file.Version != 0 && file.Version != fileSchemaVersion {
		return fmt.Errorf(
			"unsupported store file version %d (expected %d)",
			file.Version,
			fileSchemaVersion,
		)
	}
	for _, entry := range file.Entries {
		value, err := hex.DecodeString(entry.Value)
		if err != nil {
			return fmt.Errorf("decode value for key %q: %w", entry.Key, err)
		}
		if err := f.MemStore.Set(entry.Key, value); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes the full contents of the store to its file
func (f *FileStore) Flush() error {
	file := fileSchema{Version: fileSchemaVersion}
	err := f.Ascend("", func(key string, value []byte) bool {
		file.Entries = append(
			file.Entries,
			entrySchema{Key: key, Value: hex.EncodeToString(value)},
		)
		return true
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(f.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp store file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tempName, f.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	cleanup = false
	return nil
}
