// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileArea stores values in a single JSON document.
//
// Every write replaces the document through a temp file and rename, so a
// reader in another process sees either the old pair or the new pair.
// Read-modify-write operations also hold an exclusive lock on a sibling
// ".lock" file, so two processes never interleave between the read and the
// rename. The CLI uses it because each command is a separate process sharing
// one "tab".
type FileArea struct {
	mu   sync.Mutex
	path string
}

// NewFileArea creates a [FileArea] rooted at path. The parent directory is
// created lazily on first write with owner-only permissions.
func NewFileArea(path string) *FileArea {
	return &FileArea{path: path}
}

// Path returns the document location.
func (area *FileArea) Path() string { return area.path }

// GetAll implements [Area]. One read of a renamed-into-place document is
// already a consistent snapshot.
func (area *FileArea) GetAll(_ context.Context, keys ...string) (map[string]string, error) {
	values, err := area.read()
	if err != nil {
		return nil, err
	}
	return pick(values, keys), nil
}

// SetAll implements [Area].
func (area *FileArea) SetAll(_ context.Context, values map[string]string) error {
	return area.update(func(current map[string]string) (bool, error) {
		for key, value := range values {
			current[key] = value
		}
		return true, nil
	})
}

// Delete implements [Area].
func (area *FileArea) Delete(_ context.Context, keys ...string) error {
	return area.update(func(current map[string]string) (bool, error) {
		return deleteKeys(current, keys), nil
	})
}

// DeleteIf implements [Area].
func (area *FileArea) DeleteIf(_ context.Context, key, expected string, keys ...string) (bool, error) {
	matched := false
	err := area.update(func(current map[string]string) (bool, error) {
		if current[key] != expected {
			return false, nil
		}
		matched = true
		return deleteKeys(current, keys), nil
	})
	return matched, err
}

func deleteKeys(values map[string]string, keys []string) bool {
	changed := false
	for _, key := range keys {
		if _, ok := values[key]; ok {
			delete(values, key)
			changed = true
		}
	}
	return changed
}

/*
update runs one read-modify-write under the process mutex and the file lock.

Description: edit reports whether the document changed; an unchanged
document is not rewritten. An emptied document is removed.
*/
func (area *FileArea) update(edit func(current map[string]string) (bool, error)) error {
	area.mu.Lock()
	defer area.mu.Unlock()

	unlock, err := lockFile(area.path)
	if err != nil {
		return err
	}
	defer unlock()

	current, err := area.read()
	if err != nil {
		return err
	}
	changed, err := edit(current)
	if err != nil || !changed {
		return err
	}

	if len(current) == 0 {
		if err := os.Remove(area.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("session_file_remove_failed: %w", err)
		}
		return nil
	}
	return area.write(current)
}

// read loads the document. A missing file is an empty area; an unreadable
// document is also treated as empty so the store's cleanup can replace it.
func (area *FileArea) read() (map[string]string, error) {
	data, err := os.ReadFile(area.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session_file_read_failed: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return make(map[string]string), nil
	}
	return values, nil
}

func (area *FileArea) write(values map[string]string) error {
	dir := filepath.Dir(area.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session_file_mkdir_failed: %w", err)
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("session_file_encode_failed: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("session_file_temp_failed: %w", err)
	}
	tmpName := tmp.Name()

	// Write, flush and close before the rename makes it visible.
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session_file_write_failed: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session_file_sync_failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session_file_close_failed: %w", err)
	}
	if err := os.Rename(tmpName, area.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session_file_rename_failed: %w", err)
	}
	return nil
}
