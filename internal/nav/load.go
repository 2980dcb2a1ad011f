// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package nav

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// table is the on-disk shape of a navigation file.
type table struct {
	Entries []Entry `yaml:"entries"`
}

/*
Load reads a YAML navigation table.

	entries:
	  - label: Policy Management
	    path: /hr/policy
	    section: HR AI Platform
	    roles: [HR Manager]

Unknown roles are rejected by [sec.Role]'s text decoder, so a typo fails at
load time instead of hiding an entry from everyone.
*/
func Load(reader io.Reader) ([]Entry, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var parsed table
	if err := decoder.Decode(&parsed); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("nav: empty navigation table")
		}
		return nil, fmt.Errorf("nav_load_failed: %w", err)
	}

	seen := make(map[string]bool, len(parsed.Entries))
	for i, entry := range parsed.Entries {
		if entry.Label == "" || entry.Path == "" {
			return nil, fmt.Errorf("nav: entry %d needs a label and a path", i)
		}
		key := normalize(entry.Path)
		if seen[key] {
			return nil, fmt.Errorf("nav: duplicate path %q", entry.Path)
		}
		seen[key] = true
	}
	return parsed.Entries, nil
}

// LoadFile reads the table at path, or returns [Default] when path is empty.
func LoadFile(path string) ([]Entry, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nav_open_failed: %w", err)
	}
	defer file.Close()

	return Load(file)
}
