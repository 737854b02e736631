// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalFilesystem publishes into a directory. Cache hints are ignored.
type LocalFilesystem struct {
	Root string
}

func NewLocalFilesystem(root string) (*LocalFilesystem, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalFilesystem{Root: root}, nil
}

func (local *LocalFilesystem) Upload(key string, _ int, data []byte) error {
	name := filepath.Join(local.Root, filepath.FromSlash(key))
	if rel, err := filepath.Rel(local.Root, name); err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("local: key %q escapes %s", key, local.Root)
	}

	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
