// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan resolves input arguments into the list of files to parse.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Resolve expands the input arguments into a flat list of regular files,
// keeping argument order. A directory argument contributes every file
// under it, recursively, in walk order. An argument that does not exist is
// not fatal: it logs a warning and is dropped.
func Resolve(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			logrus.Warnf("input %s is not a valid file or directory, ignoring", p)
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking input directory %s: %w", p, err)
		}
	}
	return files, nil
}
