// Copyright 2017 Arne Roomann-Kurrik
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

// Package fsutil holds small helpers shared by everything that touches a
// fauxfile.Filesystem.
package fsutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/kurrik/fauxfile"
)

// Returns true if the specified path is a directory.
func IsDir(fs fauxfile.Filesystem, path string) bool {
	var (
		info os.FileInfo
		err  error
	)
	if info, err = fs.Stat(path); err != nil {
		return false
	}
	return info.IsDir()
}

// Returns true if something exists at the given path.
func Exists(fs fauxfile.Filesystem, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// Reads directory contents from the given path and returns file names.
func ReadDir(fs fauxfile.Filesystem, path string) (names []string, err error) {
	var f fauxfile.File
	if f, err = fs.Open(path); err != nil {
		return
	}
	defer f.Close()
	names, err = f.Readdirnames(-1)
	return
}

// Reads a file from the given path and returns its contents.
func ReadFile(fs fauxfile.Filesystem, path string) (data []byte, err error) {
	var f fauxfile.File
	if f, err = fs.Open(path); err != nil {
		return
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	return
}

// Writes data to path, creating parent directories as needed.
func WriteFile(fs fauxfile.Filesystem, path string, data []byte) (err error) {
	var f fauxfile.File
	if err = fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	if f, err = fs.Create(path); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return
}
