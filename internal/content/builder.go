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

// Package content turns the Markdown posts and JSON resources under the
// content directories into the static bundles read by the listing pages.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kurrik/fauxfile"

	"github.com/rimajibe/rim-website/internal/config"
	"github.com/rimajibe/rim-website/internal/fsutil"
)

// Counts reported by a build.
type Report struct {
	Posts            int
	Resources        int
	SkippedResources int
}

// Produces the content bundles.
type Builder struct {
	cfg *config.Config
	fs  fauxfile.Filesystem
	log *log.Logger
}

// Creates a new Builder.
func NewBuilder(fs fauxfile.Filesystem, cfg *config.Config) *Builder {
	return &Builder{
		cfg: cfg,
		fs:  fs,
		log: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Replaces the logger used for progress and warnings.
func (b *Builder) SetLogger(l *log.Logger) {
	b.log = l
}

// Reads both source directories and rewrites both bundles.
func (b *Builder) Process() (report Report, err error) {
	var (
		posts     []interface{}
		resources []interface{}
	)
	if posts, err = b.collectPosts(); err != nil {
		return
	}
	if err = b.writeBundle(b.cfg.PostsBundle, posts); err != nil {
		return
	}
	report.Posts = len(posts)
	if resources, report.SkippedResources, err = b.collectResources(); err != nil {
		return
	}
	if err = b.writeBundle(b.cfg.ResourcesBundle, resources); err != nil {
		return
	}
	report.Resources = len(resources)
	b.log.Printf("Wrote %v posts to %v and %v resources to %v\n",
		report.Posts, b.cfg.PostsBundle, report.Resources, b.cfg.ResourcesBundle)
	return
}

// Returns the visible file names in dir, sorted.
// A missing directory yields no names.
func (b *Builder) sourceNames(dir string) (names []string, err error) {
	var all []string
	if !fsutil.IsDir(b.fs, dir) {
		b.log.Printf("Source directory not found %v\n", dir)
		// Fail silently
		return nil, nil
	}
	if all, err = fsutil.ReadDir(b.fs, dir); err != nil {
		err = fmt.Errorf("read directory %v: %w", dir, err)
		return
	}
	for _, name := range all {
		if strings.HasPrefix(name, ".") {
			continue
		}
		if fsutil.IsDir(b.fs, filepath.Join(dir, name)) {
			b.log.Printf("Skipping directory %v\n", filepath.Join(dir, name))
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Reads a source file, which must hold UTF-8 text.
func (b *Builder) readSource(path string) (text string, err error) {
	var data []byte
	if data, err = fsutil.ReadFile(b.fs, path); err != nil {
		err = fmt.Errorf("read %v: %w", path, err)
		return
	}
	if text, err = decodeText(data); err != nil {
		err = fmt.Errorf("read %v: %w", path, err)
	}
	return
}

// Parses every post under the posts directory.
func (b *Builder) collectPosts() (posts []interface{}, err error) {
	var (
		dir   = b.cfg.PostsDir
		names []string
		text  string
		post  *Record
	)
	if names, err = b.sourceNames(dir); err != nil {
		return
	}
	posts = []interface{}{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		b.log.Printf("Parsing post %v\n", path)
		if text, err = b.readSource(path); err != nil {
			return
		}
		if post, err = ParsePost(name, text); err != nil {
			err = fmt.Errorf("parse post %v: %w", path, err)
			return
		}
		posts = append(posts, post)
	}
	return
}

// Parses every resource under the resources directory.
// Blank and malformed files are left out and counted in skipped.
func (b *Builder) collectResources() (resources []interface{}, skipped int, err error) {
	var (
		dir   = b.cfg.ResourcesDir
		names []string
		text  string
	)
	if names, err = b.sourceNames(dir); err != nil {
		return
	}
	resources = []interface{}{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if text, err = b.readSource(path); err != nil {
			return
		}
		resource, perr := ParseResource(text)
		switch {
		case perr != nil:
			b.log.Printf("Failed to parse JSON file %v: %v\n", path, perr)
			skipped++
			continue
		case resource == nil:
			skipped++
			continue
		}
		if missing := resource.missingFields(); len(missing) > 0 {
			b.log.Printf("Resource %v is missing %v\n", path, strings.Join(missing, ", "))
		}
		resources = append(resources, resource.value)
	}
	return
}

// Writes entries as an indented JSON array to path.
func (b *Builder) writeBundle(path string, entries []interface{}) (err error) {
	var data []byte
	if data, err = EncodeBundle(entries); err != nil {
		err = fmt.Errorf("encode %v: %w", path, err)
		return
	}
	if err = fsutil.WriteFile(b.fs, path, data); err != nil {
		err = fmt.Errorf("write %v: %w", path, err)
	}
	return
}

// Serializes entries the way the site imports them: a two-space indented
// array, HTML characters left as is, no trailing newline.
func EncodeBundle(entries []interface{}) (data []byte, err error) {
	var buf bytes.Buffer
	if entries == nil {
		entries = []interface{}{}
	}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err = enc.Encode(entries); err != nil {
		return
	}
	data = bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return
}
