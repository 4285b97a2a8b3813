// Copyright 2012 Arne Roomann-Kurrik
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

package main

import (
	"bytes"
	"io/ioutil"
	"log"
	"strings"
	"testing"

	"github.com/kurrik/fauxfile"

	"github.com/rimajibe/rim-website/internal/fsutil"
)

func Setup() (fs fauxfile.Filesystem) {
	fs = fauxfile.NewMockFilesystem()
	fs.MkdirAll("/home/test", 0755)
	fs.Chdir("/home/test")
	return
}

// Runs the command line against fs and returns what it printed.
func Run(fs fauxfile.Filesystem, args ...string) (out string, err error) {
	var buf bytes.Buffer
	cmd := NewRootCmd(fs, log.New(ioutil.Discard, "", log.LstdFlags))
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	out = buf.String()
	return
}

func WriteFile(fs fauxfile.Filesystem, path string, data string) error {
	return fsutil.WriteFile(fs, path, []byte(data))
}

func ReadFile(fs fauxfile.Filesystem, path string) (data string, err error) {
	var buf []byte
	if buf, err = fsutil.ReadFile(fs, path); err != nil {
		return
	}
	data = string(buf)
	return
}

const POST_MD = `---
title: Bien s'hydrater
date: 2024-04-12
---
Buvez de l'eau.
`

func TestBuildByDefault(t *testing.T) {
	fs := Setup()
	WriteFile(fs, "content/blog/hydratation.md", POST_MD)
	if _, err := Run(fs); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	s, err := ReadFile(fs, "src/content/blog.json")
	if err != nil {
		t.Fatalf("Posts bundle not written: %v", err)
	}
	if !strings.Contains(s, `"slug": "hydratation"`) {
		t.Errorf("Bad posts bundle: %v", s)
	}
	if s, _ = ReadFile(fs, "src/content/resources.json"); s != "[]" {
		t.Errorf("Expected an empty resources bundle, got %q", s)
	}
}

func TestBuildCommandUsesConfig(t *testing.T) {
	fs := Setup()
	WriteFile(fs, "rim.yaml", "posts_dir: posts\nposts_bundle: out/blog.json\n")
	WriteFile(fs, "posts/hydratation.md", POST_MD)
	if _, err := Run(fs, "build", "--config", "rim.yaml"); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if s, _ := ReadFile(fs, "out/blog.json"); !strings.Contains(s, `"title": "Bien s'hydrater"`) {
		t.Errorf("Bad posts bundle: %q", s)
	}
}

func TestInvalidConfig(t *testing.T) {
	fs := Setup()
	WriteFile(fs, "site.yaml", "blog:\n  page_size: -1\n")
	if _, err := Run(fs); err == nil {
		t.Fatalf("Expected an error for a negative page size")
	}
}

func TestBuildFailsOnInvalidPost(t *testing.T) {
	fs := Setup()
	WriteFile(fs, "content/blog/casse.md", "---\ntitle: [\n---\n")
	if _, err := Run(fs, "build"); err == nil {
		t.Fatalf("Expected an error for invalid front matter")
	}
}

func TestNewPost(t *testing.T) {
	fs := Setup()
	out, err := Run(fs, "new", "--title", "Les féculents", "--category", "Alimentation", "--tags", "féculents, énergie")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if strings.TrimSpace(out) != "content/blog/les-feculents.md" {
		t.Errorf("Bad output: %q", out)
	}
	s, err := ReadFile(fs, "content/blog/les-feculents.md")
	if err != nil {
		t.Fatalf("Post not written: %v", err)
	}
	for _, want := range []string{"title: Les féculents", "category: Alimentation", "- féculents", "- énergie", "<!--BREAK-->"} {
		if !strings.Contains(s, want) {
			t.Errorf("Post missing %q:\n%v", want, s)
		}
	}
	if _, err = Run(fs, "new", "--title", "Les féculents"); err == nil {
		t.Errorf("Expected an error when the post exists")
	}
}

func TestNewRequiresTitle(t *testing.T) {
	fs := Setup()
	if _, err := Run(fs, "new"); err == nil {
		t.Fatalf("Expected an error without --title")
	}
}

func TestRejectsArguments(t *testing.T) {
	fs := Setup()
	if _, err := Run(fs, "build", "extra"); err == nil {
		t.Fatalf("Expected an error for unexpected arguments")
	}
}

func TestNewRejectsPathSlug(t *testing.T) {
	fs := Setup()
	if _, err := Run(fs, "new", "--title", "x", "--slug", "../../x"); err == nil {
		t.Fatalf("Expected an error for a slug leaving the posts directory")
	}
	if fsutil.Exists(fs, "/home/x.md") {
		t.Errorf("Post written outside the posts directory")
	}
}
