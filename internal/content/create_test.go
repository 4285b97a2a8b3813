// Copyright 2024 The rim-website Authors
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

package content

import (
	"testing"
	"time"

	"github.com/rimajibe/rim-website/internal/fsutil"
)

func TestSlugFromTitle(t *testing.T) {
	cases := map[string]string{
		"Les féculents, amis ou ennemis ?": "les-feculents-amis-ou-ennemis",
		"  Bien s'hydrater  ":              "bien-s-hydrater",
		"Été 2024":                         "ete-2024",
		"???":                              "",
	}
	for title, want := range cases {
		if got := SlugFromTitle(title); got != want {
			t.Errorf("SlugFromTitle(%q) = %q, expected %q", title, got, want)
		}
	}
}

// Ensures a created post is picked up by the next build.
func TestCreateThenBuild(t *testing.T) {
	b, fs := Setup()
	path, err := Create(fs, "content/blog", Draft{
		Title:    "Les féculents",
		Category: "Alimentation",
		Tags:     []string{"féculents"},
		Excerpt:  "Résumé",
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if path != "content/blog/les-feculents.md" {
		t.Errorf("Bad path, got %v", path)
	}
	if _, err = b.Process(); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	posts := ReadBundle(t, fs, "src/content/blog.json")
	if len(posts) != 1 {
		t.Fatalf("Expected 1 post, got %v", len(posts))
	}
	post := posts[0]
	if post["slug"] != "les-feculents" || post["title"] != "Les féculents" {
		t.Errorf("Bad post, got %v", post)
	}
	if post["date"] != "2024-03-01" || post["category"] != "Alimentation" {
		t.Errorf("Bad post, got %v", post)
	}
	if post["body"] != TMPL_BODY_MD {
		t.Errorf("Bad body, got %q", post["body"])
	}
}

// Ensures an existing post is not overwritten.
func TestCreateRefusesOverwrite(t *testing.T) {
	_, fs := Setup()
	WriteFile(fs, "content/blog/deja.md", "existant")
	if _, err := Create(fs, "content/blog", Draft{Title: "Déjà"}); err == nil {
		t.Fatalf("Expected an error for an existing post")
	}
	if s, _ := ReadFile(fs, "content/blog/deja.md"); s != "existant" {
		t.Errorf("Post was overwritten: %q", s)
	}
}

func TestCreateNeedsTitle(t *testing.T) {
	_, fs := Setup()
	if _, err := Create(fs, "content/blog", Draft{}); err == nil {
		t.Fatalf("Expected an error without a title")
	}
}

// Ensures a slug cannot place the post outside the posts directory.
func TestCreateRejectsPathSlug(t *testing.T) {
	_, fs := Setup()
	for _, slug := range []string{"../../x", "a/b", `a\b`, "..", ".cache"} {
		if path, err := Create(fs, "content/blog", Draft{Title: "x", Slug: slug}); err == nil {
			t.Errorf("Expected an error for slug %q, wrote %v", slug, path)
		}
	}
	if fsutil.Exists(fs, "x.md") || fsutil.Exists(fs, "/home/x.md") {
		t.Errorf("Post written outside the posts directory")
	}
}
