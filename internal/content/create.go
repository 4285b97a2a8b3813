// Copyright 2013 Arne Roomann-Kurrik
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
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/kurrik/fauxfile"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v2"

	"github.com/rimajibe/rim-website/internal/fsutil"
)

const TMPL_BODY_MD = `Ceci est le résumé de l'article.

<!--BREAK-->

Ceci est le contenu après la coupure.
`

// Fields for a new post.
type Draft struct {
	Title    string
	Slug     string
	Excerpt  string
	Category string
	Tags     []string
	Date     time.Time
}

type draftMeta struct {
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Excerpt  string   `yaml:"excerpt"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
}

// Turns a title into a file-name friendly slug: accents dropped, lower case,
// runs of anything else collapsed into single dashes.
func SlugFromTitle(title string) (slug string) {
	var (
		t   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		out strings.Builder
		err error
		gap bool
	)
	if title, _, err = transform.String(t, title); err != nil {
		return ""
	}
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if gap && out.Len() > 0 {
				out.WriteByte('-')
			}
			out.WriteRune(r)
			gap = false
			continue
		}
		gap = true
	}
	return out.String()
}

// Writes a new post into dir and returns its path.
// Existing files are never overwritten.
func Create(fs fauxfile.Filesystem, dir string, d Draft) (path string, err error) {
	var (
		meta []byte
		buf  strings.Builder
	)
	if strings.TrimSpace(d.Title) == "" {
		err = fmt.Errorf("a post needs a title")
		return
	}
	if d.Slug == "" {
		d.Slug = SlugFromTitle(d.Title)
	}
	if d.Slug == "" {
		err = fmt.Errorf("could not derive a slug from %q", d.Title)
		return
	}
	if strings.ContainsAny(d.Slug, `/\`) || strings.Contains(d.Slug, "..") || strings.HasPrefix(d.Slug, ".") {
		err = fmt.Errorf("slug %q must be a plain file name", d.Slug)
		return
	}
	if d.Date.IsZero() {
		d.Date = time.Now()
	}
	path = filepath.Join(dir, d.Slug+PostExtension)
	if fsutil.Exists(fs, path) {
		err = fmt.Errorf("post %v already exists", path)
		return
	}
	if meta, err = yaml.Marshal(draftMeta{
		Title:    d.Title,
		Date:     d.Date.Format("2006-01-02"),
		Excerpt:  d.Excerpt,
		Category: d.Category,
		Tags:     d.Tags,
	}); err != nil {
		return
	}
	buf.WriteString("---\n")
	buf.Write(meta)
	buf.WriteString("---\n")
	buf.WriteString(TMPL_BODY_MD)
	err = fsutil.WriteFile(fs, path, []byte(buf.String()))
	return
}
