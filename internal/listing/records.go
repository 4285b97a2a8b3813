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

package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Marks the end of the summary inside a post body.
const BreakMarker = "<!--BREAK-->"

// A blog post as read from the posts bundle.
type Post struct {
	Slug     string
	Title    string
	Date     string
	Excerpt  string
	Category string
	Tags     []string
	Body     string
	// Every key of the bundle entry, including the ones above.
	Fields map[string]interface{}
}

// Returns the post date, or the zero time if it cannot be read.
func (p Post) Time() time.Time {
	return ParseDate(p.Date)
}

// Returns the excerpt, or the body up to the break marker when there is
// no excerpt.
func (p Post) Summary() string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	if i := strings.Index(p.Body, BreakMarker); i != -1 {
		return strings.TrimSpace(p.Body[:i])
	}
	return ""
}

// A downloadable resource as read from the resources bundle.
type Resource struct {
	Title       string
	Category    string
	File        string
	Description string
	Excerpt     string
	Tags        []string
	Fields      map[string]interface{}
}

var PostSchema = Schema[Post]{
	Title:    func(p Post) string { return p.Title },
	Excerpt:  func(p Post) string { return p.Excerpt },
	Tags:     func(p Post) []string { return p.Tags },
	Category: func(p Post) string { return p.Category },
	Date:     Post.Time,
}

var ResourceSchema = Schema[Resource]{
	Title:    func(r Resource) string { return r.Title },
	Excerpt:  func(r Resource) string { return r.Excerpt },
	Tags:     func(r Resource) []string { return r.Tags },
	Category: func(r Resource) string { return r.Category },
}

// Builds a Post from a bundle entry. Missing or mistyped fields are left
// empty.
func PostFromFields(fields map[string]interface{}) Post {
	return Post{
		Slug:     stringField(fields, "slug"),
		Title:    stringField(fields, "title"),
		Date:     stringField(fields, "date"),
		Excerpt:  stringField(fields, "excerpt"),
		Category: stringField(fields, "category"),
		Tags:     stringsField(fields, "tags"),
		Body:     stringField(fields, "body"),
		Fields:   fields,
	}
}

// Builds a Resource from a bundle entry. Missing or mistyped fields are left
// empty.
func ResourceFromFields(fields map[string]interface{}) Resource {
	return Resource{
		Title:       stringField(fields, "title"),
		Category:    stringField(fields, "category"),
		File:        stringField(fields, "file"),
		Description: stringField(fields, "description"),
		Excerpt:     stringField(fields, "excerpt"),
		Tags:        stringsField(fields, "tags"),
		Fields:      fields,
	}
}

// Reads a posts bundle.
func LoadPosts(r io.Reader) (posts []Post, err error) {
	var entries []map[string]interface{}
	if entries, err = loadEntries(r); err != nil {
		return
	}
	posts = make([]Post, len(entries))
	for i, fields := range entries {
		posts[i] = PostFromFields(fields)
	}
	return
}

// Reads a resources bundle.
func LoadResources(r io.Reader) (resources []Resource, err error) {
	var entries []map[string]interface{}
	if entries, err = loadEntries(r); err != nil {
		return
	}
	resources = make([]Resource, len(entries))
	for i, fields := range entries {
		resources[i] = ResourceFromFields(fields)
	}
	return
}

// Decodes a bundle array, dropping entries that are not objects.
func loadEntries(r io.Reader) (entries []map[string]interface{}, err error) {
	var raw []interface{}
	if err = json.NewDecoder(r).Decode(&raw); err != nil {
		err = fmt.Errorf("decode bundle: %w", err)
		return
	}
	entries = make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if fields, ok := item.(map[string]interface{}); ok {
			entries = append(entries, fields)
		}
	}
	return
}

func scalar(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64, bool:
		return fmt.Sprint(val), true
	}
	return "", false
}

func stringField(fields map[string]interface{}, key string) string {
	s, _ := scalar(fields[key])
	return s
}

// Reads a list of strings. A single string counts as a one element list.
func stringsField(fields map[string]interface{}, key string) (out []string) {
	switch val := fields[key].(type) {
	case string:
		return []string{val}
	case []interface{}:
		for _, item := range val {
			if s, ok := scalar(item); ok {
				out = append(out, s)
			}
		}
	}
	return
}
