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

package content

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Extension stripped from post file names to form the slug.
const PostExtension = ".md"

var errNotUTF8 = errors.New("not valid UTF-8 text")

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Returns the slug for a post file name.
func Slug(name string) string {
	return strings.TrimSuffix(name, PostExtension)
}

// Parses a post file into its bundle record: the front matter keys in file
// order followed by slug and body.
func ParsePost(name string, text string) (post *Record, err error) {
	var (
		meta yaml.Node
		body []byte
	)
	if body, err = frontmatter.Parse(strings.NewReader(text), &meta, yamlFormat); err != nil {
		return
	}
	if post, err = recordFromNode(&meta); err != nil {
		return
	}
	post.Set("slug", Slug(name))
	post.Set("body", string(body))
	return
}

func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errNotUTF8
	}
	return string(data), nil
}
