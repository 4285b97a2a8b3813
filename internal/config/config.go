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

package config

import (
	"fmt"

	"github.com/kurrik/fauxfile"
	"gopkg.in/yaml.v2"

	"github.com/rimajibe/rim-website/internal/fsutil"
)

// Markdown engines understood by the detail renderer.
const (
	EngineBlackfriday = "blackfriday"
	EngineGoldmark    = "goldmark"
)

// Settings for one listing page.
type Listing struct {
	PageSize    int    `yaml:"page_size"`
	AllCategory string `yaml:"all_category"`
}

// Serializable site configuration.
type Config struct {
	PostsDir        string  `yaml:"posts_dir"`
	ResourcesDir    string  `yaml:"resources_dir"`
	PostsBundle     string  `yaml:"posts_bundle"`
	ResourcesBundle string  `yaml:"resources_bundle"`
	PublicDir       string  `yaml:"public_dir"`
	Markdown        string  `yaml:"markdown"`
	Blog            Listing `yaml:"blog"`
	Resources       Listing `yaml:"resources"`
}

// Returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		PostsDir:        "content/blog",
		ResourcesDir:    "content/resources",
		PostsBundle:     "src/content/blog.json",
		ResourcesBundle: "src/content/resources.json",
		PublicDir:       "build",
		Markdown:        EngineBlackfriday,
		Blog: Listing{
			PageSize:    6,
			AllCategory: "Tous",
		},
		Resources: Listing{
			PageSize:    0,
			AllCategory: "all",
		},
	}
}

// Loads the YAML file at path over the defaults.
// A missing file is not an error; the defaults are returned as is.
func Load(fs fauxfile.Filesystem, path string) (cfg *Config, err error) {
	var data []byte
	cfg = Default()
	if path == "" || !fsutil.Exists(fs, path) {
		return
	}
	if data, err = fsutil.ReadFile(fs, path); err != nil {
		err = fmt.Errorf("read config %v: %w", path, err)
		return
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		err = fmt.Errorf("parse config %v: %w", path, err)
		return
	}
	err = cfg.Validate()
	return
}

// Checks that the configuration can drive a build.
func (c *Config) Validate() error {
	paths := [][2]string{
		{"posts_dir", c.PostsDir},
		{"resources_dir", c.ResourcesDir},
		{"posts_bundle", c.PostsBundle},
		{"resources_bundle", c.ResourcesBundle},
		{"public_dir", c.PublicDir},
	}
	for _, p := range paths {
		if p[1] == "" {
			return fmt.Errorf("config: %v must not be empty", p[0])
		}
	}
	switch c.Markdown {
	case EngineBlackfriday, EngineGoldmark:
	default:
		return fmt.Errorf("config: unknown markdown engine %q", c.Markdown)
	}
	if err := c.Blog.validate("blog"); err != nil {
		return err
	}
	return c.Resources.validate("resources")
}

func (l Listing) validate(name string) error {
	if l.PageSize < 0 {
		return fmt.Errorf("config: %v.page_size must be zero or positive, got %v", name, l.PageSize)
	}
	if l.AllCategory == "" {
		return fmt.Errorf("config: %v.all_category must not be empty", name)
	}
	return nil
}
