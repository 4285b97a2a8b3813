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

// Package markdown renders post bodies to HTML for the detail view.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/russross/blackfriday.v2"

	"github.com/rimajibe/rim-website/internal/config"
)

// Converts Markdown source to HTML.
type Renderer interface {
	Render(source []byte) ([]byte, error)
}

// Returns the renderer for the named engine.
func New(engine string) (Renderer, error) {
	switch engine {
	case config.EngineBlackfriday, "":
		return Blackfriday{}, nil
	case config.EngineGoldmark:
		return NewGoldmark(), nil
	}
	return nil, fmt.Errorf("unknown markdown engine %q", engine)
}

// Renders with blackfriday's common extensions.
type Blackfriday struct{}

func (Blackfriday) Render(source []byte) ([]byte, error) {
	return blackfriday.Run(source, blackfriday.WithExtensions(blackfriday.CommonExtensions)), nil
}

// Renders with goldmark and GitHub flavoured extensions. Raw HTML in the
// source, such as the break marker, is kept.
type Goldmark struct {
	md goldmark.Markdown
}

func NewGoldmark() *Goldmark {
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.TaskList),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func (g *Goldmark) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}
