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

// Package render turns listing state into HTML pages for the preview server.
package render

import (
	"fmt"

	"github.com/kurrik/tmpl"

	"github.com/rimajibe/rim-website/internal/listing"
	"github.com/rimajibe/rim-website/internal/markdown"
)

const ROOT_TMPL = `<!DOCTYPE html>
<html lang="fr">
  <head>
    <meta charset="utf-8" />
    {{template "head" .}}
  </head>
  <body>
    {{template "body" .}}
  </body>
</html>
{{define "head"}}<title>{{.Page.Title}}</title>{{end}}
{{define "body"}}{{end}}`

const LISTING_TMPL = `
{{define "body"}}
<section class="hero">
  <h1>{{.Page.Title}}</h1>
  <p>{{.Page.Intro}}</p>
</section>
<form class="search" method="get" action="{{.Page.Action}}">
  <input type="search" name="q" value="{{.Page.Search}}" />
  {{if .Page.Category}}<input type="hidden" name="category" value="{{.Page.Category}}" />{{end}}
</form>
<nav class="categories">
  {{range .Page.Categories}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>
  {{end}}
</nav>
{{if .Page.Empty}}
<section class="empty">
  <h2>{{.Page.EmptyTitle}}</h2>
  <p>{{.Page.EmptyText}}</p>
</section>
{{else}}
<section class="cards">
  {{range .Page.Cards}}
  <article>
    <h2>{{if .Href}}<a href="{{.Href}}"{{if .Download}} download{{end}}>{{.Title}}</a>{{else}}{{.Title}}{{end}}</h2>
    {{if .Date}}<time>{{.Date}}</time>{{end}}
    {{if .Category}}<span class="category">{{.Category}}</span>{{end}}
    {{if .Summary}}<p>{{.Summary}}</p>{{end}}
    {{if .Tags}}<ul class="tags">{{range .Tags}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </article>
  {{end}}
</section>
<nav class="pagination">
  {{if .Page.Prev}}<a rel="prev" href="{{.Page.Prev.Href}}">{{.Page.Prev.Label}}</a>{{end}}
  {{range .Page.Pages}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>
  {{end}}
  {{if .Page.Next}}<a rel="next" href="{{.Page.Next.Href}}">{{.Page.Next.Label}}</a>{{end}}
</nav>
{{end}}
{{end}}`

const DETAIL_TMPL = `
{{define "body"}}
<article class="detail">
  <a class="close" href="{{.Page.Back}}">Fermer</a>
  <h1>{{.Page.Title}}</h1>
  {{if .Page.Date}}<time>{{.Page.Date}}</time>{{end}}
  {{if .Page.Category}}<span class="category">{{.Page.Category}}</span>{{end}}
  {{if .Page.Tags}}<ul class="tags">{{range .Page.Tags}}<li>{{.}}</li>{{end}}</ul>{{end}}
  <div class="body">{{.Page.Body}}</div>
</article>
{{end}}`

// Renders listing and detail pages.
type Renderer struct {
	root *tmpl.Templates
	md   markdown.Renderer
}

// Creates a Renderer using md for post bodies.
func New(md markdown.Renderer) *Renderer {
	r := &Renderer{
		root: tmpl.NewTemplates(),
		md:   md,
	}
	r.root.AddTemplate(ROOT_TMPL)
	return r
}

// Renders a listing page.
func (r *Renderer) Listing(v ListingView) (out string, err error) {
	data := map[string]interface{}{
		"Page": v,
	}
	if out, err = r.root.RenderText(LISTING_TMPL, data); err != nil {
		err = fmt.Errorf("render listing: %w", err)
	}
	return
}

// Renders the detail of a post with its full body.
func (r *Renderer) PostDetail(p listing.Post, back string) (out string, err error) {
	var body []byte
	if body, err = r.md.Render([]byte(p.Body)); err != nil {
		return
	}
	data := map[string]interface{}{
		"Page": DetailView{
			Title:    esc(p.Title),
			Date:     esc(p.Date),
			Category: esc(p.Category),
			Tags:     escAll(p.Tags),
			Body:     string(body),
			Back:     esc(back),
		},
	}
	if out, err = r.root.RenderText(DETAIL_TMPL, data); err != nil {
		err = fmt.Errorf("render post %v: %w", p.Slug, err)
	}
	return
}
