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

package render

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/rimajibe/rim-website/internal/listing"
)

// Page chrome text for one listing.
type Labels struct {
	Title string
	Intro string
	// Shown when the bundle has no records at all.
	ComingSoonTitle string
	ComingSoonText  string
	// Shown when the filters removed every record.
	NoResultsTitle string
	NoResultsText  string
	// Name shown for the "every category" filter.
	AllName string
}

var BlogLabels = Labels{
	Title:           "Blog Nutritionnel",
	Intro:           "Découvrez mes conseils, astuces et réflexions pour une vie plus saine et équilibrée",
	ComingSoonTitle: "Contenu en préparation",
	ComingSoonText:  "Le blog sera bientôt disponible avec des articles nutritionnels, des conseils pratiques et des informations scientifiques pour vous accompagner dans votre parcours santé.",
	NoResultsTitle:  "Aucun résultat",
	NoResultsText:   "Aucun article ne correspond à votre recherche.",
	AllName:         "Tous",
}

var ResourceLabels = Labels{
	Title:           "Ressources Nutritionnelles",
	Intro:           "Découvrez nos guides, e-books et outils pour vous accompagner dans votre transformation nutritionnelle",
	ComingSoonTitle: "Ressources en préparation",
	ComingSoonText:  "Nos guides nutritionnels, e-books et outils pratiques seront bientôt disponibles pour vous accompagner dans votre parcours santé.",
	NoResultsTitle:  "Aucun résultat",
	NoResultsText:   "Aucune ressource ne correspond à votre recherche.",
	AllName:         "Tous",
}

// A link in the filter bar or the pagination.
type Link struct {
	Label  string
	Href   string
	Active bool
}

// One record in a listing. Text fields are HTML-escaped.
type Card struct {
	Title    string
	Date     string
	Category string
	Summary  string
	Tags     []string
	Href     string
	Download bool
}

// Template data for a listing page. Text fields are HTML-escaped.
type ListingView struct {
	Title      string
	Intro      string
	Action     string
	Search     string
	Category   string
	Categories []Link
	Cards      []Card
	Pages      []Link
	Prev       *Link
	Next       *Link
	Empty      bool
	EmptyTitle string
	EmptyText  string
}

// Template data for a post detail page. Body holds rendered HTML.
type DetailView struct {
	Title    string
	Date     string
	Category string
	Tags     []string
	Body     string
	Back     string
}

var esc = html.EscapeString

func escAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = esc(s)
	}
	return out
}

// Returns link escaped for an href when it is a relative path or an http(s)
// URL, and "" otherwise.
func safeHref(link string) string {
	link = strings.TrimSpace(link)
	// Browsers read backslashes as slashes, so "/\host" names another host.
	if link == "" || strings.HasPrefix(strings.ReplaceAll(link, "\\", "/"), "//") {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "", "http", "https":
		return esc(link)
	}
	return ""
}

// Builds the URL of a listing for the given state.
func listingHref(base string, opts listing.Options, state listing.State) string {
	q := url.Values{}
	if state.Search != "" {
		q.Set("q", state.Search)
	}
	if state.Category != "" && state.Category != opts.AllCategory {
		q.Set("category", state.Category)
	}
	if state.Page > 1 {
		q.Set("page", strconv.Itoa(state.Page))
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

// Fills the parts of a ListingView shared by every record shape.
func newListingView[T any](c *listing.Controller[T], base string, labels Labels) (v ListingView, page listing.Page[T]) {
	var (
		state = c.State()
		opts  = c.Options()
	)
	page = c.Page()
	v = ListingView{
		Title:  esc(labels.Title),
		Intro:  esc(labels.Intro),
		Action: esc(base),
		Search: esc(state.Search),
	}
	if state.Category != opts.AllCategory {
		v.Category = esc(state.Category)
	}
	facet := func(label string, category string) Link {
		to := listing.State{Search: state.Search, Category: category, Page: 1}
		return Link{
			Label:  esc(label),
			Href:   esc(listingHref(base, opts, to)),
			Active: category == state.Category,
		}
	}
	v.Categories = append(v.Categories, facet(labels.AllName, opts.AllCategory))
	for _, f := range c.Categories() {
		v.Categories = append(v.Categories, facet(f.Name, f.Name))
	}
	if page.Empty {
		v.Empty = true
		if c.Len() == 0 {
			v.EmptyTitle = esc(labels.ComingSoonTitle)
			v.EmptyText = esc(labels.ComingSoonText)
		} else {
			v.EmptyTitle = esc(labels.NoResultsTitle)
			v.EmptyText = esc(labels.NoResultsText)
		}
		return
	}
	goTo := func(label string, number int) *Link {
		to := state
		to.Page = number
		return &Link{
			Label:  label,
			Href:   esc(listingHref(base, opts, to)),
			Active: number == page.Number,
		}
	}
	if page.TotalPages > 1 {
		for n := 1; n <= page.TotalPages; n++ {
			v.Pages = append(v.Pages, *goTo(strconv.Itoa(n), n))
		}
	}
	if page.HasPrev() {
		v.Prev = goTo("Précédent", page.Number-1)
	}
	if page.HasNext() {
		v.Next = goTo("Suivant", page.Number+1)
	}
	return
}

// Builds the blog listing view. Cards link to base/<slug>.
func BlogListing(c *listing.Controller[listing.Post], base string) ListingView {
	v, page := newListingView(c, base, BlogLabels)
	for _, p := range page.Items {
		v.Cards = append(v.Cards, Card{
			Title:    esc(p.Title),
			Date:     esc(p.Date),
			Category: esc(p.Category),
			Summary:  esc(p.Summary()),
			Tags:     escAll(p.Tags),
			Href:     esc(strings.TrimSuffix(base, "/") + "/" + url.PathEscape(p.Slug)),
		})
	}
	return v
}

// Builds the resources listing view. Cards link to the resource file.
func ResourceListing(c *listing.Controller[listing.Resource], base string) ListingView {
	v, page := newListingView(c, base, ResourceLabels)
	for _, r := range page.Items {
		summary := r.Excerpt
		if summary == "" {
			summary = r.Description
		}
		v.Cards = append(v.Cards, Card{
			Title:    esc(r.Title),
			Category: esc(r.Category),
			Summary:  esc(summary),
			Tags:     escAll(r.Tags),
			Href:     safeHref(r.File),
			Download: true,
		})
	}
	return v
}
