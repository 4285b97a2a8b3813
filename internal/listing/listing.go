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

// Package listing implements the search, category filter, date ordering and
// pagination shared by the blog and resources pages.
package listing

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Field accessors for one record shape. Excerpt, Tags, Category and Date
// may be nil when the shape has no such field.
type Schema[T any] struct {
	Title    func(T) string
	Excerpt  func(T) string
	Tags     func(T) []string
	Category func(T) string
	Date     func(T) time.Time
}

// Per-page settings.
type Options struct {
	// Records per page. Zero or less shows everything on one page.
	PageSize int
	// Category value that disables the category filter.
	AllCategory string
	// Orders results newest first. Requires Schema.Date.
	SortByDate bool
}

// What the visitor asked for.
type State struct {
	Search   string
	Category string
	Page     int
}

// Returns the initial state: no search, every category, first page.
func NewState(opts Options) State {
	return State{Category: opts.AllCategory, Page: 1}
}

// Case-insensitive substring matcher over the searchable fields. Both sides
// go through full Unicode case folding, so "strasse" finds "Straße".
type matcher struct {
	fold cases.Caser
	term string
}

func newMatcher(term string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.term = m.fold.String(term)
	return m
}

func (m *matcher) contains(s string) bool {
	return strings.Contains(m.fold.String(s), m.term)
}

// Returns true when term occurs in the title, the excerpt or any tag.
// An empty term matches everything.
func Matches[T any](item T, schema Schema[T], term string) bool {
	if term == "" {
		return true
	}
	return matches(item, schema, newMatcher(term))
}

func matches[T any](item T, schema Schema[T], m *matcher) bool {
	if schema.Title != nil && m.contains(schema.Title(item)) {
		return true
	}
	if schema.Excerpt != nil && m.contains(schema.Excerpt(item)) {
		return true
	}
	if schema.Tags != nil {
		for _, tag := range schema.Tags(item) {
			if m.contains(tag) {
				return true
			}
		}
	}
	return false
}

// Returns the positions in items that pass the search and category filters,
// ordered as the page shows them.
func filterIndexes[T any](items []T, schema Schema[T], opts Options, state State) []int {
	var m *matcher
	if state.Search != "" {
		m = newMatcher(state.Search)
	}
	out := []int{}
	for i, item := range items {
		if m != nil && !matches(item, schema, m) {
			continue
		}
		if state.Category != opts.AllCategory {
			if schema.Category == nil || schema.Category(item) != state.Category {
				continue
			}
		}
		out = append(out, i)
	}
	if opts.SortByDate && schema.Date != nil {
		sort.SliceStable(out, func(a, b int) bool {
			return newer(schema.Date(items[out[a]]), schema.Date(items[out[b]]))
		})
	}
	return out
}

// Orders by date descending with undated records last.
func newer(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	if b.IsZero() {
		return true
	}
	return a.After(b)
}

// Applies the search and category filters and the date ordering.
func Filter[T any](items []T, schema Schema[T], opts Options, state State) []T {
	idx := filterIndexes(items, schema, opts, state)
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// Sorts items newest first, keeping the order of equal dates.
func SortByDateDesc[T any](items []T, date func(T) time.Time) {
	sort.SliceStable(items, func(a, b int) bool {
		return newer(date(items[a]), date(items[b]))
	})
}

// Layouts tried, in order, when reading a date field.
var DateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parses a date field. Unparseable values give the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
