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

// Holds the view state of one listing page over a loaded bundle.
// The bundle is never modified. Not safe for concurrent use.
type Controller[T any] struct {
	items    []T
	schema   Schema[T]
	opts     Options
	state    State
	filtered []int
	selected int
}

// Creates a controller in its initial state.
func NewController[T any](items []T, schema Schema[T], opts Options) *Controller[T] {
	c := &Controller[T]{
		items:    items,
		schema:   schema,
		opts:     opts,
		state:    NewState(opts),
		selected: -1,
	}
	c.refresh()
	return c
}

// Recomputes the filtered positions and clamps the page.
func (c *Controller[T]) refresh() {
	c.filtered = filterIndexes(c.items, c.schema, c.opts, c.state)
	c.state.Page = Clamp(c.state.Page, c.TotalPages())
}

// Returns the current state.
func (c *Controller[T]) State() State {
	return c.state
}

// Returns the options the controller was created with.
func (c *Controller[T]) Options() Options {
	return c.opts
}

// Replaces the whole state, as when restoring it from a URL.
// An empty category means every category.
func (c *Controller[T]) Apply(state State) {
	if state.Category == "" {
		state.Category = c.opts.AllCategory
	}
	c.state = state
	c.refresh()
}

// Changes the search term and goes back to the first page.
func (c *Controller[T]) SetSearch(term string) {
	c.state.Search = term
	c.state.Page = 1
	c.refresh()
}

// Changes the category and goes back to the first page.
func (c *Controller[T]) SetCategory(category string) {
	c.state.Category = category
	c.state.Page = 1
	c.refresh()
}

// Moves to the next page. No-op on the last page.
func (c *Controller[T]) Next() {
	c.Jump(c.state.Page + 1)
}

// Moves to the previous page. No-op on the first page.
func (c *Controller[T]) Prev() {
	c.Jump(c.state.Page - 1)
}

// Moves to page k, clamped to the available pages.
func (c *Controller[T]) Jump(k int) {
	c.state.Page = Clamp(k, c.TotalPages())
}

// Returns the number of pages for the current filters.
func (c *Controller[T]) TotalPages() int {
	return TotalPages(len(c.filtered), c.opts.PageSize)
}

// Returns every record passing the filters, in display order.
func (c *Controller[T]) Results() []T {
	out := make([]T, len(c.filtered))
	for i, j := range c.filtered {
		out[i] = c.items[j]
	}
	return out
}

// Returns the current page.
func (c *Controller[T]) Page() Page[T] {
	return Paginate(c.Results(), c.opts.PageSize, c.state.Page)
}

// Returns the number of records in the bundle, ignoring filters.
func (c *Controller[T]) Len() int {
	return len(c.items)
}

// Returns the category facets of the whole bundle.
func (c *Controller[T]) Categories() Facets {
	if c.schema.Category == nil {
		return Facets{}
	}
	return CountFacets(c.items, c.schema.Category)
}

// Opens the detail of the i-th record of the current page.
// Returns false when i is out of range.
func (c *Controller[T]) Select(i int) bool {
	var (
		size  = c.opts.PageSize
		start = 0
	)
	if size > 0 {
		start = (c.state.Page - 1) * size
	}
	pos := start + i
	if i < 0 || pos >= len(c.filtered) || (size > 0 && i >= size) {
		return false
	}
	c.selected = c.filtered[pos]
	return true
}

// Opens the detail of the first record in the bundle matching pred,
// whether or not it passes the current filters.
func (c *Controller[T]) SelectWhere(pred func(T) bool) bool {
	for i, item := range c.items {
		if pred(item) {
			c.selected = i
			return true
		}
	}
	return false
}

// Returns the open record, if any.
func (c *Controller[T]) Selected() (item T, ok bool) {
	if c.selected < 0 {
		return
	}
	return c.items[c.selected], true
}

// Closes the detail.
func (c *Controller[T]) Close() {
	c.selected = -1
}
