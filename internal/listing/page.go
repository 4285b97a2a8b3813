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

// One window of a filtered result set.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	Total      int
	// Set when nothing matched; TotalPages is then zero.
	Empty bool
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

// Returns ceil(n/size), or 1 for a non-empty unbounded listing.
func TotalPages(n int, size int) int {
	switch {
	case n <= 0:
		return 0
	case size <= 0:
		return 1
	}
	return (n + size - 1) / size
}

// Clamps page into [1, max(1, totalPages)].
func Clamp(page int, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Slices out page number of items.
func Paginate[T any](items []T, size int, number int) Page[T] {
	var (
		total = len(items)
		pages = TotalPages(total, size)
	)
	number = Clamp(number, pages)
	if total == 0 {
		return Page[T]{Items: []T{}, Number: number, Empty: true}
	}
	if size <= 0 {
		return Page[T]{Items: items, Number: number, TotalPages: pages, Total: total}
	}
	start := (number - 1) * size
	end := min(start+size, total)
	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		TotalPages: pages,
		Total:      total,
	}
}
