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

import "sort"

// Represents a category and the number of records in it.
type Facet struct {
	Name  string
	Count int
}

// A list of Facets
type Facets []Facet

// Larger counts first, then by name.
func (f Facets) Less(i int, j int) bool {
	if f[i].Count == f[j].Count {
		return f[i].Name < f[j].Name
	}
	return f[i].Count > f[j].Count
}

func (f Facets) Len() int {
	return len(f)
}

func (f Facets) Swap(i int, j int) {
	f[i], f[j] = f[j], f[i]
}

// Counts records per category. Records without a category are not counted.
func CountFacets[T any](items []T, category func(T) string) Facets {
	counts := map[string]int{}
	for _, item := range items {
		if name := category(item); name != "" {
			counts[name]++
		}
	}
	out := make(Facets, 0, len(counts))
	for name, count := range counts {
		out = append(out, Facet{Name: name, Count: count})
	}
	sort.Sort(out)
	return out
}
