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

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const SOURCE = `Les *féculents* sont utiles.

<!--BREAK-->

- riz
- pâtes
`

func TestEngines(t *testing.T) {
	for _, engine := range []string{"blackfriday", "goldmark"} {
		r, err := New(engine)
		require.NoError(t, err, engine)
		out, err := r.Render([]byte(SOURCE))
		require.NoError(t, err, engine)
		html := string(out)
		assert.Contains(t, html, "<em>féculents</em>", engine)
		assert.Contains(t, html, "<li>riz</li>", engine)
		assert.Contains(t, html, "<!--BREAK-->", engine)
	}
}

func TestDefaultEngine(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)
	assert.IsType(t, Blackfriday{}, r)
}

func TestUnknownEngine(t *testing.T) {
	_, err := New("textile")
	assert.Error(t, err)
}
