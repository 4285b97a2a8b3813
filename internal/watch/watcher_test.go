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

package watch

import (
	"errors"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kurrik/fauxfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const WAIT = 5 * time.Second

// Starts a watcher over roots and returns the build counter.
func Setup(t *testing.T, roots []string, fail bool) (builds *int32) {
	builds = new(int32)
	rebuild := func() error {
		atomic.AddInt32(builds, 1)
		if fail {
			return errors.New("broken post")
		}
		return nil
	}
	w := New(&fauxfile.RealFilesystem{}, roots, rebuild)
	w.SetLogger(log.New(ioutil.Discard, "", log.LstdFlags))
	w.delay = 20 * time.Millisecond
	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- w.Run(stop) }()
	t.Cleanup(func() {
		close(stop)
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(WAIT):
			t.Errorf("Watcher did not stop")
		}
	})
	require.Eventually(t, func() bool { return atomic.LoadInt32(builds) == 1 }, WAIT, 10*time.Millisecond)
	return
}

func TestRebuildsOnChange(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blog")
	require.NoError(t, os.MkdirAll(root, 0755))
	builds := Setup(t, []string{root}, false)
	require.NoError(t, os.WriteFile(filepath.Join(root, "post.md"), []byte("---\ntitle: A\n---\n"), 0644))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(builds) >= 2 }, WAIT, 10*time.Millisecond)
}

func TestWatchesNewSubdirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "resources")
	require.NoError(t, os.MkdirAll(root, 0755))
	builds := Setup(t, []string{root}, false)
	sub := filepath.Join(root, "guides")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.Eventually(t, func() bool { return atomic.LoadInt32(builds) >= 2 }, WAIT, 10*time.Millisecond)
	before := atomic.LoadInt32(builds)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "guide.json"), []byte("{}"), 0644))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(builds) > before }, WAIT, 10*time.Millisecond)
}

func TestMissingRootIsWatchedThroughParent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content", "blog")
	builds := Setup(t, []string{root}, false)
	require.NoError(t, os.MkdirAll(root, 0755))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(builds) >= 2 }, WAIT, 10*time.Millisecond)
}

func TestBuildErrorsKeepWatching(t *testing.T) {
	root := t.TempDir()
	builds := Setup(t, []string{root}, true)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("a"), 0644))
	require.Eventually(t, func() bool { return atomic.LoadInt32(builds) >= 2 }, WAIT, 10*time.Millisecond)
	before := atomic.LoadInt32(builds)
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.md"), []byte("b"), 0644))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(builds) > before }, WAIT, 10*time.Millisecond)
}

func TestNearestDir(t *testing.T) {
	root := t.TempDir()
	w := New(&fauxfile.RealFilesystem{}, nil, nil)
	assert.Equal(t, root, w.nearestDir(filepath.Join(root, "a", "b")))
	assert.Equal(t, root, w.nearestDir(root))
}
