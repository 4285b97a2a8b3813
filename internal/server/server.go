// Copyright 2012 Arne Roomann-Kurrik
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

// Package server previews the content bundles over HTTP.
package server

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kurrik/fauxfile"

	"github.com/rimajibe/rim-website/internal/config"
	"github.com/rimajibe/rim-website/internal/fsutil"
	"github.com/rimajibe/rim-website/internal/listing"
	"github.com/rimajibe/rim-website/internal/markdown"
	"github.com/rimajibe/rim-website/internal/render"
)

const (
	BlogPath      = "/blog"
	ResourcesPath = "/resources"
)

// Serves listing pages built from the bundles on disk, plus static files
// from the public directory.
type Server struct {
	cfg   *config.Config
	fs    fauxfile.Filesystem
	log   *log.Logger
	pages *render.Renderer
}

// Creates a Server for the given configuration.
func New(fs fauxfile.Filesystem, cfg *config.Config) (s *Server, err error) {
	var md markdown.Renderer
	if md, err = markdown.New(cfg.Markdown); err != nil {
		return
	}
	s = &Server{
		cfg:   cfg,
		fs:    fs,
		log:   log.New(os.Stderr, "", log.LstdFlags),
		pages: render.New(md),
	}
	return
}

// Replaces the request logger.
func (s *Server) SetLogger(l *log.Logger) {
	s.log = l
}

// Returns the routing handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(BlogPath, s.handleBlog)
	mux.HandleFunc(BlogPath+"/", s.handlePost)
	mux.HandleFunc(ResourcesPath, s.handleResources)
	mux.HandleFunc("/", s.handleStatic)
	return mux
}

// Serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	server := &http.Server{
		Addr:           addr,
		Handler:        s.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	s.log.Printf("Serving %v on %v\n", s.cfg.PublicDir, addr)
	return server.ListenAndServe()
}

// Reads the listing state from the query string.
func stateFromQuery(r *http.Request) listing.State {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 1
	}
	return listing.State{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Page:     page,
	}
}

// Opens a bundle. A missing bundle reads as an empty array.
func (s *Server) openBundle(p string) (r io.Reader, err error) {
	var data []byte
	if !fsutil.Exists(s.fs, p) {
		s.log.Printf("Bundle not found %v, run the build first\n", p)
		return strings.NewReader("[]"), nil
	}
	if data, err = fsutil.ReadFile(s.fs, p); err != nil {
		err = fmt.Errorf("read bundle %v: %w", p, err)
		return
	}
	return bytes.NewReader(data), nil
}

func (s *Server) loadPosts() (posts []listing.Post, err error) {
	var r io.Reader
	if r, err = s.openBundle(s.cfg.PostsBundle); err != nil {
		return
	}
	if posts, err = listing.LoadPosts(r); err != nil {
		err = fmt.Errorf("load %v: %w", s.cfg.PostsBundle, err)
	}
	return
}

func (s *Server) loadResources() (resources []listing.Resource, err error) {
	var r io.Reader
	if r, err = s.openBundle(s.cfg.ResourcesBundle); err != nil {
		return
	}
	if resources, err = listing.LoadResources(r); err != nil {
		err = fmt.Errorf("load %v: %w", s.cfg.ResourcesBundle, err)
	}
	return
}

func (s *Server) blogOptions() listing.Options {
	return listing.Options{
		PageSize:    s.cfg.Blog.PageSize,
		AllCategory: s.cfg.Blog.AllCategory,
		SortByDate:  true,
	}
}

func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, out string, err error) {
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, out)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Printf("Error serving %q: %v\n", r.URL.Path, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	var (
		posts []listing.Post
		out   string
		err   error
	)
	s.log.Printf("Path: %q", r.URL.Path)
	if posts, err = s.loadPosts(); err != nil {
		s.fail(w, r, err)
		return
	}
	c := listing.NewController(posts, listing.PostSchema, s.blogOptions())
	c.Apply(stateFromQuery(r))
	out, err = s.pages.Listing(render.BlogListing(c, BlogPath))
	s.writeHTML(w, r, out, err)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	var (
		posts []listing.Post
		post  listing.Post
		ok    bool
		out   string
		err   error
	)
	slug := strings.TrimPrefix(r.URL.Path, BlogPath+"/")
	if slug == "" {
		s.handleBlog(w, r)
		return
	}
	s.log.Printf("Path: %q", r.URL.Path)
	if posts, err = s.loadPosts(); err != nil {
		s.fail(w, r, err)
		return
	}
	c := listing.NewController(posts, listing.PostSchema, s.blogOptions())
	c.SelectWhere(func(p listing.Post) bool { return p.Slug == slug })
	if post, ok = c.Selected(); !ok {
		http.NotFound(w, r)
		return
	}
	out, err = s.pages.PostDetail(post, BlogPath)
	s.writeHTML(w, r, out, err)
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	var (
		resources []listing.Resource
		out       string
		err       error
	)
	s.log.Printf("Path: %q", r.URL.Path)
	if resources, err = s.loadResources(); err != nil {
		s.fail(w, r, err)
		return
	}
	c := listing.NewController(resources, listing.ResourceSchema, listing.Options{
		PageSize:    s.cfg.Resources.PageSize,
		AllCategory: s.cfg.Resources.AllCategory,
	})
	c.Apply(stateFromQuery(r))
	out, err = s.pages.Listing(render.ResourceListing(c, ResourcesPath))
	s.writeHTML(w, r, out, err)
}

// Serves files under the public directory, using index.html for
// directories.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	var (
		err  error
		p    string
		info os.FileInfo
		data []byte
	)
	s.log.Printf("Path: %q", r.URL.Path)
	p = filepath.Join(s.cfg.PublicDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	if info, err = s.fs.Stat(p); err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		p = filepath.Join(p, "index.html")
		if info, err = s.fs.Stat(p); err != nil {
			http.NotFound(w, r)
			return
		}
	}
	if data, err = fsutil.ReadFile(s.fs, p); err != nil {
		s.fail(w, r, err)
		return
	}
	http.ServeContent(w, r, filepath.Base(p), info.ModTime(), bytes.NewReader(data))
}
