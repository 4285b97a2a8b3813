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

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/kurrik/fauxfile"
	"github.com/spf13/cobra"

	"github.com/rimajibe/rim-website/internal/config"
	"github.com/rimajibe/rim-website/internal/content"
	"github.com/rimajibe/rim-website/internal/server"
	"github.com/rimajibe/rim-website/internal/watch"
)

// State shared by every command.
type App struct {
	fs      fauxfile.Filesystem
	log     *log.Logger
	cfgPath string
	cfg     *config.Config
}

// Loads the configuration named by --config.
func (a *App) loadConfig(_ *cobra.Command, _ []string) (err error) {
	a.cfg, err = config.Load(a.fs, a.cfgPath)
	return
}

// Runs the content build once.
func (a *App) build() (err error) {
	var report content.Report
	b := content.NewBuilder(a.fs, a.cfg)
	b.SetLogger(a.log)
	if report, err = b.Process(); err != nil {
		return
	}
	if report.SkippedResources > 0 {
		a.log.Printf("Skipped %v resource files\n", report.SkippedResources)
	}
	return
}

// Returns a watcher rebuilding the bundles on source changes.
func (a *App) watcher() *watch.Watcher {
	w := watch.New(a.fs, []string{a.cfg.PostsDir, a.cfg.ResourcesDir}, a.build)
	w.SetLogger(a.log)
	return w
}

// Returns a channel closed on interrupt.
func interrupted() <-chan struct{} {
	var (
		stop    = make(chan struct{})
		signals = make(chan os.Signal, 1)
	)
	signal.Notify(signals, os.Interrupt)
	go func() {
		<-signals
		signal.Stop(signals)
		close(stop)
	}()
	return stop
}

// Creates the command tree working on fs and logging to l.
func NewRootCmd(fs fauxfile.Filesystem, l *log.Logger) *cobra.Command {
	app := &App{
		fs:  fs,
		log: l,
	}
	root := &cobra.Command{
		Use:   "rimsite",
		Short: "Builds the blog and resources content bundles",
		Long: `rimsite reads the blog posts (Markdown with YAML front matter) and the
resource descriptors (JSON) of the website and writes the two JSON bundles
the Blog and Resources pages list. Without a subcommand it runs the build.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.build()
		},
	}
	root.PersistentFlags().StringVar(&app.cfgPath, "config", "site.yaml", "Site configuration file. Defaults apply when it is missing.")
	root.AddCommand(
		newBuildCmd(app),
		newWatchCmd(app),
		newServeCmd(app),
		newNewCmd(app),
	)
	return root
}

func newBuildCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Writes the posts and resources bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.build()
		},
	}
}

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuilds the bundles whenever a source file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.watcher().Run(interrupted())
		},
	}
}

func newServeCmd(app *App) *cobra.Command {
	var (
		addr    string
		rebuild bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Previews the blog and resources listings over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var s *server.Server
			if s, err = server.New(app.fs, app.cfg); err != nil {
				return
			}
			s.SetLogger(app.log)
			if rebuild {
				go func() {
					if err := app.watcher().Run(interrupted()); err != nil {
						app.log.Printf("Watcher stopped: %v\n", err)
					}
				}()
			}
			return s.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on.")
	cmd.Flags().BoolVar(&rebuild, "watch", false, "Rebuild the bundles when sources change.")
	return cmd
}

func newNewCmd(app *App) *cobra.Command {
	var (
		draft content.Draft
		tags  []string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Creates a blog post from the template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var path string
			for _, tag := range tags {
				if tag = strings.TrimSpace(tag); tag != "" {
					draft.Tags = append(draft.Tags, tag)
				}
			}
			if path, err = content.Create(app.fs, app.cfg.PostsDir, draft); err != nil {
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "Post title.")
	cmd.Flags().StringVar(&draft.Slug, "slug", "", "File name without extension. Derived from the title by default.")
	cmd.Flags().StringVar(&draft.Category, "category", "", "Post category.")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Comma separated tags.")
	cmd.Flags().StringVar(&draft.Excerpt, "excerpt", "", "Short summary shown in the listing.")
	cmd.MarkFlagRequired("title")
	return cmd
}
