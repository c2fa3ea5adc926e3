// SPDX-License-Identifier: Unlicense OR MIT

// Command viewer is a minimal demonstration of cache.Client: it opens a
// window, decodes the path given on the command line through the cache,
// and pre-warms the cache for the path's lexicographic neighbors in the
// same directory. It implements none of the zoom, pan, menu, or keybinding
// behavior of a real viewer; those remain out of scope (spec.md §1).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/widget/material"

	imgcache "git.sr.ht/~ferrite/viewer/cache"
	"git.sr.ht/~ferrite/viewer/internal/profiling"
)

var (
	th         = material.NewTheme(gofont.Collection())
	profileOpt string
)

func main() {
	flag.StringVar(&profileOpt, "profile", "none", "create the provided kind of profile. Use one of [none, cpu, mem, block, goroutine, mutex, trace]")
	flag.Parse()
	path := flag.Arg(0)
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: viewer <image-path>")
		os.Exit(2)
	}

	client, err := imgcache.New(imgcache.DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "starting cache:", err)
		os.Exit(1)
	}
	defer client.Close()

	preloadNeighbors(client, path)

	ui := &UI{client: client, path: path}
	go func() {
		w := app.NewWindow(app.Title("viewer"))
		if err := ui.Run(w); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

// preloadNeighbors pre-warms the cache for the lexicographic neighbors of
// path in its own directory, standing in for the out-of-scope directory
// scanner collaborator (spec.md §1).
func preloadNeighbors(client *imgcache.Client, path string) {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	base := filepath.Base(path)
	idx := sort.SearchStrings(names, base)
	for _, offset := range []int{-1, 1} {
		i := idx + offset
		if i < 0 || i >= len(names) {
			continue
		}
		_ = client.CacheImage(context.Background(), filepath.Join(dir, names[i]))
	}
}

type (
	C = layout.Context
	D = layout.Dimensions
)

// UI holds the window state for the demo.
type UI struct {
	client *imgcache.Client
	path   string

	handle *imgcache.Handle
	loaded bool
	img    widget.Image
}

// Run handles window events and renders a single decoded image. Profiling,
// if requested via -profile, spans the whole window lifetime.
func (ui *UI) Run(w *app.Window) error {
	profiler := profiling.Start(profiling.Mode(profileOpt))
	var ops op.Ops
	for e := range w.Events() {
		switch e := e.(type) {
		case system.DestroyEvent:
			profiler.Stop()
			if ui.handle != nil {
				ui.handle.Release()
			}
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			ui.layout(gtx)
			e.Frame(&ops)
		}
	}
	return nil
}

func (ui *UI) layout(gtx C) D {
	if !ui.loaded {
		h, err := ui.client.GetImage(context.Background(), ui.path)
		if err != nil {
			return material.Body1(th, fmt.Sprintf("failed to load %s: %v", ui.path, err)).Layout(gtx)
		}
		ui.handle = h
		ui.img = widget.Image{Src: paint.NewImageOp(h.Image())}
		ui.loaded = true
	}
	return ui.img.Layout(gtx)
}
