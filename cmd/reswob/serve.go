package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/blackcoderx/reswob/pkg/core"
	"github.com/blackcoderx/reswob/pkg/core/tools"
	"github.com/blackcoderx/reswob/pkg/render"
	"github.com/blackcoderx/reswob/pkg/storage"
)

var serveWatch bool

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "drop the cached collection when the file changes on disk")
	rootCmd.AddCommand(serveCmd, watchCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer JSON tool calls on stdin/stdout for an editor extension",
	Long: `Serve reads one JSON object per line from stdin:

  {"id": 1, "tool": "save_request", "args": {"name": "...", "method": "GET", "url": "..."}}

and writes one response per line to stdout. Send {"tool": "list_tools"} to
discover the available tools.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d := core.NewDispatcher(a.log.WithName("dispatch"))
		tools.RegisterAll(d, a.workspace())

		if serveWatch {
			go func() {
				if err := watchCollection(ctx, a.store, a.log, nil); err != nil {
					a.log.Error(err, "collection watcher stopped")
				}
			}()
		}

		a.log.Info("serving tool calls", "tools", len(d.Tools()))
		return core.NewBridge(d).Serve(ctx, os.Stdin, os.Stdout)
	}),
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprint the folder tree whenever the collection file changes",
	Args:  cobra.NoArgs,
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		show := func() {
			doc, err := a.store.Document()
			if err != nil {
				fmt.Fprintln(os.Stderr, render.ErrorStyle.Render(err.Error()))
				return
			}
			fmt.Println(render.FolderTree(doc))
		}
		show()
		return watchCollection(ctx, a.store, a.log, show)
	}),
}

// watchCollection invalidates the store cache whenever the collection file
// is written, created, renamed or removed, then calls onChange if set. It
// watches the containing directory so atomic renames are seen.
func watchCollection(ctx context.Context, store *storage.Store, log logr.Logger, onChange func()) error {
	path, err := store.Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.V(1).Info("watching collection", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Has(fsnotify.Chmod) {
				continue
			}
			log.V(1).Info("collection changed on disk", "op", event.Op.String())
			store.Invalidate()
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(err, "watch error")
		}
	}
}
