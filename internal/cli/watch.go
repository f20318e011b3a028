package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/preview"
)

func (a *app) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <snapshot>",
		Short: "Re-price a snapshot every time it is saved",
		Long: `Watch a snapshot file and print a fresh estimate after each save.

Rapid saves are debounced (preview.debounce in the config) and only the
newest version of the file is priced. A scope that is still missing data
prints a short notice instead of an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

func (a *app) watch(ctx context.Context, path string, out io.Writer) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve snapshot path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	var outMu sync.Mutex
	p := preview.New(a.calc, a.cfg.Preview.Debounce, func(u preview.Update) {
		outMu.Lock()
		defer outMu.Unlock()
		printUpdate(out, u)
	})
	defer p.Stop()

	submit := func() {
		snap, err := readSnapshot(path)
		if err == nil {
			snap, err = a.withRates(ctx, snap)
		}
		if err != nil {
			a.log.Warn("snapshot not loaded", zap.String("path", path), zap.Error(err))
			return
		}
		p.Submit(snap)
	}

	a.log.Info("watching snapshot", zap.String("path", path), zap.Duration("debounce", a.cfg.Preview.Debounce))
	submit()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				submit()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("file watcher error", zap.Error(err))
		}
	}
}

func printUpdate(out io.Writer, u preview.Update) {
	switch {
	case u.Err != nil:
		fmt.Fprintf(out, "#%d error: %v\n", u.Generation, u.Err)
	case !u.Ready:
		fmt.Fprintf(out, "#%d insufficient data, keep editing\n", u.Generation)
	default:
		fmt.Fprintf(out, "#%d\n%s\n", u.Generation, estimate.Summary(u.Estimate))
	}
}
