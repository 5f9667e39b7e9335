package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/wlmath-dwl/neuron/internal/config"
	"github.com/wlmath-dwl/neuron/internal/engine"
	"github.com/wlmath-dwl/neuron/internal/paint"
	"github.com/wlmath-dwl/neuron/internal/script"
	"github.com/wlmath-dwl/neuron/internal/shapes"
	"github.com/wlmath-dwl/neuron/internal/view"
)

var (
	replayPNG    string
	replayConfig string
	replayWatch  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Replay a YAML gesture script",
	Long: "Replay a YAML gesture script against a fresh engine and print the\n" +
		"resulting scene. With --png the final frame is rasterized, with --watch\n" +
		"the script is replayed again each time it is saved.",
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayPNG, "png", "", "write the final frame to this PNG file")
	replayCmd.Flags().StringVar(&replayConfig, "config", "", "TOML file overlaid on the NEURON_* environment")
	replayCmd.Flags().BoolVarP(&replayWatch, "watch", "w", false, "replay again whenever FILE changes")
}

func runReplay(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if replayConfig != "" {
		cfg, err = config.LoadFile(replayConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	path := filepath.Clean(args[0])
	out := cmd.OutOrStdout()
	if !replayWatch {
		return replayOnce(out, cfg, path)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watch(ctx, out, cfg, path)
}

func replayOnce(out io.Writer, cfg *config.Config, path string) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}

	tr := view.NewTransform()
	opts := append(cfg.EngineOptions(),
		engine.WithRegistry(shapes.NewRegistry()),
		engine.WithTransform(tr),
	)
	var raster *paint.Raster
	if replayPNG != "" {
		raster, err = paint.NewRaster(int(s.Width), int(s.Height))
		if err != nil {
			return err
		}
		opts = append(opts, engine.WithPainter(paint.NewPainter(tr, raster)))
	}
	e := engine.New(opts...)

	res, runErr := script.Run(e, s)

	fmt.Fprintf(out, "%s %s\n", brand.Sprint("neuron replay"), subtle.Sprint(path))
	fmt.Fprintf(out, "  steps  %d/%d\n", res.Steps, len(s.Steps))
	fmt.Fprintf(out, "  undo   %d  redo %d\n", res.Depth.Undo, res.Depth.Redo)
	fmt.Fprintf(out, "  cells  %d\n", len(e.Cells()))
	if cells := e.Cells(); len(cells) > 0 {
		fmt.Fprintln(out, cellTable(cells))
	}
	if runErr != nil {
		return runErr
	}

	if raster != nil {
		e.Render()
		if err := raster.SavePNG(replayPNG); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		fmt.Fprintf(out, "  png    %s\n", replayPNG)
	}
	good.Fprintln(out, "done")
	return nil
}

// watch replays path after every burst of writes until ctx is done. The
// directory is watched since editors often replace the file on save.
func watch(ctx context.Context, out io.Writer, cfg *config.Config, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	run := func() {
		if err := replayOnce(out, cfg, path); err != nil {
			bad.Fprintf(out, "replay failed: %v\n", err)
		}
		subtle.Fprintln(out, "watching for changes...")
	}
	run()

	debounce := time.NewTimer(0)
	<-debounce.C
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debounce.Reset(100 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		case <-debounce.C:
			run()
		}
	}
}
