package incremental

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/babylon-incremental/internal/logger"
	"github.com/Faultbox/babylon-incremental/pkg/formats"
)

// ErrNoSource is returned when Run is called without a source directory.
var ErrNoSource = errors.New("no source directory provided")

// RunConfig describes one batch run.
type RunConfig struct {
	Source    string // directory to scan; relative paths resolve against the working directory
	Recursive bool
	Workers   int // parallel sidecar writes per scene; <= 1 writes synchronously
	Options
}

// DocumentResult is the outcome of one scene.
type DocumentResult struct {
	Source     string
	Output     string
	ShellBytes int
	Stats      Stats
	Duration   time.Duration
}

// Report summarises a batch run.
type Report struct {
	Source    string
	Documents []DocumentResult
}

// Run converts every scene found under cfg.Source. The first failing scene
// stops the run; files already written stay on disk.
func Run(ctx context.Context, cfg RunConfig) (Report, error) {
	if cfg.Source == "" {
		return Report{}, ErrNoSource
	}

	src, err := filepath.Abs(filepath.FromSlash(cfg.Source))
	if err != nil {
		return Report{}, fmt.Errorf("resolving %s: %w", cfg.Source, err)
	}
	report := Report{Source: src}

	files, err := Discover(src, cfg.Recursive)
	if err != nil {
		return report, fmt.Errorf("listing %s: %w", src, err)
	}
	logger.Debug("discovered scenes", zap.String("src", src), zap.Int("count", len(files)))
	if len(files) == 0 {
		logger.Warn("no scene files found", zap.String("src", src), zap.Bool("recursive", cfg.Recursive))
	}

	w := NewWalker(cfg.Options)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := w.ProcessFile(ctx, path, cfg.Workers)
		if err != nil {
			return report, fmt.Errorf("processing %s: %w", path, err)
		}
		report.Documents = append(report.Documents, res)
	}
	return report, nil
}

// ProcessFile converts one scene file, writing its sidecars and then its
// incremental shell next to it. The source file is left untouched.
func (w *Walker) ProcessFile(ctx context.Context, path string, workers int) (DocumentResult, error) {
	start := time.Now()
	res := DocumentResult{Source: path}

	scene, err := formats.ParseBabylonFile(path)
	if err != nil {
		return res, err
	}

	dir := filepath.Dir(path)
	basename := SceneBasename(filepath.Base(path))

	var sink Sink = DirSink{Dir: dir}
	if workers > 1 {
		sink = NewParallelSink(ctx, sink, workers)
	}

	// A failed parallel write cancels the writes queued after it, so Wait
	// holds the root cause and Process may only see the cancellation.
	stats, err := w.Process(scene, basename, sink)
	if werr := sink.Wait(); werr != nil {
		err = werr
	}
	res.Stats = stats
	if err != nil {
		return res, err
	}

	res.Output = filepath.Join(dir, ShellName(basename))
	shell := scene.Bytes()
	if err := os.WriteFile(res.Output, shell, 0644); err != nil {
		return res, fmt.Errorf("writing %s: %w", res.Output, err)
	}
	res.ShellBytes = len(shell)
	res.Duration = time.Since(start)

	logger.Info("wrote incremental scene",
		zap.String("file", res.Output),
		zap.String("shell_size", humanize.Bytes(uint64(res.ShellBytes))),
		zap.String("sidecar_size", humanize.Bytes(uint64(stats.SidecarBytes))),
		zap.Int("meshes", stats.MeshesExtracted),
		zap.Int("geometries", stats.GeometriesExtracted),
		zap.Duration("took", res.Duration),
	)
	return res, nil
}
