// makeincremental splits Babylon scene exports into incremental scenes that
// load their mesh and geometry data on demand.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/babylon-incremental/internal/config"
	"github.com/Faultbox/babylon-incremental/internal/incremental"
	"github.com/Faultbox/babylon-incremental/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("effective config: %+v", *cfg)

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("Wrote config to %s\n", path)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	patterns, err := cfg.ExcludePatterns()
	if err != nil {
		return err
	}

	fmt.Println("Making BabylonJS export incremental:")
	fmt.Println("  src:", cfg.Source.Dir)
	fmt.Printf("  options: excludedMeshes=[%s] minMeshSize=%d recursive=%t workers=%d\n",
		strings.Join(cfg.Extract.ExcludedMeshes, ", "), cfg.Extract.MinMeshSize,
		cfg.Source.Recursive, cfg.Extract.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := incremental.Run(ctx, incremental.RunConfig{
		Source:    cfg.Source.Dir,
		Recursive: cfg.Source.Recursive,
		Workers:   cfg.Extract.Workers,
		Options: incremental.Options{
			ExcludedMeshes: patterns,
			MinMeshSize:    cfg.Extract.MinMeshSize,
		},
	})
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}

	for _, doc := range report.Documents {
		fmt.Printf("%s: %d meshes, %d geometries extracted (%s sidecars, %s shell)\n",
			doc.Output, doc.Stats.MeshesExtracted, doc.Stats.GeometriesExtracted,
			humanize.Bytes(uint64(doc.Stats.SidecarBytes)), humanize.Bytes(uint64(doc.ShellBytes)))
	}
	if len(report.Documents) == 0 {
		fmt.Fprintf(os.Stderr, "No .babylon files found in %s\n", report.Source)
	}
	return nil
}
