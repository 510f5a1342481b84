// SPDX-License-Identifier: MIT

// Command ziptie feeds activity vectors, one per line, through a ZipTie
// and prints the bundles it learns.
//
//	ziptie -max-cables 16 -input vectors.txt -describe-every 1000
//
// Settings come from -config (YAML), .env and ZIPTIE_* variables; flags
// given on the command line win.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/katalvlaran/ziptie/config"
	"github.com/katalvlaran/ziptie/ffmpeg"
	"github.com/katalvlaran/ziptie/logging"
	"github.com/katalvlaran/ziptie/snapshot"
	"github.com/katalvlaran/ziptie/ziptie"
)

func main() {
	cfg, err := settings(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	in := io.Reader(os.Stdin)
	if cfg.Input != "" && cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			log.Fatalf("Failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logging.Info("main", "name=%s level=%d max_cables=%d input=%s", cfg.Name, cfg.Level, cfg.MaxCables, cfg.Input)
	if err = run(ctx, cfg, in, os.Stdout, ffmpeg.New(nil)); err != nil {
		log.Fatalf("ziptie: %v", err)
	}
}

// settings parses args, loads the configuration they point to and lets
// every flag given explicitly override it. Validation runs last, so a
// flag can repair a value the file or environment got wrong.
func settings(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("ziptie", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to YAML config file")
	input := fs.String("input", "", "Vector file, one vector per line (- for stdin)")
	maxCables := fs.Int("max-cables", 0, "Cable (and bundle) capacity")
	level := fs.Int("level", 0, "Hierarchy level")
	name := fs.String("name", "", "Instance name")
	describeEvery := fs.Int("describe-every", 0, "Print the bundle listing every N steps (0 = only at the end)")
	snapshotPath := fs.String("snapshot", "", "SQLite file to save bundle snapshots to")
	movie := fs.String("movie", "", "Stills directory to render into a movie when done")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.LoadUnvalidated(*configPath)
	if err != nil {
		return config.Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "max-cables":
			cfg.MaxCables = *maxCables
		case "level":
			cfg.Level = *level
		case "name":
			cfg.Name = *name
		case "describe-every":
			cfg.DescribeEvery = *describeEvery
		case "snapshot":
			cfg.Snapshot.Path = *snapshotPath
		case "movie":
			cfg.Movie.StillsDir = *movie
		}
	})
	if err = cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// run steps a fresh ZipTie over every vector in in and writes the results
// to out. Snapshots and movie rendering happen only when configured.
func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, movies *ffmpeg.Tool) error {
	lg := logging.New("ziptie")
	opts := append(cfg.ZipTieOptions(),
		ziptie.WithLogger(lg),
		ziptie.WithOnBundle(func(ev ziptie.BundleEvent) {
			fmt.Fprintf(out, "step %d: bundle %d %s from %v\n", ev.Step, ev.Bundle, ev.Kind, ev.Cables)
		}),
	)
	zt, err := ziptie.New(cfg.MaxCables, opts...)
	if err != nil {
		return err
	}

	var (
		store *snapshot.Store
		runID string
	)
	if cfg.Snapshot.Path != "" {
		store, err = snapshot.Open(ctx, cfg.Snapshot.Path)
		if err != nil {
			return fmt.Errorf("open snapshots: %w", err)
		}
		defer store.Close()
		runID, err = store.NewRun(ctx, zt.Name(), zt.Level(), zt.MaxCables())
		if err != nil {
			return err
		}
		lg.Infof("snapshot run %s in %s", runID, cfg.Snapshot.Path)
	}

	var last []float64
	err = readVectors(in, func(_ int, v []float64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		acts, err := zt.Step(v)
		if err != nil {
			return err
		}
		last = acts
		n := zt.Steps()
		if cfg.DescribeEvery > 0 && n%uint64(cfg.DescribeEvery) == 0 {
			fmt.Fprintf(out, "after %d steps\n%s", n, zt.Describe())
		}
		if store != nil && cfg.Snapshot.Every > 0 && n%uint64(cfg.Snapshot.Every) == 0 {
			return store.Save(ctx, runID, n, zt.Describe())
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "steps: %d bundles: %d full: %t\n", zt.Steps(), zt.BundleCount(), zt.IsFull())
	fmt.Fprintf(out, "activities: %s\n", formatActivities(last))
	fmt.Fprint(out, zt.Describe())

	if store != nil && zt.Steps() > 0 {
		if err = store.Save(ctx, runID, zt.Steps(), zt.Describe()); err != nil {
			return err
		}
	}
	if cfg.Movie.StillsDir != "" {
		path, err := movies.MakeMovie(ctx, ffmpeg.MovieOptions{
			StillsDir: cfg.Movie.StillsDir,
			Pattern:   cfg.Movie.Pattern,
			FPS:       cfg.Movie.FPS,
			Output:    cfg.Movie.Output,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "movie: %s\n", path)
	}

	return nil
}

// formatActivities prints the non-zero bundle activities as bundle=value.
func formatActivities(a []float64) string {
	var parts []string
	for b, v := range a {
		if v != 0 {
			parts = append(parts, strconv.Itoa(b)+"="+strconv.FormatFloat(v, 'g', 4, 64))
		}
	}
	if len(parts) == 0 {
		return "none"
	}

	return strings.Join(parts, " ")
}
