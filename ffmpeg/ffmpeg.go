// SPDX-License-Identifier: MIT

// Package ffmpeg turns directories of still frames into movies and back by
// invoking the ffmpeg binary. Arguments are passed as an argv slice, never
// through a shell, so paths with spaces or quotes are safe.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/ziptie/logging"
)

// Defaults for MakeMovie and BreakMovie.
const (
	DefaultPattern   = "*.png"
	DefaultFPS       = 30
	DefaultStillsExt = ".jpg"
	Codec            = "libx264"
)

// ErrMissingPath is returned when a required directory or file is empty.
var ErrMissingPath = errors.New("ffmpeg: missing path")

// Runner executes a program with arguments.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec and folds stderr into the error.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, logging.Truncate(msg, 300))
	}

	return nil
}

// Tool wraps a Runner and the ffmpeg binary name.
type Tool struct {
	Binary string
	runner Runner
	log    *logging.Logger
}

// New returns a Tool. A nil runner means ExecRunner.
func New(runner Runner) *Tool {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Tool{Binary: "ffmpeg", runner: runner, log: logging.New("ffmpeg")}
}

// MovieOptions describes a MakeMovie call. Zero fields take the defaults.
type MovieOptions struct {
	StillsDir string
	Pattern   string // glob relative to StillsDir, default "*.png"
	FPS       int    // default 30
	Output    string // default "<StillsDir>.mp4"
}

// MakeMovie packs the stills matching the pattern into an H.264 movie and
// returns the movie path.
func (t *Tool) MakeMovie(ctx context.Context, o MovieOptions) (string, error) {
	args, out, err := movieArgs(o)
	if err != nil {
		return "", err
	}
	t.log.Event("make movie", "output", out, "args", strings.Join(args, " "))
	if err = t.runner.Run(ctx, t.Binary, args...); err != nil {
		return "", fmt.Errorf("make movie %s: %w", out, err)
	}

	return out, nil
}

// BreakMovie writes every frame of movie into stillsDir as numbered files
// (00001<ext>, 00002<ext>, ...) and returns the output pattern.
func (t *Tool) BreakMovie(ctx context.Context, movie, stillsDir, ext string) (string, error) {
	if movie == "" || stillsDir == "" {
		return "", fmt.Errorf("break movie: %w", ErrMissingPath)
	}
	if ext == "" {
		ext = DefaultStillsExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	pattern := filepath.Join(stillsDir, "%05d"+ext)
	t.log.Event("break movie", "movie", movie, "stills", pattern)
	if err := t.runner.Run(ctx, t.Binary, "-i", movie, pattern); err != nil {
		return "", fmt.Errorf("break movie %s: %w", movie, err)
	}

	return pattern, nil
}

// movieArgs applies defaults and builds the ffmpeg argument list.
func movieArgs(o MovieOptions) ([]string, string, error) {
	if o.StillsDir == "" {
		return nil, "", fmt.Errorf("make movie: %w", ErrMissingPath)
	}
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Output == "" {
		o.Output = filepath.Clean(o.StillsDir) + ".mp4"
	}

	return []string{
		"-framerate", strconv.Itoa(o.FPS),
		"-pattern_type", "glob",
		"-i", filepath.Join(o.StillsDir, o.Pattern),
		"-c:v", Codec,
		o.Output,
	}, o.Output, nil
}
