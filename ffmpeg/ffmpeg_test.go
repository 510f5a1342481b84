package ffmpeg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	calls []call
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.err
}

func TestMakeMovie_Defaults(t *testing.T) {
	fr := &fakeRunner{}
	out, err := New(fr).MakeMovie(context.Background(), MovieOptions{StillsDir: "frames/"})
	require.NoError(t, err)
	assert.Equal(t, "frames.mp4", out)

	require.Len(t, fr.calls, 1)
	assert.Equal(t, "ffmpeg", fr.calls[0].name)
	assert.Equal(t, []string{
		"-framerate", "30",
		"-pattern_type", "glob",
		"-i", "frames/*.png",
		"-c:v", "libx264",
		"frames.mp4",
	}, fr.calls[0].args)
}

func TestMakeMovie_Explicit(t *testing.T) {
	fr := &fakeRunner{}
	out, err := New(fr).MakeMovie(context.Background(), MovieOptions{
		StillsDir: "my stills",
		Pattern:   "frame_*.jpg",
		FPS:       12,
		Output:    "out/run 1.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "out/run 1.mp4", out)
	assert.Equal(t, []string{
		"-framerate", "12",
		"-pattern_type", "glob",
		"-i", "my stills/frame_*.jpg",
		"-c:v", "libx264",
		"out/run 1.mp4",
	}, fr.calls[0].args, "spaces survive as single arguments")
}

func TestMakeMovie_Errors(t *testing.T) {
	fr := &fakeRunner{}
	_, err := New(fr).MakeMovie(context.Background(), MovieOptions{})
	require.ErrorIs(t, err, ErrMissingPath)
	assert.Empty(t, fr.calls)

	boom := errors.New("exit status 1")
	fr.err = boom
	_, err = New(fr).MakeMovie(context.Background(), MovieOptions{StillsDir: "d"})
	require.ErrorIs(t, err, boom)
}

func TestBreakMovie(t *testing.T) {
	fr := &fakeRunner{}
	tool := New(fr)

	pattern, err := tool.BreakMovie(context.Background(), "run.mp4", "stills", "")
	require.NoError(t, err)
	assert.Equal(t, "stills/%05d.jpg", pattern)
	assert.Equal(t, []string{"-i", "run.mp4", "stills/%05d.jpg"}, fr.calls[0].args)

	pattern, err = tool.BreakMovie(context.Background(), "run.mp4", "stills", "png")
	require.NoError(t, err)
	assert.Equal(t, "stills/%05d.png", pattern)

	_, err = tool.BreakMovie(context.Background(), "", "stills", "")
	require.ErrorIs(t, err, ErrMissingPath)
	assert.Len(t, fr.calls, 2)
}

func TestNew_DefaultRunner(t *testing.T) {
	tool := New(nil)
	assert.IsType(t, ExecRunner{}, tool.runner)
	assert.Equal(t, "ffmpeg", tool.Binary)
}
