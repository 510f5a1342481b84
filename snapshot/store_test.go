package snapshot_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/ziptie/snapshot"
	"github.com/katalvlaran/ziptie/ziptie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *snapshot.Store {
	t.Helper()
	s, err := snapshot.Open(context.Background(), filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStore_SaveAndLatest(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	id, err := s.NewRun(ctx, "demo", 1, 4)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	first := ziptie.Description{Name: "demo", Level: 1, Bundles: []ziptie.BundleDescription{
		{Bundle: 0, Cables: []int{0, 1}},
	}}
	second := ziptie.Description{Name: "demo", Level: 1, Bundles: []ziptie.BundleDescription{
		{Bundle: 0, Cables: []int{0, 1}},
		{Bundle: 1, Cables: []int{0, 1, 2}},
	}}
	require.NoError(t, s.Save(ctx, id, 11, first))
	require.NoError(t, s.Save(ctx, id, 17, second))

	step, got, err := s.Latest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), step)
	assert.Equal(t, second, got)

	// Saving the same step again replaces it.
	require.NoError(t, s.Save(ctx, id, 17, first))
	_, got, err = s.Latest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestStore_EngineRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	zt, err := ziptie.New(4, ziptie.WithName("engine"))
	require.NoError(t, err)
	for i := 0; i < 11; i++ {
		_, err = zt.Step([]float64{1, 1, 0, 0})
		require.NoError(t, err)
	}

	id, err := s.NewRun(ctx, zt.Name(), zt.Level(), zt.MaxCables())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, id, zt.Steps(), zt.Describe()))

	step, got, err := s.Latest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, zt.Steps(), step)
	assert.Equal(t, zt.Describe(), got)
	assert.Equal(t, zt.Describe().String(), got.String())
}

func TestStore_UnknownRun(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, _, err := s.Latest(ctx, "missing")
	require.ErrorIs(t, err, snapshot.ErrRunNotFound)

	err = s.Save(ctx, "missing", 1, ziptie.Description{})
	require.ErrorIs(t, err, snapshot.ErrRunNotFound)

	// A run with no snapshots yet has no latest listing either.
	id, err := s.NewRun(ctx, "empty", 0, 2)
	require.NoError(t, err)
	_, _, err = s.Latest(ctx, id)
	require.ErrorIs(t, err, snapshot.ErrRunNotFound)
}

func TestStore_RunsAndReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := snapshot.Open(ctx, path)
	require.NoError(t, err)
	a, err := s.NewRun(ctx, "a", 0, 8)
	require.NoError(t, err)
	b, err := s.NewRun(ctx, "b", 2, 16)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.NoError(t, s.Close())

	s, err = snapshot.Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	byID := map[string]snapshot.Run{}
	for _, r := range runs {
		byID[r.ID] = r
	}
	assert.Equal(t, "a", byID[a].Name)
	assert.Equal(t, 8, byID[a].MaxCables)
	assert.Equal(t, 2, byID[b].Level)
	assert.False(t, byID[b].CreatedAt.IsZero())
}
