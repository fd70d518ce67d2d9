package mesher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/voxelstack/blocks/internal/chunk"
	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/voxel"
)

func newPopulatedGrid(t *testing.T, side int32, n int) (*chunk.Grid, *voxel.Palette, []coord.ChunkPos) {
	t.Helper()
	palette, err := voxel.DefaultLoad()
	require.NoError(t, err)

	airID := palette.IDOfCommon(voxel.CommonAir)
	stoneID := palette.IDOfCommon(voxel.CommonStone)
	grid := chunk.NewGrid(side, airID)

	positions := make([]coord.ChunkPos, 0, n)
	for i := 0; i < n; i++ {
		pos := coord.ChunkPos{X: int32(i) % side, Y: (int32(i) / side) % side, Z: int32(i) / (side * side)}
		c := grid.ChunkAt(pos)
		c.SetVoxelQ(coord.LocalPos{X: 0, Y: 0, Z: 0}, stoneID)
		c.RecomputeHighestPoint(airID)
		grid.MarkPresent(pos)
		positions = append(positions, pos)
	}
	return grid, palette, positions
}

func TestPoolSubmitCoalescesDuplicateChunk(t *testing.T) {
	grid, palette, positions := newPopulatedGrid(t, 4, 1)
	pool := NewPool(grid, palette, 1)
	defer pool.Shutdown()

	pool.Submit(positions[0])
	pool.Submit(positions[0])

	require.Eventually(t, func() bool {
		_, ok := pool.PollResult()
		return ok
	}, time.Second, time.Millisecond)

	_, ok := pool.PollResult()
	require.False(t, ok, "duplicate submission must not produce a second output")
}

func TestPoolMeshesGreedyByDefault(t *testing.T) {
	grid, palette, positions := newPopulatedGrid(t, 4, 1)
	pool := NewPool(grid, palette, 1)
	defer pool.Shutdown()

	pool.Submit(positions[0])

	var out *Output
	require.Eventually(t, func() bool {
		var ok bool
		out, ok = pool.PollResult()
		return ok
	}, time.Second, time.Millisecond)

	require.NotNil(t, out)
	require.Equal(t, positions[0], out.ChunkPos)
}

func TestPoolSkipsEmptyChunk(t *testing.T) {
	palette, err := voxel.DefaultLoad()
	require.NoError(t, err)
	grid := chunk.NewGrid(4, palette.IDOfCommon(voxel.CommonAir))

	pool := NewPool(grid, palette, 1)
	defer pool.Shutdown()

	pool.Submit(coord.ChunkPos{X: 0, Y: 0, Z: 0})

	time.Sleep(200 * time.Millisecond)
	_, ok := pool.PollResult()
	require.False(t, ok, "an all-air chunk must produce no output")
}

// TestPoolShutdownDrainsPromptly is S6: submitting a batch of non-empty
// chunks and immediately shutting down must return quickly rather than
// draining the whole queue, and must not panic or deadlock.
func TestPoolShutdownDrainsPromptly(t *testing.T) {
	const n = 100
	grid, palette, positions := newPopulatedGrid(t, 6, n)
	pool := NewPool(grid, palette, DefaultWorkerCount)

	for _, pos := range positions {
		pool.Submit(pos)
	}

	start := time.Now()
	pool.Shutdown()
	elapsed := time.Since(start)

	require.Less(t, elapsed, 500*time.Millisecond, "shutdown must not wait for the whole queue to drain")

	seen := 0
	for {
		if _, ok := pool.PollResult(); ok {
			seen++
			continue
		}
		break
	}
	require.LessOrEqual(t, seen, n)
}

func TestPoolSetMeshModeSwitchesAlgorithm(t *testing.T) {
	grid, palette, positions := newPopulatedGrid(t, 4, 1)
	// A 2x1 slab: Greedy merges it into 6 quads, Naive emits 10, so the
	// output shows which algorithm ran.
	grid.ChunkAt(positions[0]).SetVoxelQ(coord.LocalPos{X: 1, Y: 0, Z: 0}, palette.IDOfCommon(voxel.CommonStone))
	pool := NewPool(grid, palette, 1)
	defer pool.Shutdown()

	pool.SetMeshMode(Naive)
	pool.Submit(positions[0])

	var pooledOut *Output
	require.Eventually(t, func() bool {
		var ok bool
		pooledOut, ok = pool.PollResult()
		return ok
	}, time.Second, time.Millisecond)
	require.NotNil(t, pooledOut)

	naive := Naive(grid, palette, positions[0])
	require.Equal(t, len(naive.SolidIndices), len(pooledOut.SolidIndices))
	require.NotEqual(t, len(Greedy(grid, palette, positions[0]).SolidIndices), len(pooledOut.SolidIndices))
}
