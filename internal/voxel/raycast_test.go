package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestTraverseRayStartsAtOrigin(t *testing.T) {
	path := TraverseRay(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 5)
	require.NotEmpty(t, path)
	require.Equal(t, IVec3{0, 0, 0}, path[0])
}

func TestTraverseRayBoundedByRange(t *testing.T) {
	path := TraverseRay(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 4)
	require.LessOrEqual(t, len(path), int(4*maxRangeMultiplier))
}

func TestTraverseRayMonotonicAlongAxis(t *testing.T) {
	path := TraverseRay(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10)
	for i := 1; i < len(path); i++ {
		require.GreaterOrEqual(t, path[i].X, path[i-1].X)
		require.Equal(t, path[i-1].Y, path[i].Y)
		require.Equal(t, path[i-1].Z, path[i].Z)
	}
}
