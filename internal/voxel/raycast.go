package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxRangeMultiplier bounds how many voxel positions TraverseRay will visit,
// expressed as a multiple of the requested range, matching the bound used
// by the original Amanatides-Woo implementation this is ported from.
const maxRangeMultiplier = 3

// IVec3 is an integer voxel position, used here rather than coord.GlobalPos
// to keep this package free of a dependency on the chunk grid.
type IVec3 struct {
	X, Y, Z int32
}

// TraverseRay walks the voxel grid from origin along direction (which need
// not be normalised) for up to 'rng' world units, returning every integer
// voxel position the ray passes through in order. It implements the
// Amanatides-Woo DDA algorithm: used by gameplay code to pick blocks, not
// by the mesher.
func TraverseRay(origin, direction mgl32.Vec3, rng float32) []IVec3 {
	direction = direction.Normalize()

	voxel := IVec3{
		X: int32(math.Floor(float64(origin.X()))),
		Y: int32(math.Floor(float64(origin.Y()))),
		Z: int32(math.Floor(float64(origin.Z()))),
	}

	step := [3]int32{sign(direction.X()), sign(direction.Y()), sign(direction.Z())}

	tMax := [3]float32{
		axisTMax(origin.X(), direction.X(), voxel.X),
		axisTMax(origin.Y(), direction.Y(), voxel.Y),
		axisTMax(origin.Z(), direction.Z(), voxel.Z),
	}
	tDelta := [3]float32{
		axisTDelta(direction.X()),
		axisTDelta(direction.Y()),
		axisTDelta(direction.Z()),
	}

	maxSteps := int(rng * maxRangeMultiplier)
	out := make([]IVec3, 0, maxSteps)
	out = append(out, voxel)

	for len(out) < maxSteps {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}

		if tMax[0] > rng && tMax[1] > rng && tMax[2] > rng {
			break
		}

		switch axis {
		case 0:
			voxel.X += step[0]
			tMax[0] += tDelta[0]
		case 1:
			voxel.Y += step[1]
			tMax[1] += tDelta[1]
		case 2:
			voxel.Z += step[2]
			tMax[2] += tDelta[2]
		}
		out = append(out, voxel)
	}

	return out
}

func sign(v float32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func axisTMax(origin, dir float32, voxel int32) float32 {
	if dir == 0 {
		return math.MaxFloat32
	}
	if dir > 0 {
		return (float32(voxel+1) - origin) / dir
	}
	return (float32(voxel) - origin) / dir
}

func axisTDelta(dir float32) float32 {
	if dir == 0 {
		return math.MaxFloat32
	}
	return float32(math.Abs(1 / float64(dir)))
}
