package mesher

// shadingLevels resolves a 2-bit packed AO value (0-3) to the vertex
// shading multiplier the fragment shader expects.
var shadingLevels = [4]float32{0.25, 0.6, 0.8, 1.0}

// cornerOffsets gives the (du, dv) direction each of the 4 quad corners
// looks outward in the slice plane when sampling its ambient-occlusion
// neighbours: corner 0 is (low,low), 1 is (high,low), 2 is (low,high),
// 3 is (high,high).
var cornerOffsets = [4][2]int{
	{-1, -1},
	{1, -1},
	{-1, 1},
	{1, 1},
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// cornerAO applies the side1/side2/corner occlusion formula: fully
// enclosed corners (both edge neighbours occluding) go fully dark
// regardless of the diagonal; otherwise AO is 3 minus the occluder count.
func cornerAO(side1, side2, cornerOccluded bool) uint8 {
	if side1 && side2 {
		return 0
	}
	return uint8(3 - (boolToInt(side1) + boolToInt(side2) + boolToInt(cornerOccluded)))
}

// computeCellAO samples the 8 neighbours of a single mask cell's
// outward-projected position (one step past the face, on the side the
// face is visible from) and returns the 4 per-corner AO values.
func computeCellAO(s *sampler, axis int, outwardMain int32, u, v int) [4]uint8 {
	var ao [4]uint8
	for i, off := range cornerOffsets {
		du, dv := off[0], off[1]
		side1 := aoOccludes(s.descriptorAt(axis, outwardMain, u+du, v))
		side2 := aoOccludes(s.descriptorAt(axis, outwardMain, u, v+dv))
		corner := aoOccludes(s.descriptorAt(axis, outwardMain, u+du, v+dv))
		ao[i] = cornerAO(side1, side2, corner)
	}
	return ao
}
