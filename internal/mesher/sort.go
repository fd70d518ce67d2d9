package mesher

import "sort"

// SortTransparent orders a chunk's Water triangles back-to-front for the
// given view (forward) direction, the scheme recovered from the original
// engine's process() step: each triangle's sort key is the dot product of
// its fixed face normal with forward, so faces pointing away from the
// camera (the ones behind nearer, forward-facing geometry) sort last.
// This is a pure function over already-meshed output; it does not assume
// any camera type, matching spec §6's treatment of the renderer as an
// external collaborator.
func SortTransparent(triangles []Triangle, forward [3]float32) {
	for i := range triangles {
		triangles[i].SortValue = dot(triangles[i].Normal, forward)
	}
	sort.SliceStable(triangles, func(i, j int) bool {
		return triangles[i].SortValue < triangles[j].SortValue
	})
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
