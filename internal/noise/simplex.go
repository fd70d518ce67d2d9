// Package noise provides the seeded simplex noise generator used by the
// terrain generator (octave layering lives in package terrain). Adapted from a Ken Perlin /
// Stefan Gustavson style implementation; this package has no dependency
// on the rest of the module so it can be unit tested in isolation.
package noise

import "math"

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Simplex is a seeded 2D/3D simplex noise generator.
type Simplex struct {
	perm      [512]uint8
	permMod12 [512]uint8

	f2, g2 float64
	f3, g3 float64
}

// New builds a simplex generator from an integer seed. Equal seeds
// produce identical noise fields, which is what lets the terrain
// generator be purely a function of (chunk position, seed).
func New(seed int64) *Simplex {
	s := &Simplex{
		f2: 0.5 * (math.Sqrt(3.0) - 1.0),
		g2: (3.0 - math.Sqrt(3.0)) / 6.0,
		f3: 1.0 / 3.0,
		g3: 1.0 / 6.0,
	}
	s.initPermutation(seed)
	return s
}

func (s *Simplex) initPermutation(seed int64) {
	p := make([]uint8, 256)
	for i := 0; i < 256; i++ {
		p[i] = uint8(i)
	}

	// Fisher-Yates shuffle driven by a simple linear congruential
	// sequence so the same seed always yields the same table.
	st := seed
	for i := 255; i > 0; i-- {
		st = (st * 16807) % 2147483647
		j := int(st) % (i + 1)
		if j < 0 {
			j += i + 1
		}
		p[i], p[j] = p[j], p[i]
	}

	for i := 0; i < 512; i++ {
		s.perm[i] = p[i&255]
		s.permMod12[i] = s.perm[i] % 12
	}
}

// Noise2D returns a value in [-1, 1].
func (s *Simplex) Noise2D(xin, yin float64) float64 {
	var n0, n1, n2 float64

	t := (xin + yin) * s.f2
	i := int(math.Floor(xin + t))
	j := int(math.Floor(yin + t))

	t2 := float64(i+j) * s.g2
	x0 := xin - (float64(i) - t2)
	y0 := yin - (float64(j) - t2)

	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + s.g2
	y1 := y0 - float64(j1) + s.g2
	x2 := x0 - 1.0 + 2.0*s.g2
	y2 := y0 - 1.0 + 2.0*s.g2

	ii := i & 255
	jj := j & 255
	gi0 := int(s.permMod12[ii+int(s.perm[jj])])
	gi1 := int(s.permMod12[ii+i1+int(s.perm[jj+j1])])
	gi2 := int(s.permMod12[ii+1+int(s.perm[jj+1])])

	if t0 := 0.5 - x0*x0 - y0*y0; t0 >= 0 {
		t0 *= t0
		n0 = t0 * t0 * (grad3[gi0][0]*x0 + grad3[gi0][1]*y0)
	}
	if t1 := 0.5 - x1*x1 - y1*y1; t1 >= 0 {
		t1 *= t1
		n1 = t1 * t1 * (grad3[gi1][0]*x1 + grad3[gi1][1]*y1)
	}
	if t2v := 0.5 - x2*x2 - y2*y2; t2v >= 0 {
		t2v *= t2v
		n2 = t2v * t2v * (grad3[gi2][0]*x2 + grad3[gi2][1]*y2)
	}

	return 70.0 * (n0 + n1 + n2)
}

// Noise3D returns a value in [-1, 1].
func (s *Simplex) Noise3D(xin, yin, zin float64) float64 {
	var n0, n1, n2, n3 float64

	t := (xin + yin + zin) * s.f3
	i := int(math.Floor(xin + t))
	j := int(math.Floor(yin + t))
	k := int(math.Floor(zin + t))

	t2 := float64(i+j+k) * s.g3
	x0 := xin - (float64(i) - t2)
	y0 := yin - (float64(j) - t2)
	z0 := zin - (float64(k) - t2)

	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		if y0 >= z0 {
			i1, j1, k1 = 1, 0, 0
			i2, j2, k2 = 1, 1, 0
		} else if x0 >= z0 {
			i1, j1, k1 = 1, 0, 0
			i2, j2, k2 = 1, 0, 1
		} else {
			i1, j1, k1 = 0, 0, 1
			i2, j2, k2 = 1, 0, 1
		}
	} else {
		if y0 < z0 {
			i1, j1, k1 = 0, 0, 1
			i2, j2, k2 = 0, 1, 1
		} else if x0 < z0 {
			i1, j1, k1 = 0, 1, 0
			i2, j2, k2 = 0, 1, 1
		} else {
			i1, j1, k1 = 0, 1, 0
			i2, j2, k2 = 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + s.g3
	y1 := y0 - float64(j1) + s.g3
	z1 := z0 - float64(k1) + s.g3
	x2 := x0 - float64(i2) + 2.0*s.g3
	y2 := y0 - float64(j2) + 2.0*s.g3
	z2 := z0 - float64(k2) + 2.0*s.g3
	x3 := x0 - 1.0 + 3.0*s.g3
	y3 := y0 - 1.0 + 3.0*s.g3
	z3 := z0 - 1.0 + 3.0*s.g3

	ii := i & 255
	jj := j & 255
	kk := k & 255
	gi0 := int(s.permMod12[ii+int(s.perm[jj+int(s.perm[kk])])])
	gi1 := int(s.permMod12[ii+i1+int(s.perm[jj+j1+int(s.perm[kk+k1])])])
	gi2 := int(s.permMod12[ii+i2+int(s.perm[jj+j2+int(s.perm[kk+k2])])])
	gi3 := int(s.permMod12[ii+1+int(s.perm[jj+1+int(s.perm[kk+1])])])

	if t0 := 0.6 - x0*x0 - y0*y0 - z0*z0; t0 >= 0 {
		t0 *= t0
		n0 = t0 * t0 * (grad3[gi0][0]*x0 + grad3[gi0][1]*y0 + grad3[gi0][2]*z0)
	}
	if t1 := 0.6 - x1*x1 - y1*y1 - z1*z1; t1 >= 0 {
		t1 *= t1
		n1 = t1 * t1 * (grad3[gi1][0]*x1 + grad3[gi1][1]*y1 + grad3[gi1][2]*z1)
	}
	if t2v := 0.6 - x2*x2 - y2*y2 - z2*z2; t2v >= 0 {
		t2v *= t2v
		n2 = t2v * t2v * (grad3[gi2][0]*x2 + grad3[gi2][1]*y2 + grad3[gi2][2]*z2)
	}
	if t3 := 0.6 - x3*x3 - y3*y3 - z3*z3; t3 >= 0 {
		t3 *= t3
		n3 = t3 * t3 * (grad3[gi3][0]*x3 + grad3[gi3][1]*y3 + grad3[gi3][2]*z3)
	}

	return 32.0 * (n0 + n1 + n2 + n3)
}
