package geom

import "math"

// Rotation is a 3x3 rotation matrix in row-major order.
// The zero value is NOT a valid rotation; use Identity or the
// RotateX/Y/Z constructors.
type Rotation [3][3]float64

// Identity returns the identity rotation.
func Identity() Rotation {
	return Rotation{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// RotateX returns a rotation of deg degrees about the X axis.
func RotateX(deg float64) Rotation {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Rotation{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
}

// RotateY returns a rotation of deg degrees about the Y axis.
func RotateY(deg float64) Rotation {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Rotation{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}
}

// RotateZ returns a rotation of deg degrees about the Z axis.
func RotateZ(deg float64) Rotation {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Rotation{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// Euler returns the rotation for Euler angles (degrees) applied in
// X, then Y, then Z order, matching the kernel's Rotate convention.
func Euler(x, y, z float64) Rotation {
	return RotateZ(z).Mul(RotateY(y)).Mul(RotateX(x))
}

// EulerAngles decomposes r into Euler angles (degrees) such that
// Euler(x, y, z) reproduces r. At y = +-90 the X and Z axes coincide;
// the decomposition reports x as 0 and folds the remainder into z.
func (r Rotation) EulerAngles() (x, y, z float64) {
	sy := -r[2][0]
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	y = math.Asin(sy)
	if math.Abs(sy) >= 1-1e-9 {
		x = 0
		z = math.Atan2(-r[0][1], r[1][1])
	} else {
		x = math.Atan2(r[2][1], r[2][2])
		z = math.Atan2(r[1][0], r[0][0])
	}
	const toDeg = 180 / math.Pi
	return x * toDeg, y * toDeg, z * toDeg
}

// Mul returns the matrix product r * o (o applied first).
func (r Rotation) Mul(o Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[i][0]*o[0][j] + r[i][1]*o[1][j] + r[i][2]*o[2][j]
		}
	}
	return out
}

// Apply returns r applied to v.
func (r Rotation) Apply(v Vec3) Vec3 {
	return Vec3{
		X: r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		Y: r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		Z: r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix. For a rotation this is the
// inverse.
func (r Rotation) Transpose() Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[j][i]
		}
	}
	return out
}

// IsIdentity reports whether r is the identity rotation within eps.
func (r Rotation) IsIdentity(eps float64) bool {
	id := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(r[i][j]-id[i][j]) > eps {
				return false
			}
		}
	}
	return true
}
