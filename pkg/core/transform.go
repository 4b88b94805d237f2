package core

// Transform is a 4x4 row-major affine matrix. Rows act on column vectors:
// apply(p) computes M*[p.x, p.y, p.z, 1]^T and drops the homogeneous
// coordinate.
type Transform struct {
	m [4][4]float64
}

// IdentityTransform returns the identity affine transform.
func IdentityTransform() Transform {
	var t Transform
	for i := 0; i < 4; i++ {
		t.m[i][i] = 1
	}
	return t
}

// NewTransformFromRowMajor16 builds a transform from 16 raw floats already
// in row-major order (row0, row1, row2, row3).
func NewTransformFromRowMajor16(e [16]float64) Transform {
	var t Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t.m[r][c] = e[r*4+c]
		}
	}
	return t
}

// NewTransformFromColumnMajor16 builds a transform from 16 raw floats in
// column-major order, the layout glTF's node.matrix supplies. The matrix
// is stored transposed so that rows act on column vectors as the rest of
// this package expects.
func NewTransformFromColumnMajor16(e [16]float64) Transform {
	var t Transform
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			t.m[r][c] = e[c*4+r]
		}
	}
	return t
}

// NewTRS builds T(translation) * R(rotation) * S(scale).
func NewTRS(translation Vec3, rotation Quat, scale Vec3) Transform {
	return Compose(TranslationTransform(translation), Compose(RotationTransform(rotation), ScaleTransform(scale)))
}

// TranslationTransform builds a pure translation.
func TranslationTransform(t Vec3) Transform {
	m := IdentityTransform()
	m.m[0][3] = t.X
	m.m[1][3] = t.Y
	m.m[2][3] = t.Z
	return m
}

// ScaleTransform builds a pure (possibly non-uniform) scale.
func ScaleTransform(s Vec3) Transform {
	m := IdentityTransform()
	m.m[0][0] = s.X
	m.m[1][1] = s.Y
	m.m[2][2] = s.Z
	return m
}

// RotationTransform builds a pure rotation from a unit quaternion.
func RotationTransform(q Quat) Transform {
	q = q.Normalize()
	x, y, z, w := q.V.X, q.V.Y, q.V.Z, q.W
	var m Transform
	m.m[0] = [4]float64{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w), 0}
	m.m[1] = [4]float64{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w), 0}
	m.m[2] = [4]float64{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y), 0}
	m.m[3] = [4]float64{0, 0, 0, 1}
	return m
}

// Compose returns a*b: applying the result to a point is equivalent to
// applying b first, then a.
func Compose(a, b Transform) Transform {
	var out Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a.m[r][k] * b.m[k][c]
			}
			out.m[r][c] = sum
		}
	}
	return out
}

// Apply treats p as a point with w=1 and returns the transformed point.
func (t Transform) Apply(p Vec3) Vec3 {
	return Vec3{
		X: t.m[0][0]*p.X + t.m[0][1]*p.Y + t.m[0][2]*p.Z + t.m[0][3],
		Y: t.m[1][0]*p.X + t.m[1][1]*p.Y + t.m[1][2]*p.Z + t.m[1][3],
		Z: t.m[2][0]*p.X + t.m[2][1]*p.Y + t.m[2][2]*p.Z + t.m[2][3],
	}
}

// ApplyDirection treats v as a vector with w=0, ignoring translation — used
// for camera basis vectors and other quantities that transform without
// being positioned.
func (t Transform) ApplyDirection(v Vec3) Vec3 {
	return Vec3{
		X: t.m[0][0]*v.X + t.m[0][1]*v.Y + t.m[0][2]*v.Z,
		Y: t.m[1][0]*v.X + t.m[1][1]*v.Y + t.m[1][2]*v.Z,
		Z: t.m[2][0]*v.X + t.m[2][1]*v.Y + t.m[2][2]*v.Z,
	}
}
