package kaboom

import "github.com/go-gl/mathgl/mgl64"

// Mat4 is a column-major 4x4 matrix. All operations return a new value.
type Mat4 struct {
	m mgl64.Mat4
}

// Ident4 returns the identity matrix.
func Ident4() Mat4 { return Mat4{mgl64.Ident4()} }

// Mat4From wraps raw column-major values.
func Mat4From(m [16]float64) Mat4 { return Mat4{mgl64.Mat4(m)} }

// Raw returns the column-major values.
func (m Mat4) Raw() [16]float64 { return [16]float64(m.m) }

// Mult returns m · o.
func (m Mat4) Mult(o Mat4) Mat4 { return Mat4{m.m.Mul4(o.m)} }

func (m Mat4) Translate(p Vec2) Mat4 {
	return m.Mult(Mat4{mgl64.Translate3D(p.X, p.Y, 0)})
}

func (m Mat4) Scale(s Vec2) Mat4 {
	return m.Mult(Mat4{mgl64.Scale3D(s.X, s.Y, 1)})
}

// RotateZ rotates by a radians around the Z axis.
func (m Mat4) RotateZ(a float64) Mat4 {
	return m.Mult(Mat4{mgl64.HomogRotate3DZ(a)})
}

func (m Mat4) MultVec2(p Vec2) Vec2 {
	r := m.m.Mul4x1(mgl64.Vec4{p.X, p.Y, 0, 1})
	return Vec2{r[0], r[1]}
}

func (m Mat4) MultVec3(p Vec3) Vec3 {
	r := m.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{r[0], r[1], r[2]}
}

// Invert returns the inverse of m, or the zero matrix if m is singular.
func (m Mat4) Invert() Mat4 { return Mat4{m.m.Inv()} }

func (m Mat4) Eq(o Mat4) bool { return m.m.ApproxEqual(o.m) }
