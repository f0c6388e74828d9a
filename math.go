package kaboom

import (
	"fmt"
	"image/color"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API. Y increases downward.
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for Vec2{x, y}.
func V2(x, y float64) Vec2 { return Vec2{x, y} }

// Vec2FromAngle returns the unit vector pointing at deg degrees.
func Vec2FromAngle(deg float64) Vec2 {
	s, c := math.Sincos(Deg2Rad(deg))
	return Vec2{c, s}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) Eq(o Vec2) bool { return v.X == o.X && v.Y == o.Y }
func (v Vec2) Normal() Vec2 { return Vec2{v.Y, -v.X} }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)}
}

// Unit returns v scaled to length 1. The zero vector stays zero.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// Angle returns the angle in degrees from o to v.
func (v Vec2) Angle(o Vec2) float64 {
	return Rad2Deg(math.Atan2(v.Y-o.Y, v.X-o.X))
}

func (v Vec2) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

// Vec3 is a 3D vector. The renderer uses Z as the depth of a vertex.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at backend submission time.
type Color struct {
	R, G, B, A float64
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
)

// RGB returns an opaque color.
func RGB(r, g, b float64) Color { return Color{r, g, b, 1} }

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a float64) Color { return Color{r, g, b, a} }

func (c Color) Lighten(a float64) Color {
	return Color{c.R + a, c.G + a, c.B + a, c.A}
}

func (c Color) Darken(a float64) Color {
	return c.Lighten(-a)
}

func (c Color) Invert() Color {
	return Color{1 - c.R, 1 - c.G, 1 - c.B, c.A}
}

// Mult multiplies component-wise, alpha included.
func (c Color) Mult(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

func (c Color) Eq(o Color) bool { return c == o }

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	cl := func(v float64) uint8 { return uint8(Clamp(v, 0, 1)*255 + 0.5) }
	return color.RGBA{cl(c.R * c.A), cl(c.G * c.A), cl(c.B * c.A), cl(c.A)}
}

// Quad is a sub-rectangle in normalized texture space.
type Quad struct {
	X, Y, W, H float64
}

// FullQuad covers a whole texture.
var FullQuad = Quad{0, 0, 1, 1}

// Scale returns the sub-quad o expressed relative to q.
func (q Quad) Scale(o Quad) Quad {
	return Quad{
		q.X + q.W*o.X,
		q.Y + q.H*o.Y,
		q.W * o.W,
		q.H * o.H,
	}
}

// Rect is an axis-aligned rectangle given by its min (P1) and max (P2)
// corners. Y increases downward.
type Rect struct {
	P1, P2 Vec2
}

// NewRect normalizes two arbitrary corners into a Rect.
func NewRect(a, b Vec2) Rect {
	return Rect{
		P1: Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		P2: Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Width() float64 { return r.P2.X - r.P1.X }
func (r Rect) Height() float64 { return r.P2.Y - r.P1.Y }
func (r Rect) Center() Vec2 { return r.P1.Add(r.P2).Scale(0.5) }

// ColRectRect reports whether r1 and r2 intersect. Rectangles sharing only
// an edge are considered intersecting.
func ColRectRect(r1, r2 Rect) bool {
	return r1.P2.X >= r2.P1.X &&
		r1.P1.X <= r2.P2.X &&
		r1.P2.Y >= r2.P1.Y &&
		r1.P1.Y <= r2.P2.Y
}

// OverlapRectRect reports whether r1 and r2 share interior area.
// Touching edges do not count.
func OverlapRectRect(r1, r2 Rect) bool {
	return r1.P2.X > r2.P1.X &&
		r1.P1.X < r2.P2.X &&
		r1.P2.Y > r2.P1.Y &&
		r1.P1.Y < r2.P2.Y
}

// ColRectPt reports whether pt lies inside r, edges included.
func ColRectPt(r Rect, pt Vec2) bool {
	return pt.X >= r.P1.X && pt.X <= r.P2.X && pt.Y >= r.P1.Y && pt.Y <= r.P2.Y
}

// Anchor selects which point of an object sits at its position.
type Anchor uint8

const (
	AnchorTopLeft  Anchor = iota // default
	AnchorTop                    // top edge center
	AnchorTopRight               // top right corner
	AnchorLeft                   // left edge center
	AnchorCenter                 // center
	AnchorRight                  // right edge center
	AnchorBotLeft                // bottom left corner
	AnchorBot                    // bottom edge center
	AnchorBotRight               // bottom right corner
)

var anchorPts = [...]Vec2{
	AnchorTopLeft:  {-1, -1},
	AnchorTop:      {0, -1},
	AnchorTopRight: {1, -1},
	AnchorLeft:     {-1, 0},
	AnchorCenter:   {0, 0},
	AnchorRight:    {1, 0},
	AnchorBotLeft:  {-1, 1},
	AnchorBot:      {0, 1},
	AnchorBotRight: {1, 1},
}

var anchorNames = map[string]Anchor{
	"topleft":  AnchorTopLeft,
	"top":      AnchorTop,
	"topright": AnchorTopRight,
	"left":     AnchorLeft,
	"center":   AnchorCenter,
	"right":    AnchorRight,
	"botleft":  AnchorBotLeft,
	"bot":      AnchorBot,
	"botright": AnchorBotRight,
}

// Pt returns the anchor in units of half the object's size, from (-1, -1)
// at the top left to (1, 1) at the bottom right.
func (a Anchor) Pt() Vec2 {
	if int(a) < len(anchorPts) {
		return anchorPts[a]
	}
	return anchorPts[AnchorTopLeft]
}

// ParseAnchor looks up a named anchor such as "center" or "botleft".
func ParseAnchor(name string) (Anchor, bool) {
	a, ok := anchorNames[name]
	return a, ok
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Map linearly remaps v from [l1, h1] to [l2, h2].
func Map(v, l1, h1, l2, h2 float64) float64 {
	return l2 + (v-l1)/(h1-l1)*(h2-l2)
}

// Wave oscillates between a and b as t advances.
func Wave(a, b, t float64) float64 {
	return a + (math.Sin(t)+1)/2*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func Deg2Rad(d float64) float64 { return d * math.Pi / 180 }
func Rad2Deg(r float64) float64 { return r * 180 / math.Pi }
