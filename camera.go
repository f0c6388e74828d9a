package kaboom

import (
	"math"
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view into a scene. Pos is the world point shown at
// the center of the screen.
type Camera struct {
	Pos   Vec2
	Scale Vec2
	// Angle is the camera rotation in radians.
	Angle float64
	// Shake is the current shake magnitude in pixels. It decays every
	// frame.
	Shake float64
	// Ignore lists layers drawn without the camera transform.
	Ignore []string

	// BoundsEnabled clamps Pos so the visible area stays within Bounds.
	BoundsEnabled bool
	Bounds        Rect

	size Vec2

	followTarget *GameObject
	followOffset Vec2
	followLerp   float64

	scroll *scrollAnim

	matrix Mat4
	inv    Mat4
}

func newCamera(w, h float64) Camera {
	c := Camera{
		Pos:   Vec2{w / 2, h / 2},
		Scale: Vec2{1, 1},
		size:  Vec2{w, h},
	}
	c.computeMatrix(Vec2{})
	return c
}

// Follow makes the camera track obj with the given offset. A lerp of 1
// snaps; lower values trail behind.
func (c *Camera) Follow(obj *GameObject, offset Vec2, lerp float64) {
	c.followTarget = obj
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking.
func (c *Camera) Unfollow() { c.followTarget = nil }

// ScrollTo animates the camera to pos over duration seconds.
func (c *Camera) ScrollTo(pos Vec2, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.Pos.X), float32(pos.X), duration, easeFn),
		tweenY: gween.New(float32(c.Pos.Y), float32(pos.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo is in progress.
func (c *Camera) Scrolling() bool { return c.scroll != nil }

// SetBounds enables bounds clamping.
func (c *Camera) SetBounds(r Rect) {
	c.BoundsEnabled = true
	c.Bounds = r
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() { c.BoundsEnabled = false }

// update advances follow, scroll, clamping and shake, then recomputes the
// view matrix.
func (c *Camera) update(dt float64, rng *RNG) {
	if c.followTarget != nil {
		if c.followTarget.Exists() {
			target := c.followTarget.Pos.Add(c.followOffset)
			c.Pos = c.Pos.Lerp(target, c.followLerp)
		} else {
			c.followTarget = nil
		}
	}

	if c.scroll != nil {
		if !c.scroll.doneX {
			val, done := c.scroll.tweenX.Update(float32(dt))
			c.Pos.X = float64(val)
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			val, done := c.scroll.tweenY.Update(float32(dt))
			c.Pos.Y = float64(val)
			c.scroll.doneY = done
		}
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	shake := Vec2FromAngle(rng.GenRange(0, 360)).Scale(c.Shake)
	c.Shake = Lerp(c.Shake, 0, 5*dt)
	c.computeMatrix(shake)
}

// clampToBounds restricts Pos so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.size.X / (2 * c.Scale.X)
	halfH := c.size.Y / (2 * c.Scale.Y)

	minX := c.Bounds.P1.X + halfW
	maxX := c.Bounds.P2.X - halfW
	minY := c.Bounds.P1.Y + halfH
	maxY := c.Bounds.P2.Y - halfH

	// Bounds smaller than the view center the camera.
	if minX > maxX {
		c.Pos.X = c.Bounds.Center().X
	} else {
		c.Pos.X = math.Max(minX, math.Min(c.Pos.X, maxX))
	}
	if minY > maxY {
		c.Pos.Y = c.Bounds.Center().Y
	} else {
		c.Pos.Y = math.Max(minY, math.Min(c.Pos.Y, maxY))
	}
}

// computeMatrix builds
// translate(center) · scale · rotateZ(angle) · translate(-center) · translate(center - pos + shake).
func (c *Camera) computeMatrix(shake Vec2) {
	center := c.size.Scale(0.5)
	c.matrix = Ident4().
		Translate(center).
		Scale(c.Scale).
		RotateZ(c.Angle).
		Translate(center.Scale(-1)).
		Translate(center.Sub(c.Pos).Add(shake))
	c.inv = c.matrix.Invert()
}

// Matrix returns the view matrix computed on the last update.
func (c *Camera) Matrix() Mat4 { return c.matrix }

// ToWorld converts a screen point to world space.
func (c *Camera) ToWorld(p Vec2) Vec2 { return c.inv.MultVec2(p) }

// ToScreen converts a world point to screen space.
func (c *Camera) ToScreen(p Vec2) Vec2 { return c.matrix.MultVec2(p) }

// VisibleBounds returns the world-space box the camera currently shows.
func (c *Camera) VisibleBounds() Rect {
	p0 := c.ToWorld(Vec2{0, 0})
	p1 := c.ToWorld(Vec2{c.size.X, 0})
	p2 := c.ToWorld(c.size)
	p3 := c.ToWorld(Vec2{0, c.size.Y})
	return NewRect(
		Vec2{min(p0.X, p1.X, p2.X, p3.X), min(p0.Y, p1.Y, p2.Y, p3.Y)},
		Vec2{max(p0.X, p1.X, p2.X, p3.X), max(p0.Y, p1.Y, p2.Y, p3.Y)},
	)
}

// ignores reports whether the named layer is drawn without the camera.
func (c *Camera) ignores(layer string) bool {
	return slices.Contains(c.Ignore, layer)
}

// --- scene helpers ---

// Cam returns the scene camera.
func (s *Scene) Cam() *Camera { return &s.cam }

// CamPos moves the camera when given a position and returns the current
// one.
func (s *Scene) CamPos(pos ...Vec2) Vec2 {
	if len(pos) > 0 {
		s.cam.Pos = pos[0]
	}
	return s.cam.Pos
}

// CamScale sets the zoom when given a scale and returns the current one.
func (s *Scene) CamScale(scale ...Vec2) Vec2 {
	if len(scale) > 0 {
		s.cam.Scale = scale[0]
	}
	return s.cam.Scale
}

// CamRot sets the rotation in radians when given one and returns the
// current one.
func (s *Scene) CamRot(angle ...float64) float64 {
	if len(angle) > 0 {
		s.cam.Angle = angle[0]
	}
	return s.cam.Angle
}

// CamShake adds intensity to the camera shake.
func (s *Scene) CamShake(intensity float64) { s.cam.Shake += intensity }

// CamIgnore sets the layers drawn without the camera transform.
func (s *Scene) CamIgnore(layers ...string) { s.cam.Ignore = layers }
