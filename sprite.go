package kaboom

import "fmt"

const defaultAnimSpeed = 0.1

// SpriteOpts configures a sprite component.
type SpriteOpts struct {
	Frame int
	// AnimSpeed is seconds per frame; 0 uses 0.1.
	AnimSpeed float64
	FlipX     bool
	FlipY     bool
	// Quad crops each frame; zero draws whole frames.
	Quad Quad
}

type spriteAnim struct {
	name  string
	loop  bool
	timer float64
}

// Sprite draws a frame of a registered sprite and plays its animations.
// The sprite is looked up when the object is added; a missing sprite draws
// nothing.
type Sprite struct {
	Name      string
	Frame     int
	AnimSpeed float64
	FlipX     bool
	FlipY     bool
	Quad      Quad

	obj  *GameObject
	data *SpriteData
	anim *spriteAnim
}

// NewSprite returns a sprite component for the named asset.
func NewSprite(name string, opts ...SpriteOpts) *Sprite {
	s := &Sprite{Name: name, AnimSpeed: defaultAnimSpeed}
	if len(opts) > 0 {
		o := opts[0]
		s.Frame = o.Frame
		s.FlipX = o.FlipX
		s.FlipY = o.FlipY
		s.Quad = o.Quad
		if o.AnimSpeed > 0 {
			s.AnimSpeed = o.AnimSpeed
		}
	}
	return s
}

func (s *Sprite) Attach(o *GameObject) {
	o.sprite = s
	s.obj = o
	o.On(EventAdd, func(obj *GameObject, _ ...any) {
		e := obj.engine()
		s.data = e.assets.Sprite(s.Name)
		if s.data != nil && obj.area == nil {
			obj.Use(AreaFromSize(s.Width(), s.Height(), obj.Origin()))
		}
	})
	o.On(EventUpdate, func(obj *GameObject, _ ...any) { s.update(obj.engine().dt) })
	o.On(EventDraw, func(obj *GameObject, _ ...any) {
		if s.data == nil {
			return
		}
		obj.engine().gfx.DrawSprite(s.data, s.Frame, QuadConf{
			Pos:    obj.Pos,
			Scale:  obj.Scale(),
			Rot:    obj.angle,
			Origin: obj.Origin(),
			Z:      obj.drawZ(),
			Color:  obj.Color(),
			Quad:   s.drawQuad(),
			Shader: obj.shaderRef(),
		})
	})
}

func (*Sprite) builtin() {}

// drawQuad returns the crop quad with flips applied.
func (s *Sprite) drawQuad() Quad {
	q := s.Quad
	if q.W == 0 && q.H == 0 {
		q = FullQuad
	}
	if s.FlipX {
		q.X += q.W
		q.W = -q.W
	}
	if s.FlipY {
		q.Y += q.H
		q.H = -q.H
	}
	return q
}

// Data returns the resolved sprite asset, nil before add or when missing.
func (s *Sprite) Data() *SpriteData { return s.data }

// Width returns the drawn width of the current frame in pixels.
func (s *Sprite) Width() float64 {
	if s.data == nil || len(s.data.Frames) == 0 {
		return 0
	}
	return float64(s.data.Tex.width) * s.frameQuad().W * s.cropW()
}

// Height returns the drawn height of the current frame in pixels.
func (s *Sprite) Height() float64 {
	if s.data == nil || len(s.data.Frames) == 0 {
		return 0
	}
	return float64(s.data.Tex.height) * s.frameQuad().H * s.cropH()
}

func (s *Sprite) frameQuad() Quad {
	if s.Frame < 0 || s.Frame >= len(s.data.Frames) {
		return s.data.Frames[0]
	}
	return s.data.Frames[s.Frame]
}

func (s *Sprite) cropW() float64 {
	if s.Quad.W == 0 && s.Quad.H == 0 {
		return 1
	}
	return s.Quad.W
}

func (s *Sprite) cropH() float64 {
	if s.Quad.W == 0 && s.Quad.H == 0 {
		return 1
	}
	return s.Quad.H
}

// NumFrames returns the number of frames in the sheet.
func (s *Sprite) NumFrames() int {
	if s.data == nil {
		return 0
	}
	return len(s.data.Frames)
}

// CurAnim returns the playing animation, "" when none.
func (s *Sprite) CurAnim() string {
	if s.anim == nil {
		return ""
	}
	return s.anim.name
}

// Play starts a named animation from its first frame. loop defaults to
// true.
func (s *Sprite) Play(name string, loop ...bool) {
	if s.data == nil {
		return
	}
	a, ok := s.data.Anims[name]
	if !ok {
		s.obj.logError(fmt.Errorf("anim %q of sprite %q: %w", name, s.Name, ErrAssetNotFound))
		return
	}
	if s.anim != nil {
		s.Stop()
	}
	l := true
	if len(loop) > 0 {
		l = loop[0]
	}
	s.anim = &spriteAnim{name: name, loop: l}
	s.Frame = a.From
	s.obj.Trigger(EventAnimPlay, name)
}

// Stop stops the current animation, leaving the current frame shown.
func (s *Sprite) Stop() {
	if s.anim == nil {
		return
	}
	name := s.anim.name
	s.anim = nil
	s.obj.Trigger(EventAnimEnd, name)
}

// OnAnimPlay registers fn for animation starts.
func (s *Sprite) OnAnimPlay(fn func(name string)) Handle {
	return s.obj.On(EventAnimPlay, func(_ *GameObject, args ...any) { fn(argString(args)) })
}

// OnAnimEnd registers fn for animations that stop or finish.
func (s *Sprite) OnAnimEnd(fn func(name string)) Handle {
	return s.obj.On(EventAnimEnd, func(_ *GameObject, args ...any) { fn(argString(args)) })
}

func argString(args []any) string {
	if len(args) == 0 {
		return ""
	}
	str, _ := args[0].(string)
	return str
}

func (s *Sprite) update(dt float64) {
	if s.anim == nil || s.data == nil {
		return
	}
	a, ok := s.data.Anims[s.anim.name]
	if !ok {
		s.anim = nil
		return
	}
	interval := s.AnimSpeed
	if a.Speed > 0 {
		interval = 1 / a.Speed
	}
	s.anim.timer += dt
	if s.anim.timer < interval {
		return
	}
	s.anim.timer -= interval
	s.Frame++
	if s.Frame > a.To {
		if s.anim.loop {
			s.Frame = a.From
		} else {
			s.Frame--
			s.Stop()
		}
	}
}
