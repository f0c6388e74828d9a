package kaboom

const (
	defaultJumpForce = 480
	defaultMaxVel    = 960
	// groundSlack absorbs rounding left by Resolve when checking whether a
	// grounded body still touches its platform.
	groundSlack = 1e-6
)

// BodyConf overrides Body defaults. Zero fields keep the default.
type BodyConf struct {
	JumpForce float64
	MaxVel    float64
}

// Body gives an object gravity and lets it stand on solid objects. A body
// is grounded while it rests on a platform and airborne otherwise.
type Body struct {
	VelY      float64
	JumpForce float64
	MaxVel    float64

	platform ObjectID
}

// NewBody returns a body with the default jump force and terminal velocity.
func NewBody(conf ...BodyConf) *Body {
	b := &Body{JumpForce: defaultJumpForce, MaxVel: defaultMaxVel}
	if len(conf) > 0 {
		if conf[0].JumpForce != 0 {
			b.JumpForce = conf[0].JumpForce
		}
		if conf[0].MaxVel != 0 {
			b.MaxVel = conf[0].MaxVel
		}
	}
	return b
}

func (b *Body) Attach(o *GameObject) {
	o.body = b
	o.On(EventUpdate, func(obj *GameObject, _ ...any) { b.update(obj) })
}

func (*Body) builtin() {}

// Grounded reports whether the body is standing on a platform.
func (b *Body) Grounded() bool { return b.platform != 0 }

// Falling reports whether the body is airborne and moving down.
func (b *Body) Falling() bool { return b.platform == 0 && b.VelY > 0 }

// Platform returns the ID of the object the body stands on, 0 if airborne.
func (b *Body) Platform() ObjectID { return b.platform }

// Jump launches the body upward with force, or JumpForce when omitted.
func (b *Body) Jump(force ...float64) {
	f := b.JumpForce
	if len(force) > 0 {
		f = force[0]
	}
	b.platform = 0
	b.VelY = -f
}

func (b *Body) update(o *GameObject) {
	s := o.scene
	if s == nil {
		return
	}
	dt := s.engine.dt

	if b.platform != 0 {
		if p := s.byID[b.platform]; p == nil || !standsOn(o, p) {
			b.platform = 0
		}
	}
	if b.platform == 0 {
		b.VelY = min(b.VelY+s.gravity*dt, b.MaxVel)
	}
	o.Pos.Y += b.VelY * dt

	for _, c := range o.Resolve() {
		switch {
		case c.Side == SideBottom && b.platform == 0 && b.VelY >= 0:
			b.platform = c.Obj.id
			b.VelY = 0
			o.Trigger(EventGrounded, c.Obj)
		case c.Side == SideTop && b.VelY < 0:
			b.VelY = 0
			o.Trigger(EventHeadbump, c.Obj)
		}
		if !o.Exists() {
			return
		}
	}
}

// standsOn reports whether o still rests on p.
func standsOn(o, p *GameObject) bool {
	if !o.collidable(p) {
		return false
	}
	r := o.WorldArea()
	r.P2.Y += groundSlack
	return ColRectRect(r, p.WorldArea())
}
