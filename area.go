package kaboom

// Area is an object's collision rectangle in local space, relative to its
// position and before scaling.
type Area struct {
	P1, P2 Vec2
}

// NewArea returns an area spanning p1 to p2.
func NewArea(p1, p2 Vec2) *Area {
	return &Area{P1: p1, P2: p2}
}

// AreaFromSize returns a w×h area positioned the way a w×h quad with the
// given origin is drawn.
func AreaFromSize(w, h float64, origin Anchor) *Area {
	offset := origin.Pt().Mul(Vec2{w, h}).Scale(-0.5)
	half := Vec2{w / 2, h / 2}
	return &Area{P1: offset.Sub(half), P2: offset.Add(half)}
}

func (a *Area) Attach(o *GameObject) { o.area = a }
func (*Area) builtin() {}

// Side names the side of an object that a collision happened on.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// Collision is one push-out performed by Resolve. Side is where Obj was
// relative to the resolved object.
type Collision struct {
	Obj  *GameObject
	Side Side
}

// WorldArea returns the area in world space, or the zero Rect when the
// object has no area.
func (o *GameObject) WorldArea() Rect {
	if o.area == nil {
		return Rect{}
	}
	s := o.Scale()
	return NewRect(o.Pos.Add(o.area.P1.Mul(s)), o.Pos.Add(o.area.P2.Mul(s)))
}

// collidable reports whether o and other may be tested against each other.
func (o *GameObject) collidable(other *GameObject) bool {
	return other != nil && other != o &&
		o.area != nil && other.area != nil &&
		other.Exists() && o.sameLayer(other)
}

// IsCollided reports whether the two areas intersect, touching edges
// included.
func (o *GameObject) IsCollided(other *GameObject) bool {
	return o.collidable(other) && ColRectRect(o.WorldArea(), other.WorldArea())
}

// IsOverlapped reports whether the two areas share interior area.
func (o *GameObject) IsOverlapped(other *GameObject) bool {
	return o.collidable(other) && OverlapRectRect(o.WorldArea(), other.WorldArea())
}

// Resolve pushes the object out of every solid object it intersects, along
// the axis of least penetration, and returns the collisions in scene
// order. Ties prefer left, then right, then top, then bottom.
func (o *GameObject) Resolve() []Collision {
	if o.scene == nil || o.area == nil {
		return nil
	}
	var cols []Collision
	for _, other := range o.scene.objs {
		if !other.solid || !o.IsCollided(other) {
			continue
		}
		a1 := o.WorldArea()
		a2 := other.WorldArea()
		disLeft := a1.P2.X - a2.P1.X
		disRight := a2.P2.X - a1.P1.X
		disTop := a1.P2.Y - a2.P1.Y
		disBottom := a2.P2.Y - a1.P1.Y
		m := min(disLeft, disRight, disTop, disBottom)

		var side Side
		switch m {
		case disLeft:
			o.Pos.X -= disLeft
			side = SideRight
		case disRight:
			o.Pos.X += disRight
			side = SideLeft
		case disTop:
			o.Pos.Y -= disTop
			side = SideBottom
		default:
			o.Pos.Y += disBottom
			side = SideTop
		}
		cols = append(cols, Collision{Obj: other, Side: side})
	}
	return cols
}

// HasPt reports whether pt is inside the object's world area.
func (o *GameObject) HasPt(pt Vec2) bool {
	return o.area != nil && ColRectPt(o.WorldArea(), pt)
}

// MousePos returns the mouse position in the object's space: world space
// unless its layer ignores the camera.
func (o *GameObject) MousePos() Vec2 {
	e := o.engine()
	if e == nil {
		return Vec2{}
	}
	p := e.input.MousePos()
	if o.scene.camIgnored(o) {
		return p
	}
	return o.scene.cam.ToWorld(p)
}

// IsHovered reports whether the mouse is over the object.
func (o *GameObject) IsHovered() bool {
	return o.Exists() && o.HasPt(o.MousePos())
}

// IsClicked reports whether the mouse was pressed over the object this
// frame.
func (o *GameObject) IsClicked() bool {
	e := o.engine()
	return e != nil && e.input.MousePressed() && o.IsHovered()
}

// Clicks calls fn on frames the object is clicked.
func (o *GameObject) Clicks(fn func()) Handle {
	return o.Action(func(obj *GameObject) {
		if obj.IsClicked() {
			fn()
		}
	})
}

// Hovers calls fn on every frame the mouse is over the object.
func (o *GameObject) Hovers(fn func()) Handle {
	return o.Action(func(obj *GameObject) {
		if obj.IsHovered() {
			fn()
		}
	})
}

// Collides calls fn once each time an object tagged tag starts colliding
// with this one. It fires again only after the two have separated.
func (o *GameObject) Collides(tag string, fn func(other *GameObject)) Handle {
	c := make(contacts)
	return o.Action(func(obj *GameObject) {
		c.check(obj, tag, (*GameObject).IsCollided, fn)
	})
}

// Overlaps is Collides with strict overlap: touching edges do not count.
func (o *GameObject) Overlaps(tag string, fn func(other *GameObject)) Handle {
	c := make(contacts)
	return o.Action(func(obj *GameObject) {
		c.check(obj, tag, (*GameObject).IsOverlapped, fn)
	})
}

// contacts tracks which partners each object is currently touching, keyed
// by the object's ID and then the partner's.
type contacts map[ObjectID]map[ObjectID]struct{}

// check tests o against every live object tagged tag, calling fn for new
// contacts. Partners that separated, died or lost the tag are forgotten.
func (c contacts) check(o *GameObject, tag string, test func(a, b *GameObject) bool, fn func(other *GameObject)) {
	if o.scene == nil || !o.Exists() {
		return
	}
	cur := c[o.id]
	if cur == nil {
		cur = make(map[ObjectID]struct{})
		c[o.id] = cur
	}
	seen := make(map[ObjectID]struct{}, len(cur))
	for _, other := range o.scene.Get(tag) {
		if !o.Exists() {
			return
		}
		if other == o || !other.Exists() {
			continue
		}
		if !test(o, other) {
			delete(cur, other.id)
			continue
		}
		seen[other.id] = struct{}{}
		if _, was := cur[other.id]; !was {
			cur[other.id] = struct{}{}
			fn(other)
		}
	}
	for id := range cur {
		if _, ok := seen[id]; !ok {
			delete(cur, id)
		}
	}
}

// forget drops the entry for a destroyed object.
func (c contacts) forget(id ObjectID) { delete(c, id) }
