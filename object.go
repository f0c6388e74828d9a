package kaboom

import (
	"fmt"
	"slices"
)

// ObjectID identifies a GameObject within the scene instance that created
// it. IDs start at 1 and are never reused; 0 means "no object".
type ObjectID int

// Component is attached to a GameObject when it is added to a scene or
// passed to Use. Attach stores the component's state on the object and
// registers any hooks it needs.
type Component interface {
	Attach(obj *GameObject)
}

// Optional lifecycle interfaces. A component implementing any of these has
// the method registered as a hook for the matching event.
type (
	Adder     interface{ Add(obj *GameObject) }
	Updater   interface{ Update(obj *GameObject) }
	Drawer    interface{ Draw(obj *GameObject) }
	Destroyer interface{ Destroy(obj *GameObject) }
)

// Comps groups components so they can be passed around as one value.
type Comps []any

type hookEntry struct {
	id uint32
	fn Hook
}

// GameObject is a runtime entity composed from components. Built-in
// component state lives in typed slots; user components are kept in
// attach order and can be retrieved with CompOf.
type GameObject struct {
	// Pos is the world position.
	Pos Vec2
	// Hidden skips the object's draw hooks.
	Hidden bool
	// Paused skips the object's update hooks.
	Paused bool

	id    ObjectID
	scene *Scene
	tags  TagSet

	scale    *Vec2
	angle    float64
	origin   Anchor
	color    *Color
	layer    string
	hasLayer bool
	z        float64
	solid    bool

	area   *Area
	body   *Body
	sprite *Sprite
	rect   *RectShape
	text   *Text
	timer  *Timer
	shader *ShaderComp
	grid   *GridPos

	custom []Component

	hooks      map[Event][]hookEntry
	nextHookID uint32
}

// ID returns the object's scene ID, or 0 once destroyed.
func (o *GameObject) ID() ObjectID { return o.id }

// Exists reports whether the object is still live in its scene.
func (o *GameObject) Exists() bool { return o.id != 0 }

// Scene returns the scene that created the object.
func (o *GameObject) Scene() *Scene { return o.scene }

// Use attaches comp. Strings become tags, slices are flattened, and
// anything that is not a Component is reported and ignored.
func (o *GameObject) Use(comp any) {
	switch c := comp.(type) {
	case nil:
	case string:
		o.AddTag(c)
	case []string:
		for _, t := range c {
			o.AddTag(t)
		}
	case Comps:
		for _, cc := range c {
			o.Use(cc)
		}
	case []any:
		for _, cc := range c {
			o.Use(cc)
		}
	case []Component:
		for _, cc := range c {
			o.Use(cc)
		}
	case Component:
		c.Attach(o)
		o.bindLifecycle(c)
	default:
		o.logError(fmt.Errorf("use %T: %w", comp, ErrInvalidComponent))
	}
}

// bindLifecycle registers the lifecycle methods of user components.
func (o *GameObject) bindLifecycle(c Component) {
	if !isBuiltin(c) {
		o.custom = append(o.custom, c)
	}
	if a, ok := c.(Adder); ok {
		o.On(EventAdd, func(obj *GameObject, _ ...any) { a.Add(obj) })
	}
	if u, ok := c.(Updater); ok {
		o.On(EventUpdate, func(obj *GameObject, _ ...any) { u.Update(obj) })
	}
	if d, ok := c.(Drawer); ok {
		o.On(EventDraw, func(obj *GameObject, _ ...any) { d.Draw(obj) })
	}
	if d, ok := c.(Destroyer); ok {
		o.On(EventDestroy, func(obj *GameObject, _ ...any) { d.Destroy(obj) })
	}
}

// CompOf returns the first user component of type T attached to obj.
func CompOf[T Component](obj *GameObject) (T, bool) {
	for _, c := range obj.custom {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// On registers a hook for ev on this object.
func (o *GameObject) On(ev Event, fn Hook) Handle {
	if o.hooks == nil {
		o.hooks = make(map[Event][]hookEntry)
	}
	o.nextHookID++
	id := o.nextHookID
	o.hooks[ev] = append(o.hooks[ev], hookEntry{id: id, fn: fn})
	return Handle{cancel: func() {
		o.hooks[ev] = slices.DeleteFunc(slices.Clone(o.hooks[ev]), func(h hookEntry) bool {
			return h.id == id
		})
	}}
}

// Action registers an update hook.
func (o *GameObject) Action(fn func(obj *GameObject)) Handle {
	return o.On(EventUpdate, func(obj *GameObject, _ ...any) { fn(obj) })
}

// Trigger runs the object's own hooks for ev, then the scene listeners for
// ev whose tags match the object. Events other than update and draw are
// also forwarded to the engine's EventStore. Hooks stop running once the object has
// been destroyed, except for the destroy event itself.
func (o *GameObject) Trigger(ev Event, args ...any) {
	if e := o.engine(); e != nil && o.id != 0 {
		e.emit(ev, o, args)
	}
	for _, h := range o.hooks[ev] {
		if o.id == 0 {
			return
		}
		h.fn(o, args...)
	}
	if o.scene != nil && o.id != 0 {
		o.scene.events.dispatch(ev, o, args)
	}
}

// Is reports whether the object carries every tag given. "*" matches any
// object.
func (o *GameObject) Is(tags ...string) bool {
	if o.scene == nil {
		return false
	}
	return o.scene.engine.tags.query(tags...).matches(o.tags)
}

// AddTag adds a tag. Adding a tag twice is a no-op.
func (o *GameObject) AddTag(tag string) {
	if tag == "" || tag == wildcardTag || o.scene == nil {
		return
	}
	id, err := o.scene.engine.tags.intern(tag)
	if err != nil {
		o.logError(err)
		return
	}
	o.tags.Add(id)
}

// RemoveTag removes a tag. Removing an absent tag is a no-op.
func (o *GameObject) RemoveTag(tag string) {
	if o.scene == nil {
		return
	}
	if id, ok := o.scene.engine.tags.lookup(tag); ok {
		o.tags.Remove(id)
	}
}

// Tags returns the object's tags in interning order.
func (o *GameObject) Tags() []string {
	if o.scene == nil {
		return nil
	}
	out := make([]string, 0, o.tags.Len())
	o.tags.each(func(id TagID) {
		out = append(out, o.scene.engine.tags.name(id))
	})
	return out
}

// Destroy removes the object from its scene.
func (o *GameObject) Destroy() {
	if o.scene != nil {
		o.scene.Destroy(o)
	}
}

func (o *GameObject) engine() *Engine {
	if o.scene == nil {
		return nil
	}
	return o.scene.engine
}

func (o *GameObject) logError(err error) {
	if e := o.engine(); e != nil {
		e.log.Error(err.Error(), "obj", o.id)
	}
}

// --- typed slot accessors ---

// Scale returns the object's scale, (1, 1) when no scale is attached.
func (o *GameObject) Scale() Vec2 {
	if o.scale == nil {
		return Vec2{1, 1}
	}
	return *o.scale
}

func (o *GameObject) SetScale(s Vec2) {
	if o.scale == nil {
		o.scale = new(Vec2)
	}
	*o.scale = s
}

// Angle returns the rotation in radians.
func (o *GameObject) Angle() float64 { return o.angle }

func (o *GameObject) SetAngle(a float64) { o.angle = a }

// Origin returns the anchor, AnchorTopLeft when unset.
func (o *GameObject) Origin() Anchor { return o.origin }

func (o *GameObject) SetOrigin(a Anchor) { o.origin = a }

// Color returns the tint, white when unset.
func (o *GameObject) Color() Color {
	if o.color == nil {
		return ColorWhite
	}
	return *o.color
}

func (o *GameObject) SetColor(c Color) {
	if o.color == nil {
		o.color = new(Color)
	}
	*o.color = c
}

// Layer returns the layer name and whether one was set.
func (o *GameObject) Layer() (string, bool) { return o.layer, o.hasLayer }

func (o *GameObject) SetLayer(name string) {
	o.layer = name
	o.hasLayer = true
}

func (o *GameObject) IsSolid() bool { return o.solid }
func (o *GameObject) SetSolid(solid bool) { o.solid = solid }
func (o *GameObject) Area() *Area { return o.area }
func (o *GameObject) Body() *Body { return o.body }
func (o *GameObject) Sprite() *Sprite { return o.sprite }
func (o *GameObject) Rect() *RectShape { return o.rect }
func (o *GameObject) Text() *Text { return o.text }
func (o *GameObject) Timer() *Timer { return o.timer }
func (o *GameObject) GridPos() *GridPos { return o.grid }

// Move shifts the object by (dx, dy) pixels per second of frame time.
func (o *GameObject) Move(dx, dy float64) {
	dt := 0.0
	if e := o.engine(); e != nil {
		dt = e.dt
	}
	o.Pos = o.Pos.Add(Vec2{dx * dt, dy * dt})
}

// sameLayer reports whether both objects have the same layer value,
// counting two unset layers as equal.
func (o *GameObject) sameLayer(other *GameObject) bool {
	return o.hasLayer == other.hasLayer && o.layer == other.layer
}

// drawZ is the depth bias used when drawing the object.
func (o *GameObject) drawZ() float64 {
	if o.scene != nil {
		if z, ok := o.scene.layerZ(o); ok {
			return z
		}
	}
	return o.z
}
