package kaboom

import (
	"cmp"
	"fmt"
	"slices"
)

const defaultLayerBase = 0.5

// Scene owns the live objects of one scene instance together with its
// listeners, timers, camera and layers. A fresh Scene is created each time
// the engine enters a scene.
type Scene struct {
	name   string
	engine *Engine

	objs   []*GameObject
	byID   map[ObjectID]*GameObject
	lastID ObjectID

	events sceneEvents

	timers      []*timer
	timerByID   map[TimerID]*timer
	lastTimerID TimerID
	updating    bool

	cam        Camera
	layers     map[string]int
	layerNames []string
	defLayer   string
	gravity    float64
	rng        *RNG

	drawList []*GameObject
}

func newScene(e *Engine, name string) *Scene {
	return &Scene{
		name:      name,
		engine:    e,
		byID:      make(map[ObjectID]*GameObject),
		timerByID: make(map[TimerID]*timer),
		cam:       newCamera(e.gfx.Width(), e.gfx.Height()),
		gravity:   e.conf.Game.Gravity,
		rng:       NewRNG(e.seed),
	}
}

// Name returns the name the scene was registered under.
func (s *Scene) Name() string { return s.name }

// Engine returns the engine running the scene.
func (s *Scene) Engine() *Engine { return s.engine }

// Len returns the number of live objects.
func (s *Scene) Len() int { return len(s.objs) }

// --- objects ---

// Add creates an object from comps, inserts it and fires "add". comps may
// mix Components, tag strings and slices of either.
func (s *Scene) Add(comps ...any) *GameObject {
	s.lastID++
	o := &GameObject{id: s.lastID, scene: s}
	for _, c := range comps {
		o.Use(c)
	}
	s.objs = append(s.objs, o)
	s.byID[o.id] = o
	o.Trigger(EventAdd)
	return o
}

// Destroy fires "destroy" and removes obj. Destroying an object that is not
// live in this scene is a no-op.
func (s *Scene) Destroy(obj *GameObject) {
	if obj == nil || obj.scene != s || obj.id == 0 || s.byID[obj.id] != obj {
		return
	}
	// Unregister first so a Destroy from a destroy hook is a no-op.
	delete(s.byID, obj.id)
	obj.Trigger(EventDestroy)
	if i := slices.Index(s.objs, obj); i >= 0 {
		s.objs = slices.Delete(s.objs, i, i+1)
	}
	obj.id = 0
}

// DestroyAll destroys every object carrying tag.
func (s *Scene) DestroyAll(tag string) {
	for _, o := range s.Get(tag) {
		s.Destroy(o)
	}
}

// Object returns the live object with id, or nil.
func (s *Scene) Object(id ObjectID) *GameObject { return s.byID[id] }

// Get returns a snapshot of the live objects carrying every tag, in
// insertion order. No tags, "" or "*" selects every object.
func (s *Scene) Get(tags ...string) []*GameObject {
	q := s.engine.tags.query(tags...)
	var out []*GameObject
	for _, o := range s.objs {
		if q.matches(o.tags) {
			out = append(out, o)
		}
	}
	return out
}

// Every calls fn for each object tagged tag in insertion order. Objects
// destroyed during the iteration are skipped.
func (s *Scene) Every(tag string, fn func(obj *GameObject)) {
	for _, o := range s.Get(tag) {
		if o.Exists() {
			fn(o)
		}
	}
}

// Revery is Every in reverse insertion order.
func (s *Scene) Revery(tag string, fn func(obj *GameObject)) {
	list := s.Get(tag)
	for _, o := range slices.Backward(list) {
		if o.Exists() {
			fn(o)
		}
	}
}

// --- listeners ---

// On registers fn for ev on every object tagged tag, including objects
// added later.
func (s *Scene) On(ev Event, tag string, fn Hook) Handle {
	q, err := s.engine.tags.internQuery(tag)
	if err != nil {
		s.engine.log.Error(fmt.Sprintf("listen %s", ev), "tag", tag, "err", err)
	}
	return subscribe(&s.events, s.events.objectChannel(ev, true), q, "", fn)
}

// Action calls fn for every unpaused object tagged tag once per frame.
func (s *Scene) Action(tag string, fn func(obj *GameObject)) Handle {
	return s.On(EventUpdate, tag, func(obj *GameObject, _ ...any) { fn(obj) })
}

// Render calls fn for every visible object tagged tag when it is drawn.
func (s *Scene) Render(tag string, fn func(obj *GameObject)) Handle {
	return s.On(EventDraw, tag, func(obj *GameObject, _ ...any) { fn(obj) })
}

// ActionFunc calls fn once per unpaused frame after the object updates.
func (s *Scene) ActionFunc(fn func()) Handle {
	return subscribe(&s.events, &s.events.frameUpdate, tagQuery{}, "", frameFunc(fn))
}

// RenderFunc calls fn once per frame after the objects are drawn, in
// screen space.
func (s *Scene) RenderFunc(fn func()) Handle {
	return subscribe(&s.events, &s.events.frameDraw, tagQuery{}, "", frameFunc(fn))
}

// Collides calls fn each time an object tagged t1 starts colliding with one
// tagged t2.
func (s *Scene) Collides(t1, t2 string, fn func(a, b *GameObject)) Handle {
	return s.contactListener(t1, t2, (*GameObject).IsCollided, fn)
}

// Overlaps is Collides with strict overlap.
func (s *Scene) Overlaps(t1, t2 string, fn func(a, b *GameObject)) Handle {
	return s.contactListener(t1, t2, (*GameObject).IsOverlapped, fn)
}

func (s *Scene) contactListener(t1, t2 string, test func(a, b *GameObject) bool, fn func(a, b *GameObject)) Handle {
	c := make(contacts)
	check := s.Action(t1, func(obj *GameObject) {
		c.check(obj, t2, test, func(other *GameObject) { fn(obj, other) })
	})
	forget := s.On(EventDestroy, t1, func(obj *GameObject, _ ...any) { c.forget(obj.id) })
	return Handle{cancel: func() {
		check.Remove()
		forget.Remove()
	}}
}

// Clicks calls fn when an object tagged tag is clicked.
func (s *Scene) Clicks(tag string, fn func(obj *GameObject)) Handle {
	return s.Action(tag, func(obj *GameObject) {
		if obj.IsClicked() {
			fn(obj)
		}
	})
}

// Hovers calls fn every frame the mouse is over an object tagged tag.
func (s *Scene) Hovers(tag string, fn func(obj *GameObject)) Handle {
	return s.Action(tag, func(obj *GameObject) {
		if obj.IsHovered() {
			fn(obj)
		}
	})
}

// KeyDown calls fn every frame key is held.
func (s *Scene) KeyDown(key string, fn func()) Handle {
	return subscribe(&s.events, &s.events.keyDown, tagQuery{}, key, keyFunc(fn))
}

// KeyPress calls fn on the frame key goes down.
func (s *Scene) KeyPress(key string, fn func()) Handle {
	return subscribe(&s.events, &s.events.keyPress, tagQuery{}, key, keyFunc(fn))
}

// KeyPressRep calls fn when key goes down and again at the key repeat rate
// while it is held.
func (s *Scene) KeyPressRep(key string, fn func()) Handle {
	return subscribe(&s.events, &s.events.keyPressRep, tagQuery{}, key, keyFunc(fn))
}

// KeyRelease calls fn on the frame key goes up.
func (s *Scene) KeyRelease(key string, fn func()) Handle {
	return subscribe(&s.events, &s.events.keyRelease, tagQuery{}, key, keyFunc(fn))
}

// CharInput calls fn for every character typed.
func (s *Scene) CharInput(fn func(ch rune)) Handle {
	return subscribe(&s.events, &s.events.charInput, tagQuery{}, "", charFunc(fn))
}

// MouseDown calls fn every frame the left button is held, with the screen
// position of the cursor.
func (s *Scene) MouseDown(fn func(pos Vec2)) Handle {
	return subscribe(&s.events, &s.events.mouseDown, tagQuery{}, "", mouseFunc(fn))
}

// MouseClick calls fn on the frame the left button goes down.
func (s *Scene) MouseClick(fn func(pos Vec2)) Handle {
	return subscribe(&s.events, &s.events.mouseClick, tagQuery{}, "", mouseFunc(fn))
}

// MouseRelease calls fn on the frame the left button goes up.
func (s *Scene) MouseRelease(fn func(pos Vec2)) Handle {
	return subscribe(&s.events, &s.events.mouseRelease, tagQuery{}, "", mouseFunc(fn))
}

// dispatchInput fires the input listeners for the current input state. It
// also runs while the game is paused.
func (s *Scene) dispatchInput() {
	in := s.engine.input
	ev := &s.events
	for _, l := range ev.keyDown.subs {
		if in.KeyDown(l.key) {
			l.fn()
		}
	}
	for _, l := range ev.keyPress.subs {
		if in.KeyPressed(l.key) {
			l.fn()
		}
	}
	for _, l := range ev.keyPressRep.subs {
		if in.KeyPressedRep(l.key) {
			l.fn()
		}
	}
	for _, l := range ev.keyRelease.subs {
		if in.KeyReleased(l.key) {
			l.fn()
		}
	}
	for _, ch := range in.Chars() {
		for _, l := range ev.charInput.subs {
			l.fn(ch)
		}
	}
	pos := in.MousePos()
	if in.MouseDown() {
		for _, l := range ev.mouseDown.subs {
			l.fn(pos)
		}
	}
	if in.MousePressed() {
		for _, l := range ev.mouseClick.subs {
			l.fn(pos)
		}
	}
	if in.MouseReleased() {
		for _, l := range ev.mouseRelease.subs {
			l.fn(pos)
		}
	}
}

// --- layers and physics settings ---

// Layers declares draw layers from back to front. Objects without a Layer
// component are drawn on def.
func (s *Scene) Layers(names []string, def string) {
	s.layers = make(map[string]int, len(names))
	s.layerNames = slices.Clone(names)
	for i, n := range names {
		s.layers[n] = i
	}
	s.defLayer = def
}

// layerOf returns the object's effective layer name.
func (s *Scene) layerOf(o *GameObject) string {
	if o.hasLayer {
		return o.layer
	}
	return s.defLayer
}

// layerZ maps the object's layer into [0.5, 1). It reports false when the
// scene declares no layers.
func (s *Scene) layerZ(o *GameObject) (float64, bool) {
	if len(s.layerNames) == 0 {
		return 0, false
	}
	i := s.layers[s.layerOf(o)]
	return defaultLayerBase + (1-defaultLayerBase)/float64(len(s.layerNames))*float64(i), true
}

// camIgnored reports whether the object's layer is drawn without the
// camera.
func (s *Scene) camIgnored(o *GameObject) bool {
	return len(s.cam.Ignore) > 0 && s.cam.ignores(s.layerOf(o))
}

// Gravity returns the downward acceleration applied to bodies.
func (s *Scene) Gravity() float64 { return s.gravity }

// SetGravity changes the acceleration applied to bodies.
func (s *Scene) SetGravity(g float64) { s.gravity = g }

// --- frame ---

// update runs one unpaused frame: timers, object updates in reverse
// insertion order, per-frame actions, then the camera.
func (s *Scene) update(dt float64) {
	s.updating = true
	defer s.endUpdate()
	s.updateTimers(dt)
	for _, o := range slices.Backward(slices.Clone(s.objs)) {
		if o.Paused || !o.Exists() {
			continue
		}
		o.Trigger(EventUpdate)
	}
	runFrame(&s.events.frameUpdate)
	s.cam.update(dt, s.rng)
}

func (s *Scene) endUpdate() {
	s.updating = false
	for _, t := range s.timers {
		t.fresh = false
	}
}

// draw visits visible objects back to front: by layer depth, then by
// insertion order.
func (s *Scene) draw() {
	gfx := s.engine.gfx
	s.drawList = append(s.drawList[:0], s.objs...)
	slices.SortStableFunc(s.drawList, func(a, b *GameObject) int {
		return cmp.Compare(a.drawZ(), b.drawZ())
	})
	for _, o := range s.drawList {
		if o.Hidden || !o.Exists() {
			continue
		}
		gfx.PushTransform()
		if !s.camIgnored(o) {
			gfx.PushMatrix(s.cam.matrix)
		}
		o.Trigger(EventDraw)
		gfx.PopTransform()
	}
	clear(s.drawList)
	runFrame(&s.events.frameDraw)
}
