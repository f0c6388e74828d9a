package kaboom

import "slices"

// Event names a hook. The lifecycle events are fired by the scheduler;
// components and user code may trigger any other name.
type Event string

const (
	EventAdd      Event = "add"      // object entered the scene
	EventUpdate   Event = "update"   // once per unpaused frame
	EventDraw     Event = "draw"     // once per frame unless hidden
	EventDestroy  Event = "destroy"  // object is about to leave the scene
	EventGrounded Event = "grounded" // body landed on a platform
	EventHeadbump Event = "headbump" // body hit a ceiling while rising
	EventAnimPlay Event = "animPlay" // sprite started an animation
	EventAnimEnd  Event = "animEnd"  // sprite finished a non-looping animation
	EventTweenEnd Event = "tweenEnd" // a tween finished
)

// Hook is a per-object callback. Lifecycle events pass no args.
type Hook func(obj *GameObject, args ...any)

// Handle unregisters a callback.
type Handle struct {
	cancel func()
}

// Remove unregisters this callback so it no longer fires. Calling Remove
// more than once is harmless.
func (h Handle) Remove() {
	if h.cancel != nil {
		h.cancel()
	}
}

// listener is one subscriber of a channel. tags filters object events and
// key filters input events.
type listener[F any] struct {
	id   uint32
	tags tagQuery
	key  string
	fn   F
}

// channel is an ordered subscriber list for one event kind. Removal copies
// the slice so that a dispatch in progress keeps iterating its snapshot.
type channel[F any] struct {
	subs []listener[F]
}

func (c *channel[F]) add(l listener[F]) {
	c.subs = append(c.subs, l)
}

func (c *channel[F]) remove(id uint32) {
	c.subs = slices.DeleteFunc(slices.Clone(c.subs), func(l listener[F]) bool {
		return l.id == id
	})
}

func (c *channel[F]) len() int { return len(c.subs) }

type (
	frameFunc func()
	keyFunc   func()
	charFunc  func(ch rune)
	mouseFunc func(pos Vec2)
)

// sceneEvents holds one typed channel per event kind.
type sceneEvents struct {
	add     channel[Hook]
	update  channel[Hook]
	draw    channel[Hook]
	destroy channel[Hook]
	custom  map[Event]*channel[Hook]

	frameUpdate channel[frameFunc]
	frameDraw   channel[frameFunc]

	keyDown      channel[keyFunc]
	keyPress     channel[keyFunc]
	keyPressRep  channel[keyFunc]
	keyRelease   channel[keyFunc]
	charInput    channel[charFunc]
	mouseDown    channel[mouseFunc]
	mouseClick   channel[mouseFunc]
	mouseRelease channel[mouseFunc]

	nextID uint32
}

func (e *sceneEvents) id() uint32 {
	e.nextID++
	return e.nextID
}

// objectChannel returns the channel for ev, creating custom channels on
// demand when create is set.
func (e *sceneEvents) objectChannel(ev Event, create bool) *channel[Hook] {
	switch ev {
	case EventAdd:
		return &e.add
	case EventUpdate:
		return &e.update
	case EventDraw:
		return &e.draw
	case EventDestroy:
		return &e.destroy
	}
	c := e.custom[ev]
	if c == nil && create {
		if e.custom == nil {
			e.custom = make(map[Event]*channel[Hook])
		}
		c = &channel[Hook]{}
		e.custom[ev] = c
	}
	return c
}

// dispatch runs the tag-matching listeners of ev for obj in registration
// order, stopping once a listener destroys obj.
func (e *sceneEvents) dispatch(ev Event, obj *GameObject, args []any) {
	c := e.objectChannel(ev, false)
	if c == nil {
		return
	}
	for _, l := range c.subs {
		if obj.id == 0 {
			return
		}
		if !l.tags.matches(obj.tags) {
			continue
		}
		l.fn(obj, args...)
	}
}

// subscribe registers fn on c and returns a removal handle.
func subscribe[F any](e *sceneEvents, c *channel[F], tags tagQuery, key string, fn F) Handle {
	id := e.id()
	c.add(listener[F]{id: id, tags: tags, key: key, fn: fn})
	return Handle{cancel: func() { c.remove(id) }}
}

func runFrame(c *channel[frameFunc]) {
	for _, l := range c.subs {
		l.fn()
	}
}
