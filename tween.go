package kaboom

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates up to 4 float64 fields of its object at once. It runs in
// the object's update hook, so it stops while the object or the game is
// paused, and triggers "tweenEnd" when every field has arrived.
//
// Create one with TweenPos, TweenScale, TweenAngle or TweenColor and attach
// it with Use or Scene.Add.
type Tween struct {
	to       [4]float64
	count    int
	duration float32
	easing   ease.TweenFunc
	field    func(o *GameObject) [4]*float64

	tweens [4]*gween.Tween
	fields [4]*float64
	done   bool
}

func newTween(count int, to [4]float64, duration float32, fn ease.TweenFunc, field func(o *GameObject) [4]*float64) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{to: to, count: count, duration: duration, easing: fn, field: field}
}

// Attach captures the start values from the object.
func (t *Tween) Attach(o *GameObject) {
	t.fields = t.field(o)
	for i := 0; i < t.count; i++ {
		t.tweens[i] = gween.New(float32(*t.fields[i]), float32(t.to[i]), t.duration, t.easing)
	}
	var h Handle
	h = o.On(EventUpdate, func(obj *GameObject, _ ...any) {
		if t.update(float32(obj.engine().dt)) {
			h.Remove()
			obj.Trigger(EventTweenEnd, t)
		}
	})
}

// Done reports whether the tween has finished.
func (t *Tween) Done() bool { return t.done }

// update advances all fields by dt and reports whether the tween finished
// during this call.
func (t *Tween) update(dt float32) bool {
	if t.done {
		return false
	}
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		*t.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.done = allDone
	return allDone
}

// TweenPos moves the object to the target position.
func TweenPos(to Vec2, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(2, [4]float64{to.X, to.Y}, duration, fn, func(o *GameObject) [4]*float64 {
		return [4]*float64{&o.Pos.X, &o.Pos.Y}
	})
}

// TweenScale scales the object to the target scale.
func TweenScale(to Vec2, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(2, [4]float64{to.X, to.Y}, duration, fn, func(o *GameObject) [4]*float64 {
		o.SetScale(o.Scale())
		return [4]*float64{&o.scale.X, &o.scale.Y}
	})
}

// TweenAngle rotates the object to the target angle in radians.
func TweenAngle(to float64, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(1, [4]float64{to}, duration, fn, func(o *GameObject) [4]*float64 {
		return [4]*float64{&o.angle}
	})
}

// TweenColor fades all four channels of the object's tint to the target.
func TweenColor(to Color, duration float32, fn ease.TweenFunc) *Tween {
	return newTween(4, [4]float64{to.R, to.G, to.B, to.A}, duration, fn, func(o *GameObject) [4]*float64 {
		o.SetColor(o.Color())
		return [4]*float64{&o.color.R, &o.color.G, &o.color.B, &o.color.A}
	})
}
