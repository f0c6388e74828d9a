package kaboom

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPosReachesTarget(t *testing.T) {
	var o *GameObject
	var tw *Tween
	ends := 0
	e, _, _ := startScene(t, func(s *Scene) {
		tw = TweenPos(V2(10, 20), 1, nil)
		o = s.Add(Pos(0, 0), tw)
		o.On(EventTweenEnd, func(_ *GameObject, args ...any) {
			ends++
			if len(args) != 1 || args[0] != tw {
				t.Errorf("tweenEnd args = %v", args)
			}
		})
	})

	e.Step(0.5)
	if !approxVec(o.Pos, V2(5, 10)) {
		t.Errorf("halfway = %v, want (5, 10)", o.Pos)
	}
	e.Step(0.5)
	if o.Pos != V2(10, 20) {
		t.Errorf("end = %v, want (10, 20)", o.Pos)
	}
	if !tw.Done() {
		t.Error("tween should be done")
	}
	e.Step(0.5)
	if ends != 1 {
		t.Errorf("tweenEnd fired %d times, want 1", ends)
	}
}

func TestTweenStartsFromCurrentValue(t *testing.T) {
	var o *GameObject
	e, _, _ := startScene(t, func(s *Scene) {
		o = s.Add(Scale(2, 2))
		o.Use(TweenScale(V2(4, 4), 1, ease.Linear))
	})
	e.Step(0.5)
	if !approxVec(o.Scale(), V2(3, 3)) {
		t.Errorf("scale = %v, want (3, 3)", o.Scale())
	}
}

func TestTweenColorAndAngle(t *testing.T) {
	var o *GameObject
	e, _, _ := startScene(t, func(s *Scene) {
		o = s.Add(Colored(ColorBlack), TweenColor(ColorWhite, 1, nil), TweenAngle(2, 1, nil))
	})
	e.Step(1)
	if o.Color() != ColorWhite {
		t.Errorf("color = %v, want white", o.Color())
	}
	if o.Angle() != 2 {
		t.Errorf("angle = %v, want 2", o.Angle())
	}
}

func TestTweenFreezesWhilePaused(t *testing.T) {
	var o *GameObject
	e, _, _ := startScene(t, func(s *Scene) {
		o = s.Add(Pos(0, 0), TweenPos(V2(10, 0), 1, nil))
	})
	e.Pause()
	e.Step(0.5)
	if o.Pos.X != 0 {
		t.Errorf("x = %v while paused, want 0", o.Pos.X)
	}
	e.Resume()
	e.Step(0.5)
	if !approxEqual(o.Pos.X, 5, 1e-5) {
		t.Errorf("x = %v, want 5", o.Pos.X)
	}
}
