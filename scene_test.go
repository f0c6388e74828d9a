package kaboom

import (
	"slices"
	"testing"
)

func TestObjectIDsNeverReused(t *testing.T) {
	_, s, _ := startScene(t, nil)
	a := s.Add()
	b := s.Add()
	s.Destroy(a)
	c := s.Add()
	if a.ID() != 0 {
		t.Errorf("destroyed ID = %d, want 0", a.ID())
	}
	if b.ID() != 2 || c.ID() != 3 {
		t.Errorf("IDs = %d, %d, want 2, 3", b.ID(), c.ID())
	}
	if s.Object(2) != b || s.Object(1) != nil {
		t.Error("Object lookup")
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	_, s, _ := startScene(t, nil)
	o := s.Add()
	n := 0
	o.On(EventDestroy, func(*GameObject, ...any) { n++ })
	s.Destroy(o)
	s.Destroy(o)
	o.Destroy()
	s.Destroy(nil)
	if n != 1 {
		t.Errorf("destroy fired %d times", n)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestGetIsSnapshotInInsertionOrder(t *testing.T) {
	_, s, _ := startScene(t, nil)
	a := s.Add("x")
	s.Add("y")
	c := s.Add("x")
	got := s.Get("x")
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("Get = %v", got)
	}
	s.Add("x")
	if len(got) != 2 {
		t.Error("snapshot changed after Add")
	}
	if n := len(s.Get()); n != 4 {
		t.Errorf("Get() = %d objects, want 4", n)
	}
	if n := len(s.Get("missing")); n != 0 {
		t.Errorf("Get(missing) = %d", n)
	}
}

func TestEveryAndRevery(t *testing.T) {
	_, s, _ := startScene(t, nil)
	a := s.Add("t")
	b := s.Add("t")
	c := s.Add("t")

	var fwd, back []ObjectID
	s.Every("t", func(o *GameObject) { fwd = append(fwd, o.ID()) })
	s.Revery("t", func(o *GameObject) { back = append(back, o.ID()) })
	if !slices.Equal(fwd, []ObjectID{a.ID(), b.ID(), c.ID()}) {
		t.Errorf("Every = %v", fwd)
	}
	if !slices.Equal(back, []ObjectID{c.ID(), b.ID(), a.ID()}) {
		t.Errorf("Revery = %v", back)
	}
}

func TestEverySkipsObjectsDestroyedDuringIteration(t *testing.T) {
	_, s, _ := startScene(t, nil)
	a := s.Add("t")
	b := s.Add("t")
	var seen []*GameObject
	s.Every("t", func(o *GameObject) {
		seen = append(seen, o)
		if o == a {
			b.Destroy()
		}
	})
	if len(seen) != 1 {
		t.Errorf("visited %d objects, want 1", len(seen))
	}
}

func TestDestroyAll(t *testing.T) {
	_, s, _ := startScene(t, nil)
	s.Add("bullet")
	s.Add("bullet")
	keep := s.Add("player")
	s.DestroyAll("bullet")
	if s.Len() != 1 || !keep.Exists() {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestSceneListenerMatchesLaterObjects(t *testing.T) {
	e, s, _ := startScene(t, nil)
	var hits []ObjectID
	s.Action("enemy", func(o *GameObject) { hits = append(hits, o.ID()) })
	s.Add("friend")
	en := s.Add("enemy")
	steps(e, 1)
	if !slices.Equal(hits, []ObjectID{en.ID()}) {
		t.Errorf("hits = %v", hits)
	}
}

func TestUpdateRunsInReverseInsertionOrder(t *testing.T) {
	e, s, _ := startScene(t, nil)
	var order []ObjectID
	for range 3 {
		o := s.Add()
		o.Action(func(obj *GameObject) { order = append(order, obj.ID()) })
	}
	steps(e, 1)
	if !slices.Equal(order, []ObjectID{3, 2, 1}) {
		t.Errorf("order = %v", order)
	}
}

func TestObjectsAddedDuringUpdateWaitForNextFrame(t *testing.T) {
	e, s, _ := startScene(t, nil)
	var child *GameObject
	childUpdates := 0
	s.Add().Action(func(*GameObject) {
		if child == nil {
			child = s.Add()
			child.Action(func(*GameObject) { childUpdates++ })
		}
	})
	steps(e, 1)
	if childUpdates != 0 {
		t.Errorf("child updated %d times in its first frame", childUpdates)
	}
	steps(e, 1)
	if childUpdates != 1 {
		t.Errorf("child updates = %d, want 1", childUpdates)
	}
}

func TestPausedObjectSkipsUpdate(t *testing.T) {
	e, s, _ := startScene(t, nil)
	o := s.Add()
	n := 0
	o.Action(func(*GameObject) { n++ })
	o.Paused = true
	steps(e, 2)
	if n != 0 {
		t.Errorf("paused object updated %d times", n)
	}
}

func TestActionFuncAndRenderFunc(t *testing.T) {
	e, s, _ := startScene(t, nil)
	upd, drw := 0, 0
	s.ActionFunc(func() { upd++ })
	s.RenderFunc(func() { drw++ })
	steps(e, 2)
	e.render()
	if upd != 2 || drw != 1 {
		t.Errorf("upd = %d drw = %d", upd, drw)
	}
}

func TestDrawOrderByLayerThenInsertion(t *testing.T) {
	e, s, _ := startScene(t, func(s *Scene) {
		s.Layers([]string{"bg", "game", "ui"}, "game")
	})
	var order []string
	mark := func(name string) Comps {
		return Comps{&drawMark{name: name, out: &order}}
	}
	s.Add(mark("ui"), Layer("ui"))
	s.Add(mark("game1"))
	s.Add(mark("bg"), Layer("bg"))
	s.Add(mark("game2"), Layer("game"))
	e.render()
	if !slices.Equal(order, []string{"bg", "game1", "game2", "ui"}) {
		t.Errorf("draw order = %v", order)
	}
}

type drawMark struct {
	name string
	out  *[]string
}

func (d *drawMark) Attach(*GameObject) {}
func (d *drawMark) Draw(*GameObject)   { *d.out = append(*d.out, d.name) }

func TestHiddenObjectNotDrawn(t *testing.T) {
	e, s, _ := startScene(t, nil)
	var order []string
	o := s.Add(&drawMark{name: "x", out: &order})
	o.Hidden = true
	e.render()
	if len(order) != 0 {
		t.Error("hidden object drawn")
	}
}

func TestLayerZ(t *testing.T) {
	_, s, _ := startScene(t, func(s *Scene) {
		s.Layers([]string{"a", "b"}, "a")
	})
	o := s.Add(Layer("b"))
	if z := o.drawZ(); z != 0.75 {
		t.Errorf("layer z = %v, want 0.75", z)
	}
	if z := s.Add().drawZ(); z != 0.5 {
		t.Errorf("default layer z = %v, want 0.5", z)
	}
}

func TestGravitySetting(t *testing.T) {
	_, s, _ := startScene(t, nil)
	if s.Gravity() != defaultGravity {
		t.Errorf("gravity = %v", s.Gravity())
	}
	s.SetGravity(100)
	if s.Gravity() != 100 {
		t.Error("SetGravity")
	}
}
