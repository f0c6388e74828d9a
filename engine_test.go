package kaboom

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

type recordStore struct {
	events []ObjectEvent
}

func (r *recordStore) EmitEvent(ev ObjectEvent) { r.events = append(r.events, ev) }

func (r *recordStore) types() []Event {
	out := make([]Event, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func TestEnginePauseAndStepFrame(t *testing.T) {
	updates := 0
	e, s, _ := startScene(t, nil)
	s.ActionFunc(func() { updates++ })

	e.Pause()
	steps(e, 3)
	if updates != 0 || e.Dt() != 0 {
		t.Fatalf("updates = %d dt = %v while paused", updates, e.Dt())
	}
	e.StepFrame()
	steps(e, 3)
	if updates != 1 {
		t.Errorf("updates = %d after StepFrame, want 1", updates)
	}
	e.Resume()
	steps(e, 2)
	if updates != 3 {
		t.Errorf("updates = %d after Resume, want 3", updates)
	}
}

func TestEngineTimeAdvancesOnlyWhenRunning(t *testing.T) {
	e, _, _ := startScene(t, nil)
	e.Step(0.25)
	e.Pause()
	e.Step(0.25)
	if e.Time() != 0.25 {
		t.Errorf("time = %v, want 0.25", e.Time())
	}
}

func TestEngineDebugKeys(t *testing.T) {
	e, _, in := startScene(t, nil)
	in.Tap("f8")
	steps(e, 2)
	if !e.Paused() {
		t.Fatal("f8 should pause")
	}
	in.Tap("f1")
	steps(e, 2)
	if !e.Config().Debug.ShowArea {
		t.Error("f1 should toggle area inspection")
	}
	in.Tap("f2")
	steps(e, 2)
	if n := len(e.Log().Entries()); n != 0 {
		t.Errorf("f2 left %d entries", n)
	}
	in.Tap("f8")
	steps(e, 2)
	if e.Paused() {
		t.Error("second f8 should resume")
	}
}

func TestEngineInputWhilePaused(t *testing.T) {
	presses := 0
	e, s, in := startScene(t, nil)
	s.KeyPress("space", func() { presses++ })
	e.Pause()
	in.Tap("space")
	steps(e, 2)
	if presses != 1 {
		t.Errorf("presses = %d while paused, want 1", presses)
	}
}

func TestEngineGoIsDeferred(t *testing.T) {
	e, _, _ := newTestEngine(t)
	inits := map[string]int{}
	var gotArgs []any
	e.Scene("menu", func(s *Scene, _ ...any) { inits["menu"]++ })
	e.Scene("game", func(s *Scene, args ...any) {
		inits["game"]++
		gotArgs = args
		s.Add("player")
	})
	e.Start("menu")
	menu := e.Current()
	if menu.Name() != "menu" {
		t.Fatalf("current = %q", menu.Name())
	}

	e.Go("game", 3)
	if e.Current() != menu {
		t.Fatal("Go switched immediately")
	}
	e.Step(frameDt)
	game := e.Current()
	if game.Name() != "game" || len(gotArgs) != 1 || gotArgs[0] != 3 {
		t.Fatalf("scene = %q args = %v", game.Name(), gotArgs)
	}

	e.Go("menu")
	e.Step(frameDt)
	e.Go("game")
	e.Step(frameDt)
	if e.Current() == game || inits["game"] != 2 {
		t.Errorf("re-entered scene should be rebuilt: inits = %d", inits["game"])
	}
	if e.ObjCount() != 1 {
		t.Errorf("objects = %d, want one fresh player", e.ObjCount())
	}
	if len(gotArgs) != 0 {
		t.Errorf("args = %v, want none on the second Go", gotArgs)
	}
}

func TestEngineReload(t *testing.T) {
	e, _, _ := newTestEngine(t)
	updates := 0
	e.Scene("game", func(s *Scene, _ ...any) {
		s.Add(Pos(0, 0))
		s.Add(Pos(10, 0))
		s.ActionFunc(func() { updates++ })
	})
	e.Start("game")
	steps(e, 1)
	if e.ObjCount() != 2 || updates != 1 {
		t.Fatalf("objs = %d updates = %d", e.ObjCount(), updates)
	}

	e.Reload("game")
	steps(e, 2)
	if e.ObjCount() != 0 {
		t.Errorf("objs = %d after reload, want 0", e.ObjCount())
	}
	if e.Current() == nil || e.Current().Name() != "game" {
		t.Error("reload should not leave the current scene")
	}
	if updates != 1 {
		t.Errorf("updates = %d, reloaded scene kept running", updates)
	}

	e.Go("game")
	steps(e, 1)
	if e.ObjCount() != 2 || updates != 2 {
		t.Errorf("objs = %d updates = %d after re-entering", e.ObjCount(), updates)
	}
}

func TestEngineReloadOtherScene(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Scene("menu", func(*Scene, ...any) {})
	e.Scene("game", func(s *Scene, _ ...any) { s.Add() })
	e.Start("game")
	e.Reload("menu")
	if e.ObjCount() != 1 {
		t.Errorf("objs = %d, reloading another scene touched the current one", e.ObjCount())
	}
}

func TestEngineUnknownScene(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Go("nowhere")
	e.Reload("nowhere")
	ents := e.Log().Entries()
	if len(ents) != 2 {
		t.Fatalf("entries = %d, want 2", len(ents))
	}
	for _, ent := range ents {
		if !strings.Contains(ent.Msg, ErrSceneNotFound.Error()) {
			t.Errorf("entry = %q", ent.Msg)
		}
	}
	e.Step(frameDt)
	if e.Current() != nil {
		t.Error("no scene should be active")
	}
}

func TestEngineLoadingGate(t *testing.T) {
	updates := 0
	e, s, _ := startScene(t, nil)
	s.ActionFunc(func() { updates++ })
	l := e.Assets().NewLoader()

	steps(e, 3)
	if updates != 0 || e.Loaded() {
		t.Fatalf("updates = %d loaded = %v before the loader finished", updates, e.Loaded())
	}
	l.Done()
	steps(e, 1)
	if updates != 1 || !e.Loaded() {
		t.Errorf("updates = %d loaded = %v", updates, e.Loaded())
	}
}

func TestEngineSceneWaitsForLoaders(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Assets().SetFS(fstest.MapFS{"hero.png": {Data: pngBytes(t, 32, 16)}})
	e.Assets().LoadSprite("hero", "hero.png", SpriteConf{SliceX: 2})
	var hero *GameObject
	e.Scene("test", func(s *Scene, _ ...any) {
		hero = s.Add(NewSprite("hero"))
	})
	e.Start("test")
	if e.Current() != nil {
		t.Fatal("scene entered before the loader finished")
	}

	deadline := time.Now().Add(5 * time.Second)
	for e.Current() == nil {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the scene")
		}
		e.Step(frameDt)
		time.Sleep(time.Millisecond)
	}
	if hero.Sprite().Data() == nil {
		t.Fatal("sprite built without its data")
	}
	if w, h := hero.Sprite().Width(), hero.Sprite().Height(); w != 16 || h != 16 {
		t.Errorf("size = %v x %v, want 16 x 16", w, h)
	}
}

func TestEngineLoadingScreenRenders(t *testing.T) {
	e, _, rec := newTestEngine(t)
	e.Scene("test", func(*Scene, ...any) {})
	e.Start("test")
	e.Assets().NewLoader()
	e.Frame(frameDt)
	if len(rec.batches) == 0 {
		t.Error("loading bar not drawn")
	}
}

func TestEngineEventStore(t *testing.T) {
	store := &recordStore{}
	e, _, _ := newTestEngine(t)
	e.SetEventStore(store)
	var obj *GameObject
	e.Scene("test", func(s *Scene, _ ...any) {
		obj = s.Add(Pos(1, 2), "coin")
	})
	e.Start("test")
	steps(e, 2)
	obj.Destroy()

	got := store.types()
	if len(got) != 2 || got[0] != EventAdd || got[1] != EventDestroy {
		t.Fatalf("events = %v, want [add destroy]", got)
	}
	add := store.events[0]
	if add.Scene != "test" || add.ObjectID != 1 || add.Pos != V2(1, 2) {
		t.Errorf("add = %+v", add)
	}
	if len(add.Tags) != 1 || add.Tags[0] != "coin" {
		t.Errorf("tags = %v", add.Tags)
	}

	e.SetEventStore(nil)
	e.Current().Add()
	if len(store.events) != 2 {
		t.Error("events forwarded after the store was removed")
	}
}

func TestEngineEventStoreGrounded(t *testing.T) {
	store := &recordStore{}
	e, _, plat, body := platformScene(t)
	e.SetEventStore(store)
	steps(e, 60)

	var grounded []ObjectEvent
	for _, ev := range store.events {
		if ev.Type == EventGrounded {
			grounded = append(grounded, ev)
		}
	}
	if len(grounded) != 1 {
		t.Fatalf("grounded events = %d, want 1", len(grounded))
	}
	if grounded[0].ObjectID != body.ID() || grounded[0].OtherID != plat.ID() {
		t.Errorf("grounded = %+v", grounded[0])
	}
}

func TestEngineStats(t *testing.T) {
	e, _, rec := newTestEngine(t)
	e.Scene("test", func(s *Scene, _ ...any) {
		s.Add(NewRectShape(10, 10))
		s.Add(NewRectShape(10, 10), UseShader("glow", nil))
	})
	e.Assets().LoadShader("glow", "package main")
	e.Start("test")
	e.Frame(frameDt)

	if e.DrawCalls() != len(rec.batches) || e.DrawCalls() != 2 {
		t.Errorf("draw calls = %d, batches = %d, want 2", e.DrawCalls(), len(rec.batches))
	}
	st := e.Stats()
	if st.Objects != 2 || st.DrawCalls != 2 {
		t.Errorf("stats = %+v", st)
	}
	if rec.frames != 1 || rec.clears[0] != ColorBlack {
		t.Errorf("frames = %d clears = %v", rec.frames, rec.clears)
	}
}

func TestEngineSharedShaderBatches(t *testing.T) {
	e, _, rec := newTestEngine(t)
	e.Scene("test", func(s *Scene, _ ...any) {
		s.Add(NewRectShape(10, 10), UseShader("glow", nil))
		s.Add(NewRectShape(10, 10), Pos(20, 0), UseShader("glow", nil))
	})
	e.Assets().LoadShader("glow", "package main")
	e.Start("test")
	e.Frame(frameDt)

	if len(rec.batches) != 1 {
		t.Errorf("batches = %d, want 1", len(rec.batches))
	}
}

func TestEngineLogAgesByWallClock(t *testing.T) {
	e, _, _ := startScene(t, nil)
	steps(e, 600)
	e.Pause()
	steps(e, 600)
	e.Log().Info("hello")
	ents := e.Log().Entries()
	if len(ents) == 0 {
		t.Fatal("entry missing")
	}
	if got := ents[len(ents)-1].Time; got >= 5 {
		t.Errorf("entry time = %v, should not follow game time %v", got, e.Time())
	}
}

func TestEngineRandSeed(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.RandSeed(5)
	a := []float64{e.Rand(), e.RandN(10), e.RandRange(3, 4)}
	e.RandSeed(5)
	b := []float64{e.Rand(), e.RandN(10), e.RandRange(3, 4)}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sequence differs after reseed: %v vs %v", a, b)
		}
	}
	if v := e.RandRange(3, 4); v < 3 || v >= 4 {
		t.Errorf("RandRange = %v", v)
	}
}

func TestEngineVolume(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if e.Volume() != 1 {
		t.Errorf("default volume = %v", e.Volume())
	}
	if e.Volume(2) != 1 || e.Volume(-1) != 0 || e.Volume(0.5) != 0.5 {
		t.Error("volume should clamp to [0, 1]")
	}
}

func TestEnginePlayMissingSound(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if snd := e.Play("boom"); snd != nil {
		t.Error("missing sound should return nil")
	}
}

func TestEngineQuit(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Quit()
	if err := e.Update(); err == nil {
		t.Error("Update should terminate after Quit")
	}
}
