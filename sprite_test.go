package kaboom

import (
	"strings"
	"testing"
)

// heroScene registers a 2×1 sheet of 16×16 frames and adds it as a sprite
// that advances one frame every 0.25s.
func heroScene(t *testing.T, anims map[string]Anim, opts SpriteOpts) (*Engine, *GameObject) {
	t.Helper()
	var o *GameObject
	e, _, _ := startScene(t, func(s *Scene) {
		s.Engine().Assets().AddSprite("hero", imageOf(32, 16), SpriteConf{SliceX: 2, Anims: anims})
		o = s.Add(NewSprite("hero", opts))
	})
	return e, o
}

func TestSpriteAutoArea(t *testing.T) {
	_, o := heroScene(t, nil, SpriteOpts{})
	spr := o.Sprite()
	if spr.Data() == nil || spr.NumFrames() != 2 {
		t.Fatalf("data = %v frames = %d", spr.Data(), spr.NumFrames())
	}
	if spr.Width() != 16 || spr.Height() != 16 {
		t.Errorf("size = %v x %v, want 16 x 16", spr.Width(), spr.Height())
	}
	r := o.WorldArea()
	if r.Width() != 16 || r.Height() != 16 {
		t.Errorf("area = %v", r)
	}
}

func TestSpriteMissingAsset(t *testing.T) {
	var o *GameObject
	e, _, _ := startScene(t, func(s *Scene) {
		o = s.Add(NewSprite("ghost"))
	})
	if o.Sprite().Data() != nil || o.Area() != nil {
		t.Error("missing sprite should have no data and no area")
	}
	ents := e.Log().Entries()
	if len(ents) == 0 || !strings.Contains(ents[len(ents)-1].Msg, "ghost") {
		t.Errorf("log = %+v", ents)
	}
}

func TestSpriteLoopingAnim(t *testing.T) {
	e, o := heroScene(t, map[string]Anim{"walk": {From: 0, To: 1}}, SpriteOpts{AnimSpeed: 0.25})
	spr := o.Sprite()
	var played []string
	spr.OnAnimPlay(func(name string) { played = append(played, name) })

	spr.Play("walk")
	if spr.CurAnim() != "walk" || spr.Frame != 0 {
		t.Fatalf("anim=%q frame=%d", spr.CurAnim(), spr.Frame)
	}
	want := []int{1, 0, 1}
	for i, f := range want {
		e.Step(0.25)
		if spr.Frame != f {
			t.Errorf("step %d frame = %d, want %d", i, spr.Frame, f)
		}
	}
	if len(played) != 1 || played[0] != "walk" {
		t.Errorf("animPlay = %v", played)
	}
}

func TestSpriteOneShotAnimEnds(t *testing.T) {
	e, o := heroScene(t, map[string]Anim{"hit": {From: 0, To: 1}}, SpriteOpts{AnimSpeed: 0.25})
	spr := o.Sprite()
	var ended []string
	spr.OnAnimEnd(func(name string) { ended = append(ended, name) })

	spr.Play("hit", false)
	e.Step(0.25)
	e.Step(0.25)
	if spr.Frame != 1 {
		t.Errorf("frame = %d, want last frame 1", spr.Frame)
	}
	if spr.CurAnim() != "" {
		t.Errorf("anim = %q, want stopped", spr.CurAnim())
	}
	if len(ended) != 1 || ended[0] != "hit" {
		t.Errorf("animEnd = %v", ended)
	}
	e.Step(0.25)
	if len(ended) != 1 {
		t.Errorf("animEnd fired again: %v", ended)
	}
}

func TestSpriteAnimSpeedOverride(t *testing.T) {
	e, o := heroScene(t, map[string]Anim{"fast": {From: 0, To: 1, Speed: 4}}, SpriteOpts{})
	spr := o.Sprite()
	spr.Play("fast")
	e.Step(0.25)
	if spr.Frame != 1 {
		t.Errorf("frame = %d, want 1 after one 4 fps tick", spr.Frame)
	}
}

func TestSpritePlayReplacesAnim(t *testing.T) {
	_, o := heroScene(t, map[string]Anim{
		"a": {From: 0, To: 0},
		"b": {From: 1, To: 1},
	}, SpriteOpts{})
	spr := o.Sprite()
	var ended []string
	spr.OnAnimEnd(func(name string) { ended = append(ended, name) })
	spr.Play("a")
	spr.Play("b")
	if spr.CurAnim() != "b" || spr.Frame != 1 {
		t.Errorf("anim=%q frame=%d", spr.CurAnim(), spr.Frame)
	}
	if len(ended) != 1 || ended[0] != "a" {
		t.Errorf("animEnd = %v, want [a]", ended)
	}
}

func TestSpriteMissingAnimLogged(t *testing.T) {
	e, o := heroScene(t, nil, SpriteOpts{})
	o.Sprite().Play("dance")
	if o.Sprite().CurAnim() != "" {
		t.Error("missing anim should not play")
	}
	ents := e.Log().Entries()
	if len(ents) == 0 || ents[len(ents)-1].Kind != LogError || !strings.Contains(ents[len(ents)-1].Msg, "dance") {
		t.Errorf("log = %+v", ents)
	}
}

func TestSpriteDrawQuadFlips(t *testing.T) {
	tests := []struct {
		spr  Sprite
		want Quad
	}{
		{Sprite{}, FullQuad},
		{Sprite{FlipX: true}, Quad{1, 0, -1, 1}},
		{Sprite{FlipY: true}, Quad{0, 1, 1, -1}},
		{Sprite{Quad: Quad{0.5, 0, 0.5, 1}, FlipX: true}, Quad{1, 0, -0.5, 1}},
	}
	for i, tt := range tests {
		if got := tt.spr.drawQuad(); got != tt.want {
			t.Errorf("case %d: drawQuad = %v, want %v", i, got, tt.want)
		}
	}
}

func TestSpriteCropSize(t *testing.T) {
	_, o := heroScene(t, nil, SpriteOpts{Quad: Quad{0, 0, 0.5, 0.5}})
	spr := o.Sprite()
	if spr.Width() != 8 || spr.Height() != 8 {
		t.Errorf("size = %v x %v, want 8 x 8", spr.Width(), spr.Height())
	}
}

func TestSpriteDrawSubmitsQuad(t *testing.T) {
	e, _, rec := newTestEngine(t)
	e.Scene("test", func(s *Scene, _ ...any) {
		s.Engine().Assets().AddSprite("hero", imageOf(32, 16), SpriteConf{SliceX: 2})
		s.Add(NewSprite("hero"))
	})
	e.Start("test")
	e.Frame(frameDt)
	if len(rec.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(rec.batches))
	}
	if n := len(rec.batches[0].Indices); n != 6 {
		t.Errorf("indices = %d, want 6", n)
	}
}
