package kaboom

import (
	"image"
	"io"
	"math"
	"slices"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// recordBackend keeps a copy of every submitted batch.
type recordBackend struct {
	frames  int
	clears  []Color
	batches []Batch
}

func (b *recordBackend) Begin(clear Color) {
	b.frames++
	b.clears = append(b.clears, clear)
}

func (b *recordBackend) Submit(batch Batch) {
	batch.Vertices = slices.Clone(batch.Vertices)
	batch.Indices = slices.Clone(batch.Indices)
	b.batches = append(b.batches, batch)
}

func (b *recordBackend) End() {}

func (b *recordBackend) reset() { b.batches = nil }

// newTestEngine returns an engine with scripted input, a recording backend,
// a fixed seed and console logging discarded.
func newTestEngine(t *testing.T) (*Engine, *ScriptedInput, *recordBackend) {
	t.Helper()
	e := New(Config{Game: GameConfig{Seed: 1}})
	e.SetLogOutput(io.Discard)
	in := NewScriptedInput()
	e.SetInput(in)
	rec := &recordBackend{}
	e.SetBackend(rec)
	return e, in, rec
}

// startScene registers init as "test" and enters it.
func startScene(t *testing.T, init func(s *Scene)) (*Engine, *Scene, *ScriptedInput) {
	t.Helper()
	e, in, _ := newTestEngine(t)
	e.Scene("test", func(s *Scene, _ ...any) {
		if init != nil {
			init(s)
		}
	})
	e.Start("test")
	return e, e.Current(), in
}

const frameDt = 1.0 / 60

func steps(e *Engine, n int) {
	for range n {
		e.Step(frameDt)
	}
}

func imageOf(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
