package kaboom

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenBackend draws batches onto an ebiten image with DrawTriangles32.
type ebitenBackend struct {
	target *ebiten.Image
	log    *Logger
	verts  []ebiten.Vertex
}

func newEbitenBackend(log *Logger) *ebitenBackend {
	return &ebitenBackend{log: log}
}

// setTarget selects the image drawn to until the next call.
func (b *ebitenBackend) setTarget(img *ebiten.Image) { b.target = img }

func (b *ebitenBackend) Begin(clear Color) {
	if b.target != nil {
		b.target.Fill(clear.toRGBA())
	}
}

func (b *ebitenBackend) End() {}

// Submit converts NDC positions back to target pixels and normalized UVs to
// texels, then issues one triangle draw.
func (b *ebitenBackend) Submit(batch Batch) {
	if b.target == nil {
		return
	}
	img := b.image(batch.Texture)
	if img == nil {
		return
	}

	bounds := b.target.Bounds()
	tw, th := float32(bounds.Dx()), float32(bounds.Dy())
	iw, ih := float32(batch.Texture.width), float32(batch.Texture.height)

	b.verts = b.verts[:0]
	v := batch.Vertices
	for i := 0; i+vertexStride <= len(v); i += vertexStride {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   (v[i] + 1) / 2 * tw,
			DstY:   (1 - v[i+1]) / 2 * th,
			SrcX:   v[i+3] * iw,
			SrcY:   v[i+4] * ih,
			ColorR: v[i+5],
			ColorG: v[i+6],
			ColorB: v[i+7],
			ColorA: v[i+8],
		})
	}

	if batch.Shader != nil {
		if sh := b.shader(batch.Shader.Shader); sh != nil {
			var op ebiten.DrawTrianglesShaderOptions
			op.Images[0] = img
			op.Uniforms = batch.Shader.Uniforms
			b.target.DrawTrianglesShader32(b.verts, batch.Indices, sh, &op)
			return
		}
	}

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	b.target.DrawTriangles32(b.verts, batch.Indices, img, &op)
}

// image uploads the texture on first use.
func (b *ebitenBackend) image(t *Texture) *ebiten.Image {
	if t == nil {
		return nil
	}
	if t.img == nil && t.src != nil {
		t.img = ebiten.NewImageFromImage(t.src)
	}
	return t.img
}

// shader compiles the Kage source on first use. A failed compile is logged
// once and the batch falls back to the default pipeline.
func (b *ebitenBackend) shader(s *Shader) *ebiten.Shader {
	if s == nil || s.failed {
		return nil
	}
	if s.compiled == nil {
		sh, err := ebiten.NewShader(s.src)
		if err != nil {
			s.failed = true
			b.log.Error("compile shader", "name", s.name, "err", err)
			return nil
		}
		s.compiled = sh
	}
	return s.compiled
}
