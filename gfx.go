package kaboom

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// vertexStride is the number of floats per queued vertex:
// x, y, z, u, v, r, g, b, a.
const vertexStride = 9

const (
	defaultVertexCap = 4 * 1024 * vertexStride
	defaultIndexCap  = 6 * 1024
)

// Vertex is one corner of a primitive passed to DrawRaw. Pos is in the
// current transform's space; UV is normalized.
type Vertex struct {
	Pos   Vec3
	UV    Vec2
	Color Color
}

// Texture is an image the renderer can sample. The GPU copy is created by
// the backend on first use.
type Texture struct {
	width, height int
	src           image.Image
	img           *ebiten.Image
}

// NewTexture wraps a decoded image.
func NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{width: b.Dx(), height: b.Dy(), src: img}
}

// newWhiteTexture returns the 1×1 white texture used for untextured draws.
func newWhiteTexture() *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	return NewTexture(img)
}

func (t *Texture) Width() int { return t.width }
func (t *Texture) Height() int { return t.height }

// ShaderBinding pairs a shader with the uniforms it is drawn with.
type ShaderBinding struct {
	Shader   *Shader
	Uniforms map[string]any
}

// Batch is one flushed draw submission. The slices are only valid for the
// duration of Backend.Submit.
type Batch struct {
	Vertices []float32
	Indices  []uint32
	Texture  *Texture
	Shader   *ShaderBinding
}

// Backend receives the renderer's flushed geometry.
type Backend interface {
	// Begin starts a frame, clearing the target to the given color.
	Begin(clear Color)
	// Submit draws one batch. Vertex positions are in normalized device
	// coordinates.
	Submit(b Batch)
	// End finishes the frame.
	End()
}

// Renderer accumulates primitives into a single vertex/index queue and
// submits them to its Backend. It keeps an explicit transform stack
// instead of a scene graph.
type Renderer struct {
	backend       Backend
	width, height float64
	clear         Color

	vqueue    []float32
	iqueue    []uint32
	curTex    *Texture
	curShader *ShaderBinding
	defTex    *Texture

	transform Mat4
	stack     []Mat4

	drawCalls int
	inFrame   bool
}

// NewRenderer creates a renderer for a width×height logical screen.
func NewRenderer(backend Backend, width, height float64) *Renderer {
	return &Renderer{
		backend:   backend,
		width:     width,
		height:    height,
		clear:     ColorBlack,
		vqueue:    make([]float32, 0, defaultVertexCap),
		iqueue:    make([]uint32, 0, defaultIndexCap),
		defTex:    newWhiteTexture(),
		transform: Ident4(),
	}
}

func (r *Renderer) Width() float64 { return r.width }
func (r *Renderer) Height() float64 { return r.height }

// DrawCalls returns the submissions made so far this frame.
func (r *Renderer) DrawCalls() int { return r.drawCalls }

// SetClearColor sets the color each frame starts with.
func (r *Renderer) SetClearColor(c Color) { r.clear = c }

// FrameStart resets the transform stack and draw-call counter.
func (r *Renderer) FrameStart() {
	r.drawCalls = 0
	r.transform = Ident4()
	r.stack = r.stack[:0]
	r.inFrame = true
	r.backend.Begin(r.clear)
}

// FrameEnd flushes pending geometry.
func (r *Renderer) FrameEnd() {
	r.Flush()
	r.curTex = nil
	r.curShader = nil
	r.inFrame = false
	r.backend.End()
}

// --- transform stack ---

// PushTransform saves the current transform.
func (r *Renderer) PushTransform() {
	r.stack = append(r.stack, r.transform)
}

// PopTransform restores the last saved transform. Popping an empty stack
// is a no-op.
func (r *Renderer) PopTransform() {
	if len(r.stack) == 0 {
		return
	}
	r.transform = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Renderer) PushTranslate(p Vec2) { r.transform = r.transform.Translate(p) }
func (r *Renderer) PushScale(s Vec2) { r.transform = r.transform.Scale(s) }
func (r *Renderer) PushRotateZ(a float64) {
	r.transform = r.transform.RotateZ(a)
}

// PushMatrix multiplies m onto the current transform.
func (r *Renderer) PushMatrix(m Mat4) { r.transform = r.transform.Mult(m) }

// Transform returns the current transform.
func (r *Renderer) Transform() Mat4 { return r.transform }

func (r *Renderer) toNDC(p Vec2) Vec2 {
	return Vec2{
		p.X/r.width*2 - 1,
		-p.Y/r.height*2 + 1,
	}
}
