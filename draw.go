package kaboom

import "math"

// QuadConf describes a textured rectangle. Zero Scale, Color and Quad mean
// (1, 1), white and the whole texture.
type QuadConf struct {
	Pos           Vec2
	Width, Height float64
	Scale         Vec2
	Rot           float64
	Origin        Anchor
	// Z is the depth bias. The vertex depth is 1 - Z, so the default
	// draws furthest back.
	Z      float64
	Color  Color
	Quad   Quad
	Tex    *Texture
	Shader *ShaderBinding
}

var quadIndices = []uint32{0, 1, 3, 1, 2, 3}

// DrawQuad draws a rectangle composed as translate(pos) · scale ·
// rotateZ(rot) · translate(origin offset).
func (r *Renderer) DrawQuad(c QuadConf) {
	w, h := c.Width, c.Height
	scale := c.Scale
	if scale == (Vec2{}) {
		scale = Vec2{1, 1}
	}
	q := c.Quad
	if q.W == 0 && q.H == 0 {
		q = FullQuad
	}
	col := c.Color
	if col == (Color{}) {
		col = ColorWhite
	}
	offset := c.Origin.Pt().Mul(Vec2{w, h}).Scale(-0.5)
	z := 1 - c.Z

	r.PushTransform()
	r.PushTranslate(c.Pos)
	r.PushScale(scale)
	r.PushRotateZ(c.Rot)
	r.PushTranslate(offset)

	r.DrawRaw([]Vertex{
		{Pos: Vec3{-w / 2, h / 2, z}, UV: Vec2{q.X, q.Y + q.H}, Color: col},
		{Pos: Vec3{-w / 2, -h / 2, z}, UV: Vec2{q.X, q.Y}, Color: col},
		{Pos: Vec3{w / 2, -h / 2, z}, UV: Vec2{q.X + q.W, q.Y}, Color: col},
		{Pos: Vec3{w / 2, h / 2, z}, UV: Vec2{q.X + q.W, q.Y + q.H}, Color: col},
	}, quadIndices, c.Tex, c.Shader)

	r.PopTransform()
}

// DrawRect draws a filled w×h rectangle at pos.
func (r *Renderer) DrawRect(pos Vec2, w, h float64, c QuadConf) {
	c.Pos = pos
	c.Width = w
	c.Height = h
	c.Tex = nil
	c.Quad = Quad{}
	r.DrawQuad(c)
}

// DrawRectStroke outlines a w×h rectangle at pos with lines of the given
// width.
func (r *Renderer) DrawRectStroke(pos Vec2, w, h, width float64, c QuadConf) {
	scale := c.Scale
	if scale == (Vec2{}) {
		scale = Vec2{1, 1}
	}
	offset := c.Origin.Pt().Mul(Vec2{w, h}).Scale(-0.5)

	r.PushTransform()
	r.PushTranslate(pos)
	r.PushScale(scale)
	r.PushRotateZ(c.Rot)
	r.PushTranslate(offset)

	p1 := Vec2{-w / 2, -h / 2}
	p2 := Vec2{w / 2, -h / 2}
	p3 := Vec2{w / 2, h / 2}
	p4 := Vec2{-w / 2, h / 2}
	r.DrawLine(p1, p2, width, c.Color, c.Z)
	r.DrawLine(p2, p3, width, c.Color, c.Z)
	r.DrawLine(p3, p4, width, c.Color, c.Z)
	r.DrawLine(p4, p1, width, c.Color, c.Z)

	r.PopTransform()
}

// DrawLine draws a segment from p1 to p2.
func (r *Renderer) DrawLine(p1, p2 Vec2, width float64, col Color, z float64) {
	d := p2.Sub(p1)
	r.DrawQuad(QuadConf{
		Pos:    p1.Add(p2).Scale(0.5),
		Width:  d.Len() + width,
		Height: width,
		Rot:    math.Atan2(d.Y, d.X),
		Origin: AnchorCenter,
		Color:  col,
		Z:      z,
	})
}

// DrawSprite draws one frame of a sprite, cropped by c.Quad when set. Out
// of range frames draw frame 0.
func (r *Renderer) DrawSprite(spr *SpriteData, frame int, c QuadConf) {
	if spr == nil || len(spr.Frames) == 0 {
		return
	}
	if frame < 0 || frame >= len(spr.Frames) {
		frame = 0
	}
	q := spr.Frames[frame]
	c.Tex = spr.Tex
	c.Width = float64(spr.Tex.width) * q.W
	c.Height = float64(spr.Tex.height) * q.H
	if c.Quad.W != 0 || c.Quad.H != 0 {
		c.Width *= math.Abs(c.Quad.W)
		c.Height *= math.Abs(c.Quad.H)
		q = q.Scale(c.Quad)
	}
	c.Quad = q
	r.DrawQuad(c)
}

// TextConf controls text layout.
type TextConf struct {
	Pos Vec2
	// Size is the line height in pixels; 0 uses the font's own.
	Size float64
	// Width wraps lines longer than this; 0 disables wrapping.
	Width  float64
	Origin Anchor
	Color  Color
	Z      float64
}

// FormattedChar is one positioned glyph. Pos is its top left corner.
type FormattedChar struct {
	Ch     rune
	Tex    *Texture
	Quad   Quad
	Pos    Vec2
	Width  float64
	Height float64
	Color  Color
	Z      float64
}

// FormattedText is laid out text ready to draw.
type FormattedText struct {
	Width, Height float64
	Chars         []FormattedChar
}

type placedGlyph struct {
	ch rune
	g  Glyph
	x  float64
}

// FmtText lays out text with font. Newlines break lines; with a wrap width
// lines break before the glyph that would overflow it.
func FmtText(text string, font *FontData, c TextConf) FormattedText {
	if font == nil || font.LineHeight <= 0 {
		return FormattedText{}
	}
	scale := 1.0
	if c.Size > 0 {
		scale = c.Size / font.LineHeight
	}
	lh := font.LineHeight * scale

	lines := [][]placedGlyph{nil}
	widths := []float64{0}
	curX := 0.0
	for _, ch := range text {
		if ch == '\n' {
			lines = append(lines, nil)
			widths = append(widths, 0)
			curX = 0
			continue
		}
		g, ok := font.glyph(ch)
		if !ok {
			continue
		}
		adv := g.Advance * scale
		ln := len(lines) - 1
		if c.Width > 0 && curX+adv > c.Width && len(lines[ln]) > 0 {
			lines = append(lines, nil)
			widths = append(widths, 0)
			curX = 0
			ln++
		}
		lines[ln] = append(lines[ln], placedGlyph{ch: ch, g: g, x: curX})
		curX += adv
		widths[ln] = curX
	}

	tw := 0.0
	for _, w := range widths {
		tw = math.Max(tw, w)
	}
	if c.Width > 0 {
		tw = c.Width
	}
	th := float64(len(lines)) * lh

	col := c.Color
	if col == (Color{}) {
		col = ColorWhite
	}
	o := c.Origin.Pt()
	fx := (o.X + 1) / 2
	fy := (o.Y + 1) / 2
	start := c.Pos.Sub(Vec2{fx * tw, fy * th})

	out := FormattedText{Width: tw, Height: th}
	for ln, line := range lines {
		lx := (tw - widths[ln]) * fx
		for _, p := range line {
			out.Chars = append(out.Chars, FormattedChar{
				Ch:   p.ch,
				Tex:  font.Pages[p.g.Page],
				Quad: p.g.Quad,
				Pos: start.Add(Vec2{
					lx + p.x + p.g.XOffset*scale,
					float64(ln)*lh + p.g.YOffset*scale,
				}),
				Width:  p.g.Width * scale,
				Height: p.g.Height * scale,
				Color:  col,
				Z:      c.Z,
			})
		}
	}
	return out
}

// DrawFormattedText draws text laid out by FmtText.
func (r *Renderer) DrawFormattedText(ft FormattedText) {
	for _, ch := range ft.Chars {
		r.DrawQuad(QuadConf{
			Pos:    ch.Pos,
			Width:  ch.Width,
			Height: ch.Height,
			Tex:    ch.Tex,
			Quad:   ch.Quad,
			Color:  ch.Color,
			Z:      ch.Z,
		})
	}
}

// DrawText lays out and draws text in one call.
func (r *Renderer) DrawText(text string, font *FontData, c TextConf) FormattedText {
	ft := FmtText(text, font, c)
	r.DrawFormattedText(ft)
	return ft
}
