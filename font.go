package kaboom

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph locates one character on a font page. Sizes and offsets are in
// font pixels.
type Glyph struct {
	Quad    Quad
	Page    int
	Width   float64
	Height  float64
	XOffset float64
	YOffset float64
	Advance float64
}

// FontData is a bitmap font: one or more texture pages plus a glyph table.
type FontData struct {
	Pages      []*Texture
	Glyphs     map[rune]Glyph
	LineHeight float64
}

// glyph looks up ch, falling back to '?'.
func (f *FontData) glyph(ch rune) (Glyph, bool) {
	if g, ok := f.Glyphs[ch]; ok {
		return g, true
	}
	g, ok := f.Glyphs['?']
	return g, ok
}

// newGridFont slices tex into gw×gh cells assigned to chars in row-major
// order.
func newGridFont(tex *Texture, gw, gh int, chars string) *FontData {
	f := &FontData{
		Pages:      []*Texture{tex},
		Glyphs:     make(map[rune]Glyph),
		LineHeight: float64(gh),
	}
	if gw <= 0 || gh <= 0 {
		return f
	}
	cols := tex.width / gw
	if cols == 0 {
		return f
	}
	qw := float64(gw) / float64(tex.width)
	qh := float64(gh) / float64(tex.height)
	i := 0
	for _, ch := range chars {
		f.Glyphs[ch] = Glyph{
			Quad:    Quad{float64(i%cols) * qw, float64(i/cols) * qh, qw, qh},
			Width:   float64(gw),
			Height:  float64(gh),
			Advance: float64(gw),
		}
		i++
	}
	return f
}

// asciiChars is the printable ASCII range in code point order.
const asciiChars = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

const defaultFontCols = 16

// newDefaultFont rasterizes basicfont's 7×13 face into a grid font.
func newDefaultFont() *FontData {
	face := basicfont.Face7x13
	gw, gh := face.Advance, face.Height
	n := len(asciiChars)
	rows := (n + defaultFontCols - 1) / defaultFontCols
	img := image.NewRGBA(image.Rect(0, 0, gw*defaultFontCols, gh*rows))

	d := font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, ch := range asciiChars {
		x := (i % defaultFontCols) * gw
		y := (i / defaultFontCols) * gh
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(ch))
	}
	return newGridFont(NewTexture(img), gw, gh, asciiChars)
}
