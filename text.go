package kaboom

// TextOpts configures a text component.
type TextOpts struct {
	// Size is the line height in pixels; 0 uses the font's own.
	Size float64
	// Font names a registered font; "" uses the default font.
	Font string
	// Width wraps lines longer than this; 0 disables wrapping.
	Width float64
}

// Text draws a string. Width and Height are refreshed every time it is
// drawn.
type Text struct {
	Text string
	TextOpts

	Width, Height float64
}

// NewText returns a text component.
func NewText(str string, opts ...TextOpts) *Text {
	t := &Text{Text: str}
	if len(opts) > 0 {
		t.TextOpts = opts[0]
	}
	return t
}

func (t *Text) Attach(o *GameObject) {
	o.text = t
	o.On(EventAdd, func(obj *GameObject, _ ...any) {
		ft := t.layout(obj)
		if obj.area == nil {
			obj.Use(AreaFromSize(ft.Width, ft.Height, obj.Origin()))
		}
	})
	o.On(EventDraw, func(obj *GameObject, _ ...any) {
		ft := t.layout(obj)
		obj.engine().gfx.DrawFormattedText(ft)
	})
}

func (*Text) builtin() {}

func (t *Text) layout(obj *GameObject) FormattedText {
	e := obj.engine()
	ft := FmtText(t.Text, e.assets.Font(t.Font), TextConf{
		Pos:    obj.Pos,
		Size:   t.Size,
		Width:  t.TextOpts.Width,
		Origin: obj.Origin(),
		Color:  obj.Color(),
		Z:      obj.drawZ(),
	})
	t.Width, t.Height = ft.Width, ft.Height
	return ft
}
