package kaboom

import "testing"

func TestTextAutoArea(t *testing.T) {
	var o *GameObject
	e, _, _ := startScene(t, func(s *Scene) {
		o = s.Add(NewText("score: 0"))
	})
	ft := FmtText("score: 0", e.Assets().Font(""), TextConf{})
	txt := o.Text()
	if txt.Width != ft.Width || txt.Height != ft.Height {
		t.Errorf("text size = %v x %v, want %v x %v", txt.Width, txt.Height, ft.Width, ft.Height)
	}
	r := o.WorldArea()
	if r.Width() != ft.Width || r.Height() != ft.Height {
		t.Errorf("area = %v x %v", r.Width(), r.Height())
	}
}

func TestTextWrapGrowsHeight(t *testing.T) {
	var one, wrapped *GameObject
	startScene(t, func(s *Scene) {
		one = s.Add(NewText("aaaa bbbb"))
		wrapped = s.Add(NewText("aaaa bbbb", TextOpts{Width: 30}))
	})
	if wrapped.Text().Height <= one.Text().Height {
		t.Errorf("wrapped height %v, single line %v", wrapped.Text().Height, one.Text().Height)
	}
	if wrapped.Text().Width >= one.Text().Width {
		t.Errorf("wrapped width %v, single line %v", wrapped.Text().Width, one.Text().Width)
	}
}

func TestTextSizeScales(t *testing.T) {
	var o *GameObject
	e, _, _ := startScene(t, func(s *Scene) {
		o = s.Add(NewText("x", TextOpts{Size: 26}))
	})
	if o.Text().Height != 26 {
		t.Errorf("height = %v, want 26", o.Text().Height)
	}
	o.Text().Text = "xx"
	e.Frame(frameDt)
	if o.Text().Width <= 0 {
		t.Error("width not refreshed on draw")
	}
}

func TestTextKeepsExplicitArea(t *testing.T) {
	var o *GameObject
	startScene(t, func(s *Scene) {
		o = s.Add(&Area{P2: V2(5, 5)}, NewText("long text here"))
	})
	if r := o.WorldArea(); r.Width() != 5 {
		t.Errorf("area width = %v, want 5", r.Width())
	}
}
