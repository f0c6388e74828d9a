package kaboom

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// FrameStats holds per-frame timing and draw-call metrics.
type FrameStats struct {
	UpdateTime time.Duration
	DrawTime   time.Duration
	DrawCalls  int
	Objects    int
}

const (
	statsLogInterval = 1.0 // seconds of game time between stats lines
	debugPad         = 8.0
	loadingBarHeight = 24.0
)

var (
	debugAreaColor  = RGB(0, 1, 1)
	debugLogBg      = RGBA(0, 0, 0, 0.8)
	debugInfoColor  = ColorWhite
	debugWarnColor  = RGB(1, 0.8, 0.4)
	debugErrorColor = RGB(1, 0.6, 0.8)
)

// debugKeys handles the built-in debug shortcuts: F1 toggles area
// inspection, F2 clears the log, F8 toggles pause and F10 steps one paused
// frame.
func (e *Engine) debugKeys() {
	in := e.input
	if in.KeyPressed("f1") {
		e.conf.Debug.ShowArea = !e.conf.Debug.ShowArea
	}
	if in.KeyPressed("f2") {
		e.log.Clear()
	}
	if in.KeyPressed("f8") {
		e.paused = !e.paused
		e.log.Info(fmt.Sprintf("paused: %t", e.paused))
	}
	if in.KeyPressed("f10") {
		e.StepFrame()
	}
}

// logStats prints timing and draw-call stats once per interval when stats
// are enabled.
func (e *Engine) logStats() {
	if !e.conf.Debug.ShowStats || e.time-e.statsLogged < statsLogInterval {
		return
	}
	e.statsLogged = e.time
	s := e.stats
	e.log.Debug("frame",
		"update", s.UpdateTime,
		"draw", s.DrawTime,
		"drawCalls", s.DrawCalls,
		"objects", s.Objects,
		"fps", fmt.Sprintf("%.0f", e.FPS()),
	)
}

// drawDebug draws the area outlines and the stats corner on top of the
// scene.
func (e *Engine) drawDebug() {
	s := e.cur
	if e.conf.Debug.ShowArea {
		var hovered *GameObject
		for _, o := range s.objs {
			if o.area == nil {
				continue
			}
			e.drawArea(o)
			if o.IsHovered() {
				hovered = o
			}
		}
		if hovered != nil {
			e.drawInspect(hovered)
		}
	}
	if e.conf.Debug.ShowStats {
		e.drawPanel(Vec2{debugPad, debugPad}, AnchorTopLeft, fmt.Sprintf(
			"fps %.0f  objs %d  draws %d", e.FPS(), s.Len(), e.stats.DrawCalls,
		), debugInfoColor)
	}
}

func (e *Engine) drawArea(o *GameObject) {
	s := e.cur
	r := o.WorldArea()
	width := 1.0
	e.gfx.PushTransform()
	if !s.camIgnored(o) {
		e.gfx.PushMatrix(s.cam.matrix)
		width /= max(s.cam.Scale.X, s.cam.Scale.Y)
	}
	e.gfx.DrawRectStroke(r.P1, r.Width(), r.Height(), width, QuadConf{Color: debugAreaColor})
	e.gfx.PopTransform()
}

func (e *Engine) drawInspect(o *GameObject) {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", o.id, o.Pos)
	for _, t := range o.Tags() {
		fmt.Fprintf(&b, "\n\"%s\"", t)
	}
	e.drawPanel(e.input.MousePos().Add(Vec2{debugPad, debugPad}), AnchorTopLeft, b.String(), debugInfoColor)
}

// drawLog draws the live log entries at the bottom left, newest last.
func (e *Engine) drawLog() {
	entries := e.log.Entries()
	if len(entries) == 0 {
		return
	}
	font := e.assets.Font(DefaultFont)
	y := e.gfx.Height() - debugPad
	for _, ent := range slices.Backward(entries) {
		e.drawPanelFont(font, Vec2{debugPad, y}, AnchorBotLeft, ent.Msg, logColor(ent.Kind))
		y -= font.LineHeight + 4
	}
}

func logColor(k LogKind) Color {
	switch k {
	case LogError:
		return debugErrorColor
	case LogWarn:
		return debugWarnColor
	}
	return debugInfoColor
}

func (e *Engine) drawPanel(pos Vec2, origin Anchor, text string, col Color) {
	e.drawPanelFont(e.assets.Font(DefaultFont), pos, origin, text, col)
}

// drawPanelFont draws text over a dark backing box in screen space.
func (e *Engine) drawPanelFont(font *FontData, pos Vec2, origin Anchor, text string, col Color) {
	ft := FmtText(text, font, TextConf{Pos: pos, Origin: origin, Color: col})
	if len(ft.Chars) == 0 {
		return
	}
	o := origin.Pt()
	topLeft := pos.Sub(Vec2{(o.X + 1) / 2 * ft.Width, (o.Y + 1) / 2 * ft.Height})
	e.gfx.DrawRect(topLeft.Sub(Vec2{2, 2}), ft.Width+4, ft.Height+4, QuadConf{Color: debugLogBg})
	e.gfx.DrawFormattedText(ft)
}

// drawLoading draws a progress bar in the middle of the screen.
func (e *Engine) drawLoading(progress float64) {
	w, h := e.gfx.Width()/2, loadingBarHeight
	pos := Vec2{e.gfx.Width() / 2, e.gfx.Height() / 2}
	e.gfx.DrawRectStroke(pos, w, h, 4, QuadConf{Origin: AnchorCenter, Color: ColorWhite})
	e.gfx.DrawRect(pos.Sub(Vec2{w / 2, h / 2}), w*Clamp(progress, 0, 1), h, QuadConf{Color: ColorWhite})
}
