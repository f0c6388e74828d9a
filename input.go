package kaboom

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	keyRepeatDelay    = 30 // frames before a held key starts repeating
	keyRepeatInterval = 3  // frames between repeats
)

// ButtonState is the latched state of a key or button for one frame.
type ButtonState uint8

const (
	ButtonUp ButtonState = iota
	ButtonPressed
	ButtonDown
	ButtonReleased
)

// InputFrame is the raw device state for one frame.
type InputFrame struct {
	// Keys are the names of the keys held down, e.g. "a", "space", "left".
	Keys      []string
	Chars     []rune
	MousePos  Vec2
	MouseDown bool
}

// InputSource reports device state. Poll is called once per frame with a
// frame whose slices have been truncated for reuse.
type InputSource interface {
	Poll(f *InputFrame)
}

// Input latches an InputSource into per-frame transitions: a key is
// "pressed" on the first frame it is seen down, "down" while it stays
// down and "released" on the first frame it is up again.
type Input struct {
	src   InputSource
	frame InputFrame

	keys  map[string]ButtonState
	held  map[string]int
	mouse ButtonState
	down  map[string]struct{}
}

func newInput(src InputSource) *Input {
	return &Input{
		src:  src,
		keys: make(map[string]ButtonState),
		held: make(map[string]int),
		down: make(map[string]struct{}),
	}
}

// update polls the source and advances every transition by one frame.
func (in *Input) update() {
	in.frame.Keys = in.frame.Keys[:0]
	in.frame.Chars = in.frame.Chars[:0]
	if in.src != nil {
		in.src.Poll(&in.frame)
	}

	clear(in.down)
	for _, k := range in.frame.Keys {
		in.down[k] = struct{}{}
	}
	for k, st := range in.keys {
		if _, ok := in.down[k]; ok {
			continue
		}
		if st == ButtonReleased {
			delete(in.keys, k)
			delete(in.held, k)
		} else {
			in.keys[k] = ButtonReleased
		}
	}
	for k := range in.down {
		switch in.keys[k] {
		case ButtonPressed, ButtonDown:
			in.keys[k] = ButtonDown
			in.held[k]++
		default:
			in.keys[k] = ButtonPressed
			in.held[k] = 0
		}
	}
	in.mouse = advance(in.mouse, in.frame.MouseDown)
}

func advance(st ButtonState, down bool) ButtonState {
	switch {
	case down && (st == ButtonPressed || st == ButtonDown):
		return ButtonDown
	case down:
		return ButtonPressed
	case st == ButtonPressed || st == ButtonDown:
		return ButtonReleased
	}
	return ButtonUp
}

// Key returns the latched state of key.
func (in *Input) Key(key string) ButtonState { return in.keys[key] }

// KeyPressed reports whether key went down this frame.
func (in *Input) KeyPressed(key string) bool { return in.keys[key] == ButtonPressed }

// KeyDown reports whether key is held, including the frame it went down.
func (in *Input) KeyDown(key string) bool {
	st := in.keys[key]
	return st == ButtonPressed || st == ButtonDown
}

// KeyReleased reports whether key went up this frame.
func (in *Input) KeyReleased(key string) bool { return in.keys[key] == ButtonReleased }

// KeyPressedRep reports a press this frame or a repeat while key is held.
func (in *Input) KeyPressedRep(key string) bool {
	switch in.keys[key] {
	case ButtonPressed:
		return true
	case ButtonDown:
		n := in.held[key]
		return n >= keyRepeatDelay && (n-keyRepeatDelay)%keyRepeatInterval == 0
	}
	return false
}

// Chars returns the characters typed this frame.
func (in *Input) Chars() []rune { return in.frame.Chars }

// MousePos returns the cursor position in screen space.
func (in *Input) MousePos() Vec2 { return in.frame.MousePos }

func (in *Input) MousePressed() bool { return in.mouse == ButtonPressed }
func (in *Input) MouseReleased() bool { return in.mouse == ButtonReleased }
func (in *Input) MouseDown() bool {
	return in.mouse == ButtonPressed || in.mouse == ButtonDown
}

// ebitenInput reads the keyboard and mouse through ebiten.
type ebitenInput struct {
	keys []ebiten.Key
}

func (s *ebitenInput) Poll(f *InputFrame) {
	s.keys = inpututil.AppendPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		f.Keys = append(f.Keys, keyName(k))
	}
	f.Chars = ebiten.AppendInputChars(f.Chars)
	x, y := ebiten.CursorPosition()
	f.MousePos = Vec2{float64(x), float64(y)}
	f.MouseDown = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:    "left",
	ebiten.KeyArrowRight:   "right",
	ebiten.KeyArrowUp:      "up",
	ebiten.KeyArrowDown:    "down",
	ebiten.KeySpace:        "space",
	ebiten.KeyEnter:        "enter",
	ebiten.KeyEscape:       "escape",
	ebiten.KeyBackspace:    "backspace",
	ebiten.KeyTab:          "tab",
	ebiten.KeyShiftLeft:    "shift",
	ebiten.KeyShiftRight:   "shift",
	ebiten.KeyControlLeft:  "control",
	ebiten.KeyControlRight: "control",
	ebiten.KeyAltLeft:      "alt",
	ebiten.KeyAltRight:     "alt",
	ebiten.KeyMetaLeft:     "meta",
	ebiten.KeyMetaRight:    "meta",
	ebiten.KeyDelete:       "delete",
	ebiten.KeyMinus:        "-",
	ebiten.KeyEqual:        "=",
	ebiten.KeyComma:        ",",
	ebiten.KeyPeriod:       ".",
	ebiten.KeySlash:        "/",
	ebiten.KeySemicolon:    ";",
	ebiten.KeyQuote:        "'",
	ebiten.KeyBracketLeft:  "[",
	ebiten.KeyBracketRight: "]",
	ebiten.KeyBackslash:    "\\",
	ebiten.KeyBackquote:    "`",
}

// keyName maps an ebiten key to the lower case name used by listeners:
// letters and digits as themselves, arrows as "left", "up" and so on.
func keyName(k ebiten.Key) string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	n := k.String()
	if d, ok := strings.CutPrefix(n, "Digit"); ok {
		return d
	}
	return strings.ToLower(n)
}
