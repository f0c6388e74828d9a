package kaboom

import "slices"

// ScriptedInput is an InputSource driven by code, for scripted play,
// replays and tests. Hold, Release, MoveMouse, PressMouse and ReleaseMouse
// change the state immediately; Tap and Click queue steps that are applied
// one per frame.
type ScriptedInput struct {
	keys      []string
	chars     []rune
	mousePos  Vec2
	mouseDown bool

	queue []func()
}

// NewScriptedInput returns a source with nothing held.
func NewScriptedInput() *ScriptedInput { return &ScriptedInput{} }

// Hold presses key until Release.
func (s *ScriptedInput) Hold(key string) {
	if !slices.Contains(s.keys, key) {
		s.keys = append(s.keys, key)
	}
}

// Release lets go of key.
func (s *ScriptedInput) Release(key string) {
	s.keys = slices.DeleteFunc(s.keys, func(k string) bool { return k == key })
}

// Tap queues a press of key on the next frame and its release on the
// frame after. Consumes two frames.
func (s *ScriptedInput) Tap(key string) {
	s.queue = append(s.queue,
		func() { s.Hold(key) },
		func() { s.Release(key) },
	)
}

// Type delivers str as typed characters on the next frame.
func (s *ScriptedInput) Type(str string) {
	s.chars = append(s.chars, []rune(str)...)
}

// MoveMouse places the cursor at screen position p.
func (s *ScriptedInput) MoveMouse(p Vec2) { s.mousePos = p }

// PressMouse holds the left button.
func (s *ScriptedInput) PressMouse() { s.mouseDown = true }

// ReleaseMouse lets go of the left button.
func (s *ScriptedInput) ReleaseMouse() { s.mouseDown = false }

// Click queues a press at p on the next frame and a release on the frame
// after. Consumes two frames.
func (s *ScriptedInput) Click(p Vec2) {
	s.queue = append(s.queue,
		func() {
			s.MoveMouse(p)
			s.PressMouse()
		},
		s.ReleaseMouse,
	)
}

// Drag queues a press at from, frames-2 interpolated moves and a release
// at to. Consumes frames frames, at least 2.
func (s *ScriptedInput) Drag(from, to Vec2, frames int) {
	frames = max(frames, 2)
	s.queue = append(s.queue, func() {
		s.MoveMouse(from)
		s.PressMouse()
	})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		p := from.Lerp(to, float64(i)/float64(steps+1))
		s.queue = append(s.queue, func() { s.MoveMouse(p) })
	}
	s.queue = append(s.queue, func() {
		s.MoveMouse(to)
		s.ReleaseMouse()
	})
}

// Pending returns the number of queued steps.
func (s *ScriptedInput) Pending() int { return len(s.queue) }

// Poll applies one queued step and reports the resulting state.
func (s *ScriptedInput) Poll(f *InputFrame) {
	if len(s.queue) > 0 {
		step := s.queue[0]
		s.queue = s.queue[1:]
		step()
	}
	f.Keys = append(f.Keys, s.keys...)
	f.Chars = append(f.Chars, s.chars...)
	s.chars = s.chars[:0]
	f.MousePos = s.mousePos
	f.MouseDown = s.mouseDown
}
