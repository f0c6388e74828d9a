package kaboom

// TimerID identifies a scheduled callback within a scene.
type TimerID uint64

type timer struct {
	id       TimerID
	left     float64
	interval float64 // > 0 for loops
	fn       func()
	ch       chan struct{}
	fresh    bool // created during the current update
	dead     bool
}

// Wait calls fn once after sec seconds of unpaused game time.
func (s *Scene) Wait(sec float64, fn func()) TimerID {
	return s.addTimer(&timer{left: sec, fn: fn})
}

// After returns a channel that is closed on the frame sec seconds from now
// elapse. A cancelled or abandoned timer never closes its channel.
func (s *Scene) After(sec float64) <-chan struct{} {
	ch := make(chan struct{})
	s.addTimer(&timer{left: sec, ch: ch})
	return ch
}

// Loop calls fn now and then every sec seconds until the timer is
// cancelled.
func (s *Scene) Loop(sec float64, fn func()) TimerID {
	id := s.addTimer(&timer{left: sec, interval: sec, fn: fn})
	fn()
	return id
}

// CancelTimer stops a pending Wait, After or Loop. Unknown IDs are ignored.
func (s *Scene) CancelTimer(id TimerID) {
	if t, ok := s.timerByID[id]; ok {
		t.dead = true
		delete(s.timerByID, id)
	}
}

// PendingTimers returns the number of live timers.
func (s *Scene) PendingTimers() int { return len(s.timerByID) }

func (s *Scene) addTimer(t *timer) TimerID {
	s.lastTimerID++
	t.id = s.lastTimerID
	t.fresh = s.updating
	s.timers = append(s.timers, t)
	s.timerByID[t.id] = t
	return t.id
}

// updateTimers advances timers in creation order. Timers created during
// the current frame wait until the next one.
func (s *Scene) updateTimers(dt float64) {
	n := len(s.timers)
	for i := 0; i < n; i++ {
		t := s.timers[i]
		if t.dead || t.fresh {
			continue
		}
		t.left -= dt
		if t.left > 0 {
			continue
		}
		if t.interval > 0 {
			t.left += t.interval
			if t.left <= 0 {
				t.left = t.interval
			}
		} else {
			t.dead = true
			delete(s.timerByID, t.id)
		}
		if t.ch != nil {
			close(t.ch)
		}
		if t.fn != nil {
			t.fn()
		}
	}

	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	clear(s.timers[len(live):])
	s.timers = live
}
