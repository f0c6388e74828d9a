package kaboom

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens the window described by the engine config, enters the named
// scene and blocks until the window closes or Quit is called.
func Run(e *Engine, scene string, args ...any) error {
	w := e.conf.Window
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(int(float64(w.Width)*w.Scale), int(float64(w.Height)*w.Scale))
	ebiten.SetFullscreen(w.FullScreen)
	ebiten.SetTPS(w.TPS)

	e.Go(scene, args...)
	err := ebiten.RunGame(e)
	if cerr := e.assets.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Update implements ebiten.Game. Each tick advances the game by one fixed
// step of 1/TPS seconds.
func (e *Engine) Update() error {
	if e.quit {
		return ebiten.Termination
	}
	e.Step(1 / float64(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.screen != nil {
		e.screen.setTarget(screen)
	}
	e.render()
	e.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The logical screen is always the
// configured size; ebiten scales it to the window.
func (e *Engine) Layout(_, _ int) (int, int) {
	return e.conf.Window.Width, e.conf.Window.Height
}
