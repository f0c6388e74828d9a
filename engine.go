package kaboom

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ObjectEvent is an object event forwarded to an EventStore. Update and
// draw events are not forwarded.
type ObjectEvent struct {
	Type     Event
	Scene    string
	ObjectID ObjectID
	// OtherID is the partner object for grounded, headbump and other events
	// triggered with an object argument; 0 otherwise.
	OtherID ObjectID
	Tags    []string
	Pos     Vec2
}

// EventStore receives object events as they happen, e.g. to mirror them
// into an ECS world.
type EventStore interface {
	EmitEvent(event ObjectEvent)
}

// SceneInit builds a scene. args are the values passed to Go.
type SceneInit func(s *Scene, args ...any)

type sceneDef struct {
	init        SceneInit
	initialized bool
}

type sceneSwitch struct {
	name string
	args []any
}

// Engine runs the frame loop: it polls input and assets, steps the current
// scene and renders it. All engine state is owned by the goroutine calling
// Step and Frame.
type Engine struct {
	conf Config
	log  *Logger

	assets  *Assets
	gfx     *Renderer
	screen  *ebitenBackend
	input   *Input
	audio   audioOut
	rng     *RNG
	seed    int64
	tags    *tagTable
	store   EventStore
	script  *InputScript
	shots   []string
	scenes  map[string]*sceneDef
	cur     *Scene
	next    *sceneSwitch
	loaded  bool
	paused  bool
	step    bool
	showLog bool
	quit    bool

	dt   float64
	time float64

	stats       FrameStats
	statsLogged float64
}

// New creates an engine. Zero fields of conf take their defaults.
func New(conf Config) *Engine {
	conf = conf.withDefaults()
	e := &Engine{
		conf:    conf,
		tags:    newTagTable(),
		scenes:  make(map[string]*sceneDef),
		showLog: conf.Debug.ShowLog,
	}
	// The overlay ages by wall clock so entries still expire while paused.
	born := time.Now()
	e.log = newLogger(os.Stderr, conf.Logging, func() float64 { return time.Since(born).Seconds() })

	e.seed = conf.Game.Seed
	if e.seed == 0 {
		e.seed = timeSeed()
	}
	e.rng = NewRNG(e.seed)

	e.assets = newAssets(conf.Assets.Root, e.log)
	if conf.Assets.Watch {
		if err := e.assets.Watch(); err != nil {
			e.log.Warn("watch assets", "err", err)
		}
	}

	e.screen = newEbitenBackend(e.log)
	e.gfx = NewRenderer(e.screen, float64(conf.Window.Width), float64(conf.Window.Height))
	e.gfx.SetClearColor(conf.Window.ClearColor)
	e.input = newInput(&ebitenInput{})
	e.audio.volume = 1
	return e
}

// SetBackend replaces the ebiten renderer backend, e.g. with a recorder.
func (e *Engine) SetBackend(b Backend) {
	e.gfx.backend = b
	if eb, ok := b.(*ebitenBackend); ok {
		e.screen = eb
	} else {
		e.screen = nil
	}
}

// SetInput replaces the device input source.
func (e *Engine) SetInput(src InputSource) { e.input.src = src }

// SetEventStore forwards object events to store. nil stops forwarding.
func (e *Engine) SetEventStore(store EventStore) { e.store = store }

// SetLogOutput redirects console logging.
func (e *Engine) SetLogOutput(w io.Writer) { e.log.console.SetOutput(w) }

func (e *Engine) Config() Config { return e.conf }
func (e *Engine) Log() *Logger { return e.log }
func (e *Engine) Assets() *Assets { return e.assets }
func (e *Engine) Gfx() *Renderer { return e.gfx }
func (e *Engine) Input() *Input { return e.input }
func (e *Engine) Current() *Scene { return e.cur }
func (e *Engine) Dt() float64 { return e.dt }
func (e *Engine) Time() float64 { return e.time }
func (e *Engine) Width() float64 { return e.gfx.Width() }
func (e *Engine) Height() float64 { return e.gfx.Height() }
func (e *Engine) RNG() *RNG { return e.rng }
func (e *Engine) Paused() bool { return e.paused }
func (e *Engine) Loaded() bool { return e.loaded }
func (e *Engine) DrawCalls() int { return e.stats.DrawCalls }
func (e *Engine) Stats() FrameStats { return e.stats }
func (e *Engine) Quit() { e.quit = true }

// FPS returns the measured frames per second.
func (e *Engine) FPS() float64 { return ebiten.ActualFPS() }

// --- scenes ---

// Scene registers init under name. Registering a name again replaces it
// and resets it to uninitialized.
func (e *Engine) Scene(name string, init SceneInit) {
	e.scenes[name] = &sceneDef{init: init}
}

// Go switches to the named scene at the start of the next frame. The scene
// is always built fresh: init runs with args on a new object population.
func (e *Engine) Go(name string, args ...any) {
	if _, ok := e.scenes[name]; !ok {
		e.log.Error(fmt.Sprintf("go %s", name), "err", ErrSceneNotFound)
		return
	}
	e.next = &sceneSwitch{name: name, args: args}
}

// Reload drops the named scene's live state, returning it to
// uninitialized. If it is the current scene, its objects, timers and
// listeners are discarded and the scene stays empty until the next Go.
func (e *Engine) Reload(name string) {
	def, ok := e.scenes[name]
	if !ok {
		e.log.Error(fmt.Sprintf("reload %s", name), "err", ErrSceneNotFound)
		return
	}
	if !def.initialized {
		return
	}
	def.initialized = false
	if e.cur != nil && e.cur.name == name {
		e.cur = newScene(e, name)
	}
	e.log.Debug("reload scene", "name", name)
}

// Start enters the named scene. When no loader is pending the scene is
// built immediately; otherwise the switch waits for the first frame after
// every loader finishes, so init can use the loaded assets.
func (e *Engine) Start(name string, args ...any) {
	e.Go(name, args...)
	if e.assets.LoadDone() {
		e.switchScene()
	}
}

func (e *Engine) switchScene() {
	if e.next == nil {
		return
	}
	sw := e.next
	e.next = nil
	def := e.scenes[sw.name]
	if def == nil {
		return
	}
	s := newScene(e, sw.name)
	def.initialized = true
	e.cur = s
	def.init(s, sw.args...)
	e.log.Debug("enter scene", "name", sw.name)
}

// --- frame loop ---

// Step advances the game by dt seconds. Input listeners run every frame;
// timers and update hooks are skipped while paused unless StepFrame was
// called. Nothing runs, and no pending scene switch happens, until every
// asset loader is done.
func (e *Engine) Step(dt float64) {
	start := time.Now()
	e.assets.Poll()
	if e.script != nil {
		e.script.step(e)
	}
	e.input.update()
	e.dt = 0

	if !e.assets.LoadDone() {
		return
	}
	if !e.loaded {
		e.loaded = true
		e.log.Debug("assets loaded")
	}
	e.switchScene()
	e.debugKeys()
	if e.cur == nil {
		return
	}
	e.cur.dispatchInput()
	if e.paused && !e.step {
		return
	}
	e.step = false
	e.dt = dt
	e.time += dt
	e.cur.update(dt)
	e.stats.UpdateTime = time.Since(start)
}

// render draws the current frame through the renderer.
func (e *Engine) render() {
	start := time.Now()
	e.gfx.FrameStart()
	if !e.loaded {
		e.drawLoading(e.assets.LoadProgress())
	} else if e.cur != nil {
		e.cur.draw()
		e.drawDebug()
	}
	if e.showLog {
		e.drawLog()
	}
	e.gfx.FrameEnd()
	e.stats.DrawCalls = e.gfx.DrawCalls()
	e.stats.Objects = e.ObjCount()
	e.stats.DrawTime = time.Since(start)
	e.logStats()
}

// Frame runs one Step and renders the result.
func (e *Engine) Frame(dt float64) {
	e.Step(dt)
	e.render()
}

// Pause freezes update hooks and timers; rendering and input listeners
// keep running.
func (e *Engine) Pause() { e.paused = true }

// Resume undoes Pause.
func (e *Engine) Resume() { e.paused = false }

// StepFrame runs exactly one update on the next Step while paused.
func (e *Engine) StepFrame() { e.step = true }

// ObjCount returns the number of live objects in the current scene.
func (e *Engine) ObjCount() int {
	if e.cur == nil {
		return 0
	}
	return e.cur.Len()
}

// --- events ---

// emit forwards an object event to the store.
func (e *Engine) emit(ev Event, o *GameObject, args []any) {
	if e.store == nil || ev == EventUpdate || ev == EventDraw {
		return
	}
	oe := ObjectEvent{
		Type:     ev,
		ObjectID: o.id,
		Tags:     o.Tags(),
		Pos:      o.Pos,
	}
	if o.scene != nil {
		oe.Scene = o.scene.name
	}
	if len(args) > 0 {
		if other, ok := args[0].(*GameObject); ok {
			oe.OtherID = other.id
		}
	}
	e.store.EmitEvent(oe)
}

// --- randomness ---

func (e *Engine) Rand() float64 { return e.rng.Gen() }
func (e *Engine) RandN(b float64) float64 { return e.rng.GenN(b) }
func (e *Engine) RandRange(a, b float64) float64 { return e.rng.GenRange(a, b) }
func (e *Engine) RandVec2(a, b Vec2) Vec2 { return e.rng.GenVec2(a, b) }
func (e *Engine) RandColor(a, b Color) Color { return e.rng.GenColor(a, b) }
func (e *Engine) Chance(p float64) bool { return e.rng.Chance(p) }

// RandSeed reseeds the engine RNG.
func (e *Engine) RandSeed(seed int64) {
	e.seed = seed
	e.rng.Seed(seed)
}

// --- audio ---

// Play starts the named sound. It returns nil when the sound is missing.
func (e *Engine) Play(name string, conf ...PlayConf) *Sound {
	snd := e.assets.Sound(name)
	if snd == nil {
		return nil
	}
	var c PlayConf
	if len(conf) > 0 {
		c = conf[0]
	}
	return e.audio.play(snd, c, e.log)
}

// Volume sets the master volume when given one and returns the current
// value.
func (e *Engine) Volume(v ...float64) float64 {
	if len(v) > 0 {
		e.audio.volume = Clamp(v[0], 0, 1)
	}
	return e.audio.volume
}
