package kaboom

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"maps"
	"os"
	"path"
	"slices"

	"github.com/fzipp/bmfont"
	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultFont is the name the built-in 7×13 font is registered under.
const DefaultFont = "default"

const resultQueueSize = 64

// Loader tracks one outstanding load. Scene start waits until every loader
// declared so far is done.
type Loader struct {
	done bool
}

// Done marks the load finished.
func (l *Loader) Done() { l.done = true }

// IsDone reports whether the load finished.
func (l *Loader) IsDone() bool { return l.done }

// Anim is a named frame range of a sprite, inclusive on both ends.
type Anim struct {
	From, To int
	// Speed is in frames per second; 0 uses the sprite's AnimSpeed.
	Speed float64
}

// SpriteConf slices a sprite sheet into a grid of frames.
type SpriteConf struct {
	SliceX, SliceY int
	Anims          map[string]Anim
}

// SpriteData is a loaded sprite: its texture, frame quads and animations.
type SpriteData struct {
	Tex    *Texture
	Frames []Quad
	Anims  map[string]Anim
}

func newSpriteData(tex *Texture, conf SpriteConf) *SpriteData {
	sx, sy := max(conf.SliceX, 1), max(conf.SliceY, 1)
	frames := make([]Quad, 0, sx*sy)
	qw, qh := 1/float64(sx), 1/float64(sy)
	for y := 0; y < sy; y++ {
		for x := 0; x < sx; x++ {
			frames = append(frames, Quad{float64(x) * qw, float64(y) * qh, qw, qh})
		}
	}
	anims := conf.Anims
	if anims == nil {
		anims = make(map[string]Anim)
	}
	return &SpriteData{Tex: tex, Frames: frames, Anims: anims}
}

// Shader is a Kage shader registered by name. It is compiled by the
// backend on first use.
type Shader struct {
	name     string
	src      []byte
	compiled *ebiten.Shader
	failed   bool
}

// Assets maps names to loaded resources. Decoding runs on goroutines; the
// results are applied to the maps by Poll, which the engine calls once per
// frame, so the maps are only touched by the frame loop.
type Assets struct {
	root string
	fsys fs.FS
	log  *Logger

	loaders []*Loader

	sprites map[string]*SpriteData
	sounds  map[string]*SoundData
	fonts   map[string]*FontData
	shaders map[string]*Shader

	results      chan func()
	watch        *assetWatcher
	pendingWatch map[string]watchedSprite
}

func newAssets(root string, log *Logger) *Assets {
	a := &Assets{
		root:    root,
		fsys:    os.DirFS(root),
		log:     log,
		sprites: make(map[string]*SpriteData),
		sounds:  make(map[string]*SoundData),
		fonts:   make(map[string]*FontData),
		shaders: make(map[string]*Shader),
		results: make(chan func(), resultQueueSize),
	}
	a.fonts[DefaultFont] = newDefaultFont()
	return a
}

// SetFS replaces the file system sources are read from.
func (a *Assets) SetFS(fsys fs.FS) { a.fsys = fsys }

// NewLoader declares an outstanding load.
func (a *Assets) NewLoader() *Loader {
	l := &Loader{}
	a.loaders = append(a.loaders, l)
	return l
}

// LoadProgress returns the fraction of declared loaders that are done, 1
// when none were declared.
func (a *Assets) LoadProgress() float64 {
	if len(a.loaders) == 0 {
		return 1
	}
	done := 0
	for _, l := range a.loaders {
		if l.done {
			done++
		}
	}
	return float64(done) / float64(len(a.loaders))
}

// LoadDone reports whether every loader is done.
func (a *Assets) LoadDone() bool { return a.LoadProgress() == 1 }

// Poll applies finished loads and pending hot reloads without blocking.
func (a *Assets) Poll() {
	for {
		select {
		case apply := <-a.results:
			apply()
		default:
			a.pollWatch()
			return
		}
	}
}

// spawn runs work off the frame loop and queues the closure it returns.
func (a *Assets) spawn(work func() func()) {
	go func() { a.results <- work() }()
}

// loadAsync runs decode on a goroutine and applies the result in Poll. The
// loader is marked done whether or not decode succeeded.
func loadAsync[T any](a *Assets, kind, name string, decode func() (T, error), store func(T)) *Loader {
	l := a.NewLoader()
	a.spawn(func() func() {
		v, err := decode()
		return func() {
			defer l.Done()
			if err != nil {
				a.log.Error(fmt.Sprintf("load %s", kind), "name", name, "err", fmt.Errorf("%w: %w", ErrDecode, err))
				return
			}
			store(v)
		}
	})
	return l
}

func (a *Assets) decodeImage(src string) (image.Image, error) {
	f, err := a.fsys.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}

// LoadSprite decodes src and registers it as name.
func (a *Assets) LoadSprite(name, src string, conf SpriteConf) *Loader {
	a.watchSprite(name, src, conf)
	return loadAsync(a, "sprite", name,
		func() (image.Image, error) { return a.decodeImage(src) },
		func(img image.Image) { a.sprites[name] = newSpriteData(NewTexture(img), conf) },
	)
}

// AddSprite registers an already decoded image.
func (a *Assets) AddSprite(name string, img image.Image, conf SpriteConf) *SpriteData {
	spr := newSpriteData(NewTexture(img), conf)
	a.sprites[name] = spr
	return spr
}

// LoadFont registers a grid font: src is sliced into gw×gh cells mapped to
// chars in row-major order.
func (a *Assets) LoadFont(name, src string, gw, gh int, chars string) *Loader {
	return loadAsync(a, "font", name,
		func() (image.Image, error) { return a.decodeImage(src) },
		func(img image.Image) { a.fonts[name] = newGridFont(NewTexture(img), gw, gh, chars) },
	)
}

// LoadBMFont registers an AngelCode bitmap font. src is relative to the
// asset root; page images are resolved next to it.
func (a *Assets) LoadBMFont(name, src string) *Loader {
	return loadAsync(a, "font", name,
		func() (*FontData, error) { return a.decodeBMFont(src) },
		func(f *FontData) { a.fonts[name] = f },
	)
}

func (a *Assets) decodeBMFont(src string) (*FontData, error) {
	r, err := a.fsys.Open(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	dir := path.Dir(src)
	bf, err := bmfont.Read(r, func(name string) (io.ReadCloser, error) {
		return a.fsys.Open(path.Join(dir, name))
	})
	if err != nil {
		return nil, fmt.Errorf("bmfont %s: %w", src, err)
	}
	desc := bf.Descriptor

	f := &FontData{
		Glyphs:     make(map[rune]Glyph),
		LineHeight: float64(desc.Common.LineHeight),
	}
	ids := slices.Sorted(maps.Keys(bf.PageSheets))
	pageIndex := make(map[int]int, len(ids))
	for _, id := range ids {
		pageIndex[id] = len(f.Pages)
		f.Pages = append(f.Pages, NewTexture(bf.PageSheets[id]))
	}

	for _, ch := range desc.Chars {
		idx, ok := pageIndex[int(ch.Page)]
		if !ok {
			continue
		}
		tex := f.Pages[idx]
		tw, th := float64(tex.width), float64(tex.height)
		f.Glyphs[rune(ch.ID)] = Glyph{
			Quad: Quad{
				float64(ch.X) / tw,
				float64(ch.Y) / th,
				float64(ch.Width) / tw,
				float64(ch.Height) / th,
			},
			Page:    idx,
			Width:   float64(ch.Width),
			Height:  float64(ch.Height),
			XOffset: float64(ch.XOffset),
			YOffset: float64(ch.YOffset),
			Advance: float64(ch.XAdvance),
		}
	}
	return f, nil
}

// LoadShader registers Kage source as name.
func (a *Assets) LoadShader(name, src string) {
	a.shaders[name] = &Shader{name: name, src: []byte(src)}
}

// Sprite looks up a sprite, logging when it is missing.
func (a *Assets) Sprite(name string) *SpriteData {
	return lookup(a, a.sprites, "sprite", name)
}

// Font looks up a font, logging when it is missing. An empty name returns
// the default font.
func (a *Assets) Font(name string) *FontData {
	if name == "" {
		name = DefaultFont
	}
	return lookup(a, a.fonts, "font", name)
}

// Shader looks up a shader, logging when it is missing.
func (a *Assets) Shader(name string) *Shader {
	return lookup(a, a.shaders, "shader", name)
}

// Sound looks up a sound, logging when it is missing.
func (a *Assets) Sound(name string) *SoundData {
	return lookup(a, a.sounds, "sound", name)
}

func lookup[T any](a *Assets, m map[string]*T, kind, name string) *T {
	v, ok := m[name]
	if !ok {
		a.log.Error(fmt.Sprintf("%s not found", kind), "name", name, "err", ErrAssetNotFound)
		return nil
	}
	return v
}
