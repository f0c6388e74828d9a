package kaboom

import "unicode/utf8"

// LevelConf maps level symbols to objects. Width and Height are the size of
// one grid cell in pixels.
type LevelConf struct {
	Width, Height float64
	// Pos is the world position of cell (0, 0).
	Pos Vec2
	// Symbols builds the components for each symbol.
	Symbols map[rune]func() Comps
	// Any builds components for symbols missing from Symbols. A nil result
	// leaves the cell empty.
	Any func(sym rune) Comps
}

// Level is a grid of objects spawned from rows of symbols.
type Level struct {
	scene   *Scene
	conf    LevelConf
	objs    []*GameObject
	longRow int
	rows    int
}

// AddLevel spawns one object per recognized symbol of rows. Unrecognized
// symbols and spaces are skipped unless conf.Any handles them.
func (s *Scene) AddLevel(rows []string, conf LevelConf) *Level {
	l := &Level{scene: s, conf: conf, rows: len(rows)}
	for y, row := range rows {
		l.longRow = max(l.longRow, utf8.RuneCountInString(row))
		x := 0
		for _, sym := range row {
			l.Spawn(sym, Vec2{float64(x), float64(y)})
			x++
		}
	}
	return l
}

// GetPos converts a grid position to a world position.
func (l *Level) GetPos(p Vec2) Vec2 {
	return Vec2{
		l.conf.Pos.X + p.X*l.conf.Width,
		l.conf.Pos.Y + p.Y*l.conf.Height,
	}
}

// Spawn adds the object for sym at grid position p. It returns nil when
// sym maps to nothing.
func (l *Level) Spawn(sym rune, p Vec2) *GameObject {
	var comps Comps
	if fn, ok := l.conf.Symbols[sym]; ok && fn != nil {
		comps = fn()
	} else if l.conf.Any != nil {
		comps = l.conf.Any(sym)
	}
	if comps == nil {
		return nil
	}
	world := l.GetPos(p)
	obj := l.scene.Add(comps, Pos(world.X, world.Y), &GridPos{Pos: p, level: l})
	l.objs = append(l.objs, obj)
	return obj
}

// Objects returns the live objects spawned by the level.
func (l *Level) Objects() []*GameObject {
	out := make([]*GameObject, 0, len(l.objs))
	for _, o := range l.objs {
		if o.Exists() {
			out = append(out, o)
		}
	}
	return out
}

// Width returns the width of the longest row in pixels.
func (l *Level) Width() float64 { return float64(l.longRow) * l.conf.Width }

// Height returns the height of all rows in pixels.
func (l *Level) Height() float64 { return float64(l.rows) * l.conf.Height }

// Destroy destroys every object the level spawned.
func (l *Level) Destroy() {
	for _, o := range l.objs {
		l.scene.Destroy(o)
	}
	l.objs = nil
}

// GridPos keeps an object snapped to its level's grid.
type GridPos struct {
	Pos   Vec2
	level *Level
	obj   *GameObject
}

func (g *GridPos) Attach(o *GameObject) {
	o.grid = g
	g.obj = o
}

func (*GridPos) builtin() {}

// Set moves the object to grid position p.
func (g *GridPos) Set(p Vec2) {
	g.Pos = p
	if g.level != nil && g.obj != nil {
		g.obj.Pos = g.level.GetPos(p)
	}
}

func (g *GridPos) MoveLeft() { g.Set(g.Pos.Add(Vec2{-1, 0})) }
func (g *GridPos) MoveRight() { g.Set(g.Pos.Add(Vec2{1, 0})) }
func (g *GridPos) MoveUp() { g.Set(g.Pos.Add(Vec2{0, -1})) }
func (g *GridPos) MoveDown() { g.Set(g.Pos.Add(Vec2{0, 1})) }
