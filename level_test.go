package kaboom

import "testing"

func testLevelConf() LevelConf {
	return LevelConf{
		Width:  10,
		Height: 20,
		Pos:    V2(100, 0),
		Symbols: map[rune]func() Comps{
			'=': func() Comps { return Comps{Solid(), "ground"} },
			'$': func() Comps { return Comps{"coin"} },
		},
	}
}

func TestLevelSpawnsPositions(t *testing.T) {
	var lvl *Level
	_, s, _ := startScene(t, func(s *Scene) {
		lvl = s.AddLevel([]string{
			"  $ ",
			"====",
		}, testLevelConf())
	})
	coins := s.Get("coin")
	if len(coins) != 1 {
		t.Fatalf("coins = %d, want 1", len(coins))
	}
	if coins[0].Pos != V2(120, 0) {
		t.Errorf("coin pos = %v, want (120, 0)", coins[0].Pos)
	}
	ground := s.Get("ground")
	if len(ground) != 4 {
		t.Fatalf("ground = %d, want 4", len(ground))
	}
	for i, g := range ground {
		want := V2(100+float64(i)*10, 20)
		if g.Pos != want || !g.IsSolid() {
			t.Errorf("ground %d at %v solid=%v, want %v", i, g.Pos, g.IsSolid(), want)
		}
	}
	if lvl.Width() != 40 || lvl.Height() != 40 {
		t.Errorf("size = %v x %v, want 40 x 40", lvl.Width(), lvl.Height())
	}
	if len(lvl.Objects()) != 5 {
		t.Errorf("objects = %d, want 5", len(lvl.Objects()))
	}
}

func TestLevelAnyHandlesUnknownSymbols(t *testing.T) {
	conf := testLevelConf()
	var seen []rune
	conf.Any = func(sym rune) Comps {
		if sym == ' ' {
			return nil
		}
		seen = append(seen, sym)
		return Comps{"any"}
	}
	_, s, _ := startScene(t, func(s *Scene) {
		s.AddLevel([]string{"a $b"}, conf)
	})
	if string(seen) != "ab" {
		t.Errorf("any saw %q, want \"ab\"", string(seen))
	}
	if n := len(s.Get("any")); n != 2 {
		t.Errorf("any objects = %d, want 2", n)
	}
}

func TestLevelGridPos(t *testing.T) {
	var lvl *Level
	startScene(t, func(s *Scene) {
		lvl = s.AddLevel([]string{"$"}, testLevelConf())
	})
	coin := lvl.Objects()[0]
	g := coin.GridPos()
	if g == nil {
		t.Fatal("no grid pos")
	}
	g.MoveRight()
	g.MoveDown()
	if g.Pos != V2(1, 1) {
		t.Errorf("grid = %v, want (1, 1)", g.Pos)
	}
	if coin.Pos != V2(110, 20) {
		t.Errorf("pos = %v, want (110, 20)", coin.Pos)
	}
	g.MoveLeft()
	g.MoveUp()
	if coin.Pos != V2(100, 0) {
		t.Errorf("pos = %v, want (100, 0)", coin.Pos)
	}
	if got := lvl.GetPos(V2(2, 3)); got != V2(120, 60) {
		t.Errorf("GetPos = %v", got)
	}
}

func TestLevelObjectsAndDestroy(t *testing.T) {
	var lvl *Level
	_, s, _ := startScene(t, func(s *Scene) {
		lvl = s.AddLevel([]string{"$$$"}, testLevelConf())
	})
	lvl.Objects()[1].Destroy()
	if n := len(lvl.Objects()); n != 2 {
		t.Errorf("objects = %d after destroy, want 2", n)
	}
	if o := lvl.Spawn('$', V2(5, 0)); o == nil || o.Pos != V2(150, 0) {
		t.Errorf("spawn = %v", o)
	}
	if o := lvl.Spawn('?', V2(0, 0)); o != nil {
		t.Error("unknown symbol should spawn nothing")
	}
	lvl.Destroy()
	if s.Len() != 0 {
		t.Errorf("scene len = %d after level destroy, want 0", s.Len())
	}
}
