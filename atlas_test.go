package kaboom

import "testing"

const atlasJSON = `{
	"hero": {
		"x": 0, "y": 0, "width": 32, "height": 16,
		"sliceX": 2,
		"anims": {
			"walk": {"from": 0, "to": 1, "speed": 12},
			"stand": 0
		}
	},
	"gem": {"x": 32, "y": 32, "width": 32, "height": 32}
}`

func TestParseAtlas(t *testing.T) {
	entries, err := ParseAtlas([]byte(atlasJSON))
	if err != nil {
		t.Fatal(err)
	}
	hero, ok := entries["hero"]
	if !ok {
		t.Fatal("hero missing")
	}
	if hero.Width != 32 || hero.SliceX != 2 {
		t.Errorf("hero = %+v", hero)
	}
	if w := hero.Anims["walk"]; w != (Anim{From: 0, To: 1, Speed: 12}) {
		t.Errorf("walk = %+v", w)
	}
	if s := hero.Anims["stand"]; s != (Anim{}) {
		t.Errorf("stand = %+v, want frame 0", s)
	}
	if len(entries["gem"].Anims) != 0 {
		t.Errorf("gem anims = %v", entries["gem"].Anims)
	}
}

func TestParseAtlasErrors(t *testing.T) {
	tests := map[string]string{
		"bad json":     `[`,
		"empty region": `{"a": {"x": 0, "y": 0, "width": 0, "height": 8}}`,
		"bad anim":     `{"a": {"width": 8, "height": 8, "anims": {"x": "run"}}}`,
	}
	for name, data := range tests {
		if _, err := ParseAtlas([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestNewAtlasSprites(t *testing.T) {
	entries, err := ParseAtlas([]byte(atlasJSON))
	if err != nil {
		t.Fatal(err)
	}
	tex := NewTexture(imageOf(64, 64))
	sprites := newAtlasSprites(tex, entries)

	hero := sprites["hero"]
	want := []Quad{{0, 0, 0.25, 0.25}, {0.25, 0, 0.25, 0.25}}
	if len(hero.Frames) != len(want) {
		t.Fatalf("hero frames = %d, want 2", len(hero.Frames))
	}
	for i := range want {
		if hero.Frames[i] != want[i] {
			t.Errorf("hero frame %d = %v, want %v", i, hero.Frames[i], want[i])
		}
	}
	if gem := sprites["gem"]; gem.Frames[0] != (Quad{0.5, 0.5, 0.5, 0.5}) {
		t.Errorf("gem frame = %v", gem.Frames[0])
	}
	if sprites["gem"].Tex != tex || hero.Tex != tex {
		t.Error("sprites should share the atlas texture")
	}
}

func TestAddSpriteAtlas(t *testing.T) {
	e, _, _ := newTestEngine(t)
	entries, err := ParseAtlas([]byte(atlasJSON))
	if err != nil {
		t.Fatal(err)
	}
	e.Assets().AddSpriteAtlas(imageOf(64, 64), entries)
	if e.Assets().Sprite("hero") == nil || e.Assets().Sprite("gem") == nil {
		t.Error("atlas sprites not registered")
	}
}
