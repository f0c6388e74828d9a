package kaboom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"strconv"
)

// AtlasEntry places one sprite inside an atlas image. The region at (X, Y)
// of size Width×Height is sliced into SliceX×SliceY frames.
type AtlasEntry struct {
	X, Y, Width, Height int
	SliceX, SliceY      int
	Anims               map[string]Anim
}

type jsonAtlasEntry struct {
	X      int                        `json:"x"`
	Y      int                        `json:"y"`
	Width  int                        `json:"width"`
	Height int                        `json:"height"`
	SliceX int                        `json:"sliceX"`
	SliceY int                        `json:"sliceY"`
	Anims  map[string]json.RawMessage `json:"anims"`
}

type jsonAnim struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	Speed float64 `json:"speed"`
}

// ParseAtlas decodes atlas JSON: an object mapping sprite names to
// {x, y, width, height, sliceX, sliceY, anims}. An anim is either a frame
// range {from, to, speed} or a single frame number.
func ParseAtlas(data []byte) (map[string]AtlasEntry, error) {
	var raw map[string]jsonAtlasEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse atlas: %w", err)
	}
	out := make(map[string]AtlasEntry, len(raw))
	for name, e := range raw {
		if e.Width <= 0 || e.Height <= 0 {
			return nil, fmt.Errorf("parse atlas: %s: empty region", name)
		}
		ent := AtlasEntry{
			X: e.X, Y: e.Y, Width: e.Width, Height: e.Height,
			SliceX: e.SliceX, SliceY: e.SliceY,
			Anims: make(map[string]Anim, len(e.Anims)),
		}
		for an, rm := range e.Anims {
			a, err := parseAtlasAnim(rm)
			if err != nil {
				return nil, fmt.Errorf("parse atlas: %s.%s: %w", name, an, err)
			}
			ent.Anims[an] = a
		}
		out[name] = ent
	}
	return out, nil
}

func parseAtlasAnim(raw json.RawMessage) (Anim, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] != '{' {
		n, err := strconv.Atoi(string(raw))
		if err != nil {
			return Anim{}, err
		}
		return Anim{From: n, To: n}, nil
	}
	var a jsonAnim
	if err := json.Unmarshal(raw, &a); err != nil {
		return Anim{}, err
	}
	return Anim{From: a.From, To: a.To, Speed: a.Speed}, nil
}

// newAtlasSprites slices every entry out of a shared texture.
func newAtlasSprites(tex *Texture, entries map[string]AtlasEntry) map[string]*SpriteData {
	tw, th := float64(tex.width), float64(tex.height)
	out := make(map[string]*SpriteData, len(entries))
	for name, e := range entries {
		region := Quad{float64(e.X) / tw, float64(e.Y) / th, float64(e.Width) / tw, float64(e.Height) / th}
		spr := newSpriteData(tex, SpriteConf{SliceX: e.SliceX, SliceY: e.SliceY, Anims: e.Anims})
		for i, f := range spr.Frames {
			spr.Frames[i] = region.Scale(f)
		}
		out[name] = spr
	}
	return out
}

// LoadSpriteAtlas decodes the image src and registers one sprite per
// entry of the atlas JSON file at dataSrc. All sprites share one texture.
func (a *Assets) LoadSpriteAtlas(src, dataSrc string) *Loader {
	return loadAsync(a, "atlas", src,
		func() (map[string]*SpriteData, error) {
			data, err := fsReadFile(a, dataSrc)
			if err != nil {
				return nil, err
			}
			entries, err := ParseAtlas(data)
			if err != nil {
				return nil, err
			}
			img, err := a.decodeImage(src)
			if err != nil {
				return nil, err
			}
			return newAtlasSprites(NewTexture(img), entries), nil
		},
		func(sprites map[string]*SpriteData) {
			for name, spr := range sprites {
				a.sprites[name] = spr
			}
		},
	)
}

// AddSpriteAtlas registers the entries of an already decoded atlas image.
func (a *Assets) AddSpriteAtlas(img image.Image, entries map[string]AtlasEntry) {
	for name, spr := range newAtlasSprites(NewTexture(img), entries) {
		a.sprites[name] = spr
	}
}
