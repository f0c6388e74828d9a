package kaboom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
)

type asepriteRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type asepriteFrame struct {
	Frame asepriteRect `json:"frame"`
}

type asepriteTag struct {
	Name string `json:"name"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

type asepriteMeta struct {
	FrameTags []asepriteTag `json:"frameTags"`
}

// LoadAseprite registers a sprite exported by Aseprite: imgSrc is the sheet
// and jsonSrc the exported data, in either the array or the hash layout.
// Frame tags become animations.
func (a *Assets) LoadAseprite(name, imgSrc, jsonSrc string) *Loader {
	return loadAsync(a, "aseprite", name,
		func() (*SpriteData, error) { return a.decodeAseprite(imgSrc, jsonSrc) },
		func(s *SpriteData) { a.sprites[name] = s },
	)
}

func (a *Assets) decodeAseprite(imgSrc, jsonSrc string) (*SpriteData, error) {
	img, err := a.decodeImage(imgSrc)
	if err != nil {
		return nil, err
	}
	data, err := fsReadFile(a, jsonSrc)
	if err != nil {
		return nil, err
	}
	return parseAseprite(img, data)
}

func parseAseprite(img image.Image, data []byte) (*SpriteData, error) {
	// Probe the top-level keys, then decode frames by layout.
	var probe struct {
		Frames json.RawMessage `json:"frames"`
		Meta   asepriteMeta    `json:"meta"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse aseprite json: %w", err)
	}
	if len(probe.Frames) == 0 {
		return nil, fmt.Errorf("parse aseprite json: no \"frames\" key")
	}

	var frames []asepriteFrame
	var err error
	if probe.Frames[0] == '[' {
		err = json.Unmarshal(probe.Frames, &frames)
	} else {
		frames, err = parseAsepriteHash(probe.Frames)
	}
	if err != nil {
		return nil, fmt.Errorf("parse aseprite frames: %w", err)
	}

	tex := NewTexture(img)
	tw, th := float64(tex.width), float64(tex.height)
	spr := &SpriteData{
		Tex:    tex,
		Frames: make([]Quad, 0, len(frames)),
		Anims:  make(map[string]Anim, len(probe.Meta.FrameTags)),
	}
	for _, f := range frames {
		r := f.Frame
		spr.Frames = append(spr.Frames, Quad{
			float64(r.X) / tw,
			float64(r.Y) / th,
			float64(r.W) / tw,
			float64(r.H) / th,
		})
	}
	for _, tag := range probe.Meta.FrameTags {
		spr.Anims[tag.Name] = Anim{From: tag.From, To: tag.To}
	}
	return spr, nil
}

// parseAsepriteHash decodes {"name": {frame...}, ...} keeping file order,
// which is the frame order.
func parseAsepriteHash(raw json.RawMessage) ([]asepriteFrame, error) {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, err
	}
	keys, err := objectKeys(raw)
	if err != nil {
		return nil, err
	}
	frames := make([]asepriteFrame, 0, len(keys))
	for _, k := range keys {
		var f asepriteFrame
		if err := json.Unmarshal(keyed[k], &f); err != nil {
			return nil, fmt.Errorf("frame %q: %w", k, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// objectKeys returns the top-level keys of a JSON object in file order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
