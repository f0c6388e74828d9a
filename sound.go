package kaboom

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

// SoundData is decoded 16-bit stereo PCM at sampleRate.
type SoundData struct {
	PCM []byte
}

// LoadSound decodes a wav, mp3 or ogg file and registers it as name.
func (a *Assets) LoadSound(name, src string) *Loader {
	return loadAsync(a, "sound", name,
		func() (*SoundData, error) { return a.decodeSound(src) },
		func(s *SoundData) { a.sounds[name] = s },
	)
}

func (a *Assets) decodeSound(src string) (*SoundData, error) {
	data, err := fsReadFile(a, src)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(data)

	var stream io.Reader
	switch strings.ToLower(path.Ext(src)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("decode %s: unsupported audio format", src)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return &SoundData{PCM: pcm}, nil
}

func fsReadFile(a *Assets, name string) ([]byte, error) {
	f, err := a.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// PlayConf controls playback.
type PlayConf struct {
	// Volume in [0, 1]; 0 plays at the master volume.
	Volume float64
	Loop   bool
}

// Sound is a playing sound.
type Sound struct {
	player *audio.Player
}

func (s *Sound) Stop() {
	if s == nil || s.player == nil {
		return
	}
	s.player.Pause()
	_ = s.player.Close()
}

func (s *Sound) Pause() {
	if s != nil && s.player != nil {
		s.player.Pause()
	}
}

func (s *Sound) Resume() {
	if s != nil && s.player != nil {
		s.player.Play()
	}
}

func (s *Sound) IsPlaying() bool {
	return s != nil && s.player != nil && s.player.IsPlaying()
}

// audioOut owns the process-wide audio context, created on first playback.
type audioOut struct {
	ctx    *audio.Context
	volume float64
}

func (o *audioOut) context() *audio.Context {
	if o.ctx == nil {
		if ctx := audio.CurrentContext(); ctx != nil {
			o.ctx = ctx
		} else {
			o.ctx = audio.NewContext(sampleRate)
		}
	}
	return o.ctx
}

// play starts snd. It returns nil when the player cannot be created.
func (o *audioOut) play(snd *SoundData, conf PlayConf, log *Logger) *Sound {
	ctx := o.context()
	var (
		p   *audio.Player
		err error
	)
	if conf.Loop {
		loop := audio.NewInfiniteLoop(bytes.NewReader(snd.PCM), int64(len(snd.PCM)))
		p, err = ctx.NewPlayer(loop)
	} else {
		p = ctx.NewPlayerFromBytes(snd.PCM)
	}
	if err != nil {
		log.Error("play sound", "err", err)
		return nil
	}
	vol := o.volume
	if conf.Volume > 0 {
		vol *= conf.Volume
	}
	p.SetVolume(vol)
	p.Play()
	return &Sound{player: p}
}
