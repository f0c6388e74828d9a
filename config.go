package kaboom

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds engine settings. Zero values are replaced with defaults by
// New, so a partially filled Config is valid.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Game    GameConfig    `toml:"game"`
	Assets  AssetsConfig  `toml:"assets"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Title      string  `toml:"title"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Scale      float64 `toml:"scale"`
	FullScreen bool    `toml:"fullscreen"`
	TPS        int     `toml:"tps"`
	ClearColor Color   `toml:"clear_color"`
}

type GameConfig struct {
	// Seed for the engine RNG. 0 seeds from the clock.
	Seed    int64   `toml:"seed"`
	Gravity float64 `toml:"gravity"`
}

type AssetsConfig struct {
	Root  string `toml:"root"`
	Watch bool   `toml:"watch"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	// Max is the number of entries kept for the on-screen log.
	Max int `toml:"max"`
	// Time is how long an on-screen entry stays visible, in seconds.
	Time float64 `toml:"time"`
}

type DebugConfig struct {
	ShowArea  bool `toml:"show_area"`
	ShowLog   bool `toml:"show_log"`
	ShowStats bool `toml:"show_stats"`

	// ScreenshotDir is where Engine.Screenshot writes PNG files.
	ScreenshotDir string `toml:"screenshot_dir"`
}

const (
	defaultWidth    = 640
	defaultHeight   = 480
	defaultTPS      = 60
	defaultGravity  = 980
	defaultLogMax   = 8
	defaultLogTime  = 4.0
	defaultLogLevel = "info"
	defaultShotDir  = "screenshots"
)

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:      "kaboom",
			Width:      defaultWidth,
			Height:     defaultHeight,
			Scale:      1,
			TPS:        defaultTPS,
			ClearColor: ColorBlack,
		},
		Game: GameConfig{
			Gravity: defaultGravity,
		},
		Assets: AssetsConfig{
			Root: ".",
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
			Max:   defaultLogMax,
			Time:  defaultLogTime,
		},
		Debug: DebugConfig{
			ShowLog:       true,
			ScreenshotDir: defaultShotDir,
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = def.Window.Scale
	}
	if c.Window.TPS <= 0 {
		c.Window.TPS = def.Window.TPS
	}
	if c.Window.ClearColor == (Color{}) {
		c.Window.ClearColor = def.Window.ClearColor
	}
	if c.Game.Gravity == 0 {
		c.Game.Gravity = def.Game.Gravity
	}
	if c.Assets.Root == "" {
		c.Assets.Root = def.Assets.Root
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Max <= 0 {
		c.Logging.Max = def.Logging.Max
	}
	if c.Logging.Time <= 0 {
		c.Logging.Time = def.Logging.Time
	}
	if c.Debug.ScreenshotDir == "" {
		c.Debug.ScreenshotDir = def.Debug.ScreenshotDir
	}
	return c
}
