// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Assets      AssetsConfig      `yaml:"assets"`
	Controls    ControlsConfig    `yaml:"controls"`
	Logging     LoggingConfig     `yaml:"logging"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// AssetsConfig locates shaders and textures. Paths are relative to Root, or
// to the builtin assets when Root is empty or lacks the file.
type AssetsConfig struct {
	Root         string `yaml:"root"`
	WallsTexture string `yaml:"walls_texture"`
	WoodTexture  string `yaml:"wood_texture"`
	StoneTexture string `yaml:"stone_texture"`
}

// Light intensity range the scroll wheel moves within.
const (
	MinBrightness = 0
	MaxBrightness = 3
)

// ControlsConfig holds input tuning.
type ControlsConfig struct {
	RotationSpeed     float32 `yaml:"rotation_speed"` // degrees per tick
	ScrollStep        float32 `yaml:"scroll_step"`
	InitialBrightness float32 `yaml:"initial_brightness"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	ShowFPS bool   `yaml:"show_fps"`
}

// ScreenshotsConfig holds F12 capture settings.
type ScreenshotsConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:  "House",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Assets: AssetsConfig{
			WallsTexture: "textures/i.png",
			WoodTexture:  "textures/wood.png",
			StoneTexture: "textures/rock.png",
		},
		Controls: ControlsConfig{
			RotationSpeed:     0.5,
			ScrollStep:        0.1,
			InitialBrightness: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Screenshots: ScreenshotsConfig{
			Dir:    "screenshots",
			Prefix: "house",
		},
	}
}
