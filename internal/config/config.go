// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width       int     `yaml:"width" toml:"width"`
	Height      int     `yaml:"height" toml:"height"`
	Fullscreen  bool    `yaml:"fullscreen" toml:"fullscreen"`
	VSync       bool    `yaml:"vsync" toml:"vsync"`
	Multisample int     `yaml:"multisample" toml:"multisample"`
	FOV         float32 `yaml:"fov" toml:"fov"`
	Near        float32 `yaml:"near" toml:"near"`
	Far         float32 `yaml:"far" toml:"far"`
}

// CameraConfig holds fly camera settings.
type CameraConfig struct {
	MoveSpeed  float32 `yaml:"move_speed" toml:"move_speed"`
	TurnSpeed  float32 `yaml:"turn_speed" toml:"turn_speed"`
	TickRate   int     `yaml:"tick_rate" toml:"tick_rate"`     // updates per second
	PitchLimit float32 `yaml:"pitch_limit" toml:"pitch_limit"` // degrees, 0 = unlimited
}

// SceneConfig holds asset locations.
type SceneConfig struct {
	AssetDir       string `yaml:"asset_dir" toml:"asset_dir"`
	Layout         string `yaml:"layout" toml:"layout"` // empty uses the built-in castle
	MaxTextureSize int    `yaml:"max_texture_size" toml:"max_texture_size"`
	ScreenshotDir  string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1024,
			Height:      1024,
			Fullscreen:  false,
			VSync:       true,
			Multisample: 4,
			FOV:         45,
			Near:        0.1,
			Far:         100,
		},
		Camera: CameraConfig{
			MoveSpeed:  0.1,
			TurnSpeed:  0.05,
			TickRate:   60,
			PitchLimit: 0,
		},
		Scene: SceneConfig{
			AssetDir:       "assets",
			MaxTextureSize: 2048,
			ScreenshotDir:  "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", g.Width, g.Height))
	}
	if g.Multisample < 0 {
		errs = append(errs, fmt.Errorf("graphics: multisample %d is negative", g.Multisample))
	}
	if g.FOV <= 0 || g.FOV >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov %v outside (0, 180)", g.FOV))
	}
	if g.Near <= 0 || g.Far <= g.Near {
		errs = append(errs, fmt.Errorf("graphics: need 0 < near < far, got %v and %v", g.Near, g.Far))
	}
	if c.Camera.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("camera: tick_rate %d must be positive", c.Camera.TickRate))
	}
	if c.Camera.MoveSpeed < 0 || c.Camera.TurnSpeed < 0 || c.Camera.PitchLimit < 0 {
		errs = append(errs, errors.New("camera: speeds and pitch_limit must not be negative"))
	}
	return errors.Join(errs...)
}
