// Package config holds the user tweakable settings of the demo.
//
// Settings are read from a TOML file and overlaid on top of Default(), so a
// config file only needs the keys it wants to change.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bloeys/shadowmapping/lights"
	"github.com/pelletier/go-toml/v2"
)

type Window struct {
	Title  string `toml:"title"`
	Width  int32  `toml:"width"`
	Height int32  `toml:"height"`
	VSync  bool   `toml:"vsync"`
	MSAA   bool   `toml:"msaa"`
}

type Light struct {
	Position      [3]float32 `toml:"position"`
	RotationSpeed float32    `toml:"rotation_speed"`
	// RotationMode is either 'per_frame' or 'cumulative'
	RotationMode  string  `toml:"rotation_mode"`
	FrustumSize   float32 `toml:"frustum_size"`
	ShadowMapSize uint32  `toml:"shadow_map_size"`
}

type Debug struct {
	ShowDepthViewer bool  `toml:"show_depth_viewer"`
	DepthViewerSize int32 `toml:"depth_viewer_size"`
	ShowUI          bool  `toml:"show_ui"`
}

// Model is an extra mesh file that gets added to the scene as a shadow caster
type Model struct {
	Path     string     `toml:"path"`
	Position [3]float32 `toml:"position"`
	Scale    float32    `toml:"scale"`
	Color    uint32     `toml:"color"`
}

type Config struct {
	Window Window  `toml:"window"`
	Light  Light   `toml:"light"`
	Debug  Debug   `toml:"debug"`
	Models []Model `toml:"models"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "Shadow Mapping",
			Width:  1280,
			Height: 720,
			VSync:  true,
			MSAA:   true,
		},
		Light: Light{
			Position:      [3]float32{-60, 50, 40},
			RotationSpeed: 0.2,
			RotationMode:  lights.RotationPerFrame.String(),
			FrustumSize:   200,
			ShadowMapSize: 2048,
		},
		Debug: Debug{
			ShowDepthViewer: true,
			DepthViewerSize: 300,
			ShowUI:          true,
		},
	}
}

// Load reads the config file at path on top of the defaults.
// An empty path or a missing file returns the defaults.
func Load(path string) (Config, error) {

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {

		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	return Parse(data, cfg)
}

// Parse decodes TOML data on top of base and validates the result
func Parse(data []byte, base Config) (Config, error) {

	cfg := base

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	for i := 0; i < len(cfg.Models); i++ {
		if cfg.Models[i].Scale == 0 {
			cfg.Models[i].Scale = 1
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Light.FrustumSize <= 0 {
		return fmt.Errorf("light.frustum_size must be positive, got %f", c.Light.FrustumSize)
	}

	if c.Light.Position == [3]float32{} {
		return errors.New("light.position can't be the origin, as the light always points at the origin")
	}

	if c.Light.ShadowMapSize == 0 {
		return errors.New("light.shadow_map_size must be positive")
	}

	if _, err := lights.ParseRotationMode(c.Light.RotationMode); err != nil {
		return err
	}

	if c.Debug.DepthViewerSize <= 0 {
		return fmt.Errorf("debug.depth_viewer_size must be positive, got %d", c.Debug.DepthViewerSize)
	}

	for i := 0; i < len(c.Models); i++ {

		m := &c.Models[i]
		if m.Path == "" {
			return fmt.Errorf("models[%d] has no path", i)
		}

		if m.Scale < 0 {
			return fmt.Errorf("models[%d] has a negative scale", i)
		}
	}

	return nil
}
