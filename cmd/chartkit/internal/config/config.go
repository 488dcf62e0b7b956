// Package config loads the optional chartkit.yaml file and resolves defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/chartkit/pkg/animation"
	chartkiterrors "github.com/go-drift/chartkit/pkg/errors"
	"github.com/go-drift/chartkit/pkg/platform"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "chartkit.yaml"

// Config represents the optional chartkit.yaml configuration.
type Config struct {
	Clock   ClockConfig   `yaml:"clock"`
	Display DisplayConfig `yaml:"display"`
	Chart   ChartConfig   `yaml:"chart"`
	Output  OutputConfig  `yaml:"output"`
}

// ClockConfig contains animation clock settings.
type ClockConfig struct {
	FPS      float64 `yaml:"fps,omitempty"`
	Overload string  `yaml:"overload,omitempty"`
}

// DisplayConfig describes the simulated display.
type DisplayConfig struct {
	Toolkit  string  `yaml:"toolkit,omitempty"`
	Scale    float64 `yaml:"scale,omitempty"`
	Headless bool    `yaml:"headless,omitempty"`
}

// ChartConfig contains the demo chart's geometry and animation.
type ChartConfig struct {
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Duration string  `yaml:"duration,omitempty"`
	Easing   string  `yaml:"easing,omitempty"`
	Opaque   *bool   `yaml:"opaque,omitempty"`
}

// OutputConfig controls image export.
type OutputConfig struct {
	Format  string   `yaml:"format,omitempty"`
	Quality *float64 `yaml:"quality,omitempty"`
	Path    string   `yaml:"path,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	FPS        float64
	Overload   animation.OverloadPolicy
	Toolkit    platform.Toolkit
	Scale      float64
	Headless   bool
	Width      float64
	Height     float64
	Duration   time.Duration
	EasingName string
	Easing     animation.Easing
	Opaque     bool
	Format     string
	Quality    float64
	OutputPath string
}

// LoadOptional reads chartkit.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, configError(fmt.Errorf("failed to read %s: %w", FileName, err))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, configError(fmt.Errorf("failed to parse %s: %w", FileName, err))
	}

	return &cfg, nil
}

// Resolve loads chartkit.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve()
}

// Resolve fills in defaults and validates the configuration.
func (c *Config) Resolve() (*Resolved, error) {
	r := &Resolved{
		FPS:      c.Clock.FPS,
		Scale:    c.Display.Scale,
		Headless: c.Display.Headless,
		Width:    c.Chart.Width,
		Height:   c.Chart.Height,
		Opaque:   true,
		Quality:  -1,
	}

	if r.FPS == 0 {
		r.FPS = animation.DefaultFramesPerSecond
	}
	if r.FPS < 0 {
		return nil, configError(fmt.Errorf("clock.fps must be positive (got %v)", r.FPS))
	}

	overload, err := animation.ParseOverloadPolicy(strings.TrimSpace(c.Clock.Overload))
	if err != nil {
		return nil, configError(fmt.Errorf("clock.overload: %w", err))
	}
	r.Overload = overload

	toolkit, err := platform.ParseToolkit(strings.ToLower(strings.TrimSpace(c.Display.Toolkit)))
	if err != nil {
		return nil, configError(fmt.Errorf("display.toolkit: %w", err))
	}
	r.Toolkit = toolkit

	if r.Scale <= 0 {
		r.Scale = 1
	}
	if r.Width == 0 {
		r.Width = 320
	}
	if r.Height == 0 {
		r.Height = 200
	}

	r.Duration = 600 * time.Millisecond
	if d := strings.TrimSpace(c.Chart.Duration); d != "" {
		r.Duration, err = time.ParseDuration(d)
		if err != nil {
			return nil, configError(fmt.Errorf("chart.duration: %w", err))
		}
		if r.Duration < 0 {
			return nil, configError(fmt.Errorf("chart.duration must not be negative (got %s)", d))
		}
	}

	r.EasingName = strings.TrimSpace(c.Chart.Easing)
	if r.EasingName == "" {
		r.EasingName = "ease_out_cubic"
	}
	easing, ok := animation.EasingByName(r.EasingName)
	if !ok {
		return nil, configError(fmt.Errorf("chart.easing: unknown easing %q", r.EasingName))
	}
	r.Easing = easing

	if c.Chart.Opaque != nil {
		r.Opaque = *c.Chart.Opaque
	}

	r.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch r.Format {
	case "":
		r.Format = "png"
	case "jpg":
		r.Format = "jpeg"
	case "png", "jpeg":
	default:
		return nil, configError(fmt.Errorf("output.format must be png or jpeg (got %q)", c.Output.Format))
	}

	if c.Output.Quality != nil {
		r.Quality = *c.Output.Quality
	}

	r.OutputPath = strings.TrimSpace(c.Output.Path)
	if r.OutputPath == "" {
		r.OutputPath = "chart." + r.Format
	}

	return r, nil
}

func configError(err error) error {
	return chartkiterrors.New("config.Resolve", chartkiterrors.KindConfig, err)
}
