package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/chartkit/cmd/chartkit/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration "chartkit render" would use, with defaults
filled in, as chartkit.yaml.

Flags:
  --dir DIR    Directory holding chartkit.yaml (default: .)`,
		Usage: "chartkit config [--dir DIR]",
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	dir := "."
	for i := 0; i < len(args); i++ {
		v, next, ok, err := flagValue(args, i, "--dir")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unknown flag %q", args[i])
		}
		dir, i = v, next
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(effective(cfg))
}

// effective turns resolved values back into the file layout.
func effective(r *config.Resolved) config.Config {
	opaque := r.Opaque
	quality := r.Quality
	return config.Config{
		Clock: config.ClockConfig{
			FPS:      r.FPS,
			Overload: r.Overload.String(),
		},
		Display: config.DisplayConfig{
			Toolkit:  r.Toolkit.String(),
			Scale:    r.Scale,
			Headless: r.Headless,
		},
		Chart: config.ChartConfig{
			Width:    r.Width,
			Height:   r.Height,
			Duration: r.Duration.String(),
			Easing:   r.EasingName,
			Opaque:   &opaque,
		},
		Output: config.OutputConfig{
			Format:  r.Format,
			Quality: &quality,
			Path:    r.OutputPath,
		},
	}
}
