package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/chartkit/cmd/chartkit/internal/config"
	"github.com/go-drift/chartkit/cmd/chartkit/internal/demo"
	"github.com/go-drift/chartkit/pkg/animation"
	"github.com/go-drift/chartkit/pkg/errors"
	"github.com/go-drift/chartkit/pkg/graphics"
	"github.com/go-drift/chartkit/pkg/platform"
	"github.com/go-drift/chartkit/pkg/rendering"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Animate and export the demo chart",
		Long: `Animate the demo bar chart against a display clock and export the
final frame.

Each clock fire renders the chart into a fresh offscreen surface. The last
frame is encoded as PNG or JPEG.

Settings come from chartkit.yaml in the working directory (see
"chartkit config"). Flags override the file.

Flags:
  --dir DIR          Directory holding chartkit.yaml (default: .)
  --out PATH         Output file (default: chart.<format>)
  --format FORMAT    png or jpeg
  --quality Q        JPEG quality in [0, 1]
  --values LIST      Comma-separated bar values`,
		Usage: "chartkit render [--dir DIR] [--out PATH] [--format png|jpeg] [--quality Q] [--values 3,5,2]",
		Run:   runRender,
	})
}

type renderOptions struct {
	dir     string
	out     string
	format  string
	quality string
	values  []float64
}

var defaultValues = []float64{12, 19, 7, 15, 22, 9, 17}

func parseRenderOptions(args []string) (renderOptions, error) {
	opts := renderOptions{dir: ".", values: defaultValues}
	for i := 0; i < len(args); i++ {
		var (
			v   string
			ok  bool
			err error
		)
		for _, name := range []string{"--dir", "--out", "--format", "--quality", "--values"} {
			v, i, ok, err = flagValue(args, i, name)
			if err != nil {
				return opts, err
			}
			if !ok {
				continue
			}
			switch name {
			case "--dir":
				opts.dir = v
			case "--out":
				opts.out = v
			case "--format":
				opts.format = v
			case "--quality":
				opts.quality = v
			case "--values":
				opts.values, err = parseValues(v)
				if err != nil {
					return opts, err
				}
			}
			break
		}
		if !ok {
			return opts, fmt.Errorf("unknown flag %q", args[i])
		}
	}
	return opts, nil
}

func parseValues(list string) ([]float64, error) {
	var values []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", field, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("--values needs at least one number")
	}
	return values, nil
}

func runRender(args []string) error {
	opts, err := parseRenderOptions(args)
	if err != nil {
		return err
	}

	file, err := config.LoadOptional(opts.dir)
	if err != nil {
		return err
	}
	if opts.format != "" {
		file.Output.Format = opts.format
	}
	if opts.out != "" {
		file.Output.Path = opts.out
		if file.Output.Format == "" {
			file.Output.Format = strings.TrimPrefix(filepath.Ext(opts.out), ".")
		}
	}
	if opts.quality != "" {
		q, err := strconv.ParseFloat(opts.quality, 64)
		if err != nil {
			return fmt.Errorf("invalid --quality %q: %w", opts.quality, err)
		}
		file.Output.Quality = &q
	}
	cfg, err := file.Resolve()
	if err != nil {
		return err
	}

	chart := demo.NewBarChart("chartkit", opts.values)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration+5*time.Second)
	defer cancel()

	result, err := renderChart(ctx, cfg, chart)
	if err != nil {
		return err
	}

	data, err := encode(result.image, cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.OutputPath, err)
	}

	size := result.image.Size()
	w, h := result.image.PixelSize()
	fmt.Printf("Wrote %s (%gx%g pt, %dx%d px)\n", cfg.OutputPath, size.Width, size.Height, w, h)
	fmt.Printf("Clock: %s, %d frames, %d dropped\n", result.mode, result.frames, result.dropped)
	return nil
}

// renderResult summarizes one render run.
type renderResult struct {
	image   *rendering.Image
	frames  int
	dropped uint64
	mode    animation.Mode
}

// renderChart runs the chart animation to completion on a private run loop
// and returns the last offscreen frame.
func renderChart(ctx context.Context, cfg *config.Resolved, chart *demo.BarChart) (renderResult, error) {
	var result renderResult

	loop := platform.NewRunLoop()
	prevDispatch := platform.RegisterDispatch(loop.Dispatch)
	defer platform.RegisterDispatch(prevDispatch)

	display := &platform.SimulatedDisplay{PixelScale: cfg.Scale, Rate: cfg.FPS, Headless: cfg.Headless}
	prev := platform.SetMainDisplay(display)
	defer platform.SetMainDisplay(prev)

	stack := rendering.NewContextStack(cfg.Toolkit, display, nil)
	size := graphics.Size{Width: cfg.Width, Height: cfg.Height}

	draw := func(phaseX, phaseY float64) {
		stack.Push(size, cfg.Opaque, rendering.AutomaticScale)
		if stack.Depth() == 0 {
			return
		}
		defer stack.Pop()
		chart.Draw(stack.CurrentContext(), phaseX, phaseY)
		result.image = stack.CurrentImage()
		result.frames++
	}

	animator := animation.NewChartAnimator(display, loop, platform.ModeDefault,
		animation.WithFramesPerSecond(cfg.FPS),
		animation.WithOverloadPolicy(cfg.Overload),
	)
	defer animator.Close()
	result.mode = animator.Clock().Mode()

	done, finish := context.WithCancel(ctx)
	defer finish()
	animator.OnUpdate = func(a *animation.ChartAnimator) { draw(a.PhaseX(), a.PhaseY()) }
	animator.OnStop = func(*animation.ChartAnimator) { finish() }

	errors.Logger().Debug("render started",
		slog.String("mode", result.mode.String()),
		slog.String("toolkit", cfg.Toolkit.String()),
		slog.Bool("native_frame_callback", cfg.Toolkit.HasNativeFrameCallback()),
		slog.Duration("duration", cfg.Duration))

	loop.Post(platform.ModeDefault, func() {
		animator.Animate(cfg.Duration, cfg.Duration, cfg.Easing, cfg.Easing)
		if !animator.IsAnimating() {
			finish()
		}
	})
	if err := loop.Run(done, platform.ModeDefault); err != nil && ctx.Err() != nil {
		return result, errors.New("render", errors.KindPlatform, fmt.Errorf("animation did not finish: %w", err))
	}

	// The final frame is always drawn at rest.
	draw(1, 1)
	result.dropped = animator.Clock().Dropped()
	if result.image == nil {
		return result, errors.New("render", errors.KindRender, fmt.Errorf("chart size %gx%g produced no image", cfg.Width, cfg.Height))
	}
	return result, nil
}

func encode(img *rendering.Image, cfg *config.Resolved) ([]byte, error) {
	if cfg.Format == "jpeg" {
		return img.JPEG(cfg.Quality)
	}
	return img.PNG()
}
