// Command xaos opens a window and zooms into the Mandelbrot set.
//
// Hold the left button to zoom in, the right button to zoom out, and the
// middle button (or both) to pan. M toggles the render mode, R resets the
// view and Escape quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/go-xaos"
	"github.com/joshvictor1024/go-xaos/pkg/fractal"
	"github.com/joshvictor1024/go-xaos/pkg/frame"
	"github.com/joshvictor1024/go-xaos/pkg/input"
	"github.com/joshvictor1024/go-xaos/pkg/render"
	"github.com/joshvictor1024/go-xaos/pkg/zoom"
)

func init() {
	// SDL event and render calls must stay on the thread that did INIT_VIDEO.
	runtime.LockOSThread()
}

type config struct {
	width, height int
	mode          render.Mode
	maxIter       int
	fps           int
	workers       int
	logLevel      slog.Level
}

func parseFlags() config {
	cfg := config{mode: render.Approximation}
	flag.IntVar(&cfg.width, "width", 800, "window width")
	flag.IntVar(&cfg.height, "height", 600, "window height")
	flag.TextVar(&cfg.mode, "mode", render.Approximation, "render mode while zooming: approximation or high-fidelity")
	flag.IntVar(&cfg.maxIter, "maxiter", 512, "maximum iterations per pixel")
	flag.IntVar(&cfg.fps, "fps", 60, "frame rate")
	flag.IntVar(&cfg.workers, "workers", runtime.GOMAXPROCS(0), "render goroutines")
	flag.TextVar(&cfg.logLevel, "log-level", slog.LevelInfo, "log level")
	flag.Parse()
	return cfg
}

func sdlInit(windowTitle string, width, height int) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	window, err := sdl.CreateWindow(
		windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, nil, err
	}

	return window, renderer, nil
}

func sdlClose(window *sdl.Window, renderer *sdl.Renderer) {
	renderer.Destroy()
	window.Destroy()
	sdl.Quit()
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintln(os.Stderr, "xaos:", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	xaos.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel})))
	log := xaos.Logger()

	fc := fractal.NewMandelbrot()
	fc.MaxIter = cfg.maxIter
	if err := fc.Validate(); err != nil {
		return err
	}

	window, renderer, err := sdlInit("xaos", cfg.width, cfg.height)
	if err != nil {
		return fmt.Errorf("init sdl: %w", err)
	}
	defer sdlClose(window, renderer)

	surface := newSDLSurface(window, renderer)
	var dispatcher input.Dispatcher
	var loop frame.Loop

	ctrl, err := zoom.New(surface, &dispatcher, &loop, fc,
		zoom.WithRenderMode(cfg.mode),
		zoom.WithEngineOptions(render.WithWorkers(cfg.workers)),
	)
	if err != nil {
		return err
	}
	defer ctrl.Dispose()

	h := &host{
		window:     window,
		ctrl:       ctrl,
		dispatcher: &dispatcher,
		fingers:    newFingers(),
		maxIter:    cfg.maxIter,
	}
	ctrl.Start()
	renderer.Present()
	presented := surface.frames

	interval := time.Second / time.Duration(max(1, cfg.fps))
	for h.running = true; h.running; {
		began := time.Now()
		for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
			h.handle(e)
		}

		loop.Fire(time.Duration(sdl.GetTicks()) * time.Millisecond)
		if surface.frames != presented {
			renderer.Present()
			presented = surface.frames
		}

		if rest := interval - time.Since(began); rest > 0 {
			sdl.Delay(uint32(rest.Milliseconds()))
		}
	}

	st := ctrl.Stats()
	log.Info("exit", "ticks", st.Ticks, "renders", st.Renders, "skipped", st.Skipped, "allocations", st.Engine.Allocations)
	return nil
}
