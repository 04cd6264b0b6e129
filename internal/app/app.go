// Package app runs the viewer: window, input, fixed-rate camera updates and
// rendering of the castle scene.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/castle/internal/config"
	"github.com/Faultbox/castle/internal/engine/camera"
	"github.com/Faultbox/castle/internal/engine/input"
	"github.com/Faultbox/castle/internal/engine/renderer"
	"github.com/Faultbox/castle/internal/engine/screenshot"
	"github.com/Faultbox/castle/internal/engine/transform"
	"github.com/Faultbox/castle/internal/engine/window"
	"github.com/Faultbox/castle/internal/logger"
	"github.com/Faultbox/castle/internal/scene"
)

// Title is the window title.
const Title = "Castle"

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	control  *input.Controller
	scene    *scene.Scene
	shots    *screenshot.Capture
	ticker   *Ticker
	log      *zap.Logger
}

// New creates the window, GL state and scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	g := cfg.Graphics

	a.log.Info("initializing viewer",
		zap.Int("width", g.Width),
		zap.Int("height", g.Height),
		zap.Int("tick_rate", cfg.Camera.TickRate),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:       Title,
		Width:       g.Width,
		Height:      g.Height,
		Fullscreen:  g.Fullscreen,
		VSync:       g.VSync,
		Multisample: g.Multisample,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window created.
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:       width,
		Height:      height,
		ClearColor:  renderer.DefaultClearColor,
		Multisample: g.Multisample > 0,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	cam := camera.NewFlyCamera()
	cam.MoveSpeed = cfg.Camera.MoveSpeed
	cam.TurnSpeed = cfg.Camera.TurnSpeed
	cam.PitchLimit = cfg.Camera.PitchLimit

	a.scene = scene.New(scene.Config{
		AssetDir:       cfg.Scene.AssetDir,
		LayoutPath:     cfg.Scene.Layout,
		MaxTextureSize: cfg.Scene.MaxTextureSize,
		Projection: transform.Projection{
			FOV:    g.FOV,
			Aspect: float32(width) / float32(height),
			Near:   g.Near,
			Far:    g.Far,
		},
	}, cam)
	if err := a.scene.Init(a.renderer); err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}

	a.input = input.New()
	a.control = input.NewController(cam)
	a.shots = screenshot.New(cfg.Scene.ScreenshotDir, "castle")
	a.ticker = NewTicker(cfg.Camera.TickRate)

	a.log.Info("viewer initialized")
	return a, nil
}

// Run drives the loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	last := time.Now()
	frames, ticks := 0, 0
	fpsTimer := last

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		elapsed := now.Sub(last)
		last = now

		a.input.Update()
		a.handle(a.control.HandleAll(a.input.Events()))
		if !a.running {
			break
		}

		for n := a.ticker.Advance(elapsed); n > 0; n-- {
			a.scene.Update(a.control.Intent)
			ticks++
		}

		a.scene.Draw()
		a.window.SwapBuffers()

		frames++
		if since := time.Since(fpsTimer); since >= time.Second {
			a.log.Debug("frame stats",
				zap.Int("fps", frames),
				zap.Int("ticks", ticks),
				zap.Int("draw_calls", a.renderer.DrawCalls()),
			)
			frames, ticks = 0, 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handle(req input.Request) {
	if req.Has(input.RequestQuit) {
		a.running = false
		return
	}
	if req.Has(input.RequestResize) {
		// Resize events carry screen coordinates; the viewport needs pixels.
		sw, sh := a.window.GetSize()
		w, h := a.window.DrawableSize()
		a.log.Info("window resized",
			zap.Int("width", sw),
			zap.Int("height", sh),
			zap.Int("pixel_width", w),
			zap.Int("pixel_height", h),
		)
		a.renderer.Resize(w, h)
		a.scene.Resize(w, h)
	}
	if req.Has(input.RequestHideCursor) {
		a.window.ShowCursor(false)
	}
	if req.Has(input.RequestShowCursor) {
		a.window.ShowCursor(true)
	}
	if req.Has(input.RequestScreenshot) {
		a.screenshot()
	}
}

func (a *App) screenshot() {
	// The back buffer is undefined after a swap, so draw the frame again.
	a.scene.Draw()
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.FromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, GL state and window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.scene != nil {
		a.scene.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
