// Package viewer wires the window, GPU resources and frame renderer together
// and runs the main loop.
package viewer

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/house-viewer/internal/assets"
	"github.com/Faultbox/house-viewer/internal/config"
	"github.com/Faultbox/house-viewer/internal/engine/camera"
	"github.com/Faultbox/house-viewer/internal/engine/debug"
	"github.com/Faultbox/house-viewer/internal/engine/gpu"
	"github.com/Faultbox/house-viewer/internal/engine/input"
	"github.com/Faultbox/house-viewer/internal/engine/mesh"
	"github.com/Faultbox/house-viewer/internal/engine/model"
	"github.com/Faultbox/house-viewer/internal/engine/renderer"
	"github.com/Faultbox/house-viewer/internal/engine/shader"
	"github.com/Faultbox/house-viewer/internal/engine/texture"
	"github.com/Faultbox/house-viewer/internal/engine/window"
	"github.com/Faultbox/house-viewer/internal/logger"
	"github.com/Faultbox/house-viewer/pkg/math"
)

// State is the viewer lifecycle stage.
type State int

// Lifecycle stages. Transitions only move forward.
const (
	StateInitialized State = iota
	StateRendering
	StateShutdown
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRendering:
		return "rendering"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Surface is the window side of the loop.
type Surface interface {
	PollEvents(st *input.State)
	SwapBuffers()
	DrawableSize() (int, int)
	SetTitle(title string)
	Close()
}

// Assets supplies shader sources and texture files.
type Assets interface {
	fs.FS
	shader.SourceProvider
	Close()
}

// Viewer is the running application.
type Viewer struct {
	config *config.Config
	state  State

	surface Surface
	dev     gpu.Device
	files   Assets
	input   *input.State

	camera   *camera.Camera
	program  *shader.Program
	buffers  *mesh.Buffers
	textures *texture.Set
	renderer *renderer.FrameRenderer

	screenshots *debug.ScreenshotCapture

	frames     int
	fpsFrames  int
	fpsStarted time.Time
}

// New opens the window, creates the GL device and loads every resource.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("Initializing viewer",
		zap.String("title", cfg.Graphics.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	win, err := window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The device needs the context the window just made current.
	dev, err := gpu.NewGL()
	if err != nil {
		win.Close()
		return nil, err
	}

	files, err := assets.NewDefault(cfg.Assets.Root)
	if err != nil {
		win.Close()
		return nil, err
	}

	// On failure newViewer has already closed files.
	v, err := newViewer(cfg, win, dev, files)
	if err != nil {
		win.Close()
		return nil, err
	}
	return v, nil
}

// newViewer performs setup on an existing surface and device. Shader problems
// are logged and tolerated; a texture failure releases what was created and
// is returned.
func newViewer(cfg *config.Config, surface Surface, dev gpu.Device, files Assets) (*Viewer, error) {
	v := &Viewer{
		config:      cfg,
		state:       StateInitialized,
		surface:     surface,
		dev:         dev,
		files:       files,
		input:       input.New(),
		screenshots: debug.NewScreenshotCapture(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
	}

	dev.EnableDepthTest()
	dev.EnableBlending()

	width, height := surface.DrawableSize()
	dev.Viewport(0, 0, int32(width), int32(height))

	v.program = shader.Load(dev, files)

	specs := texture.DefaultSpecs(cfg.Assets.WallsTexture, cfg.Assets.WoodTexture, cfg.Assets.StoneTexture)
	textures, err := texture.LoadSet(dev, files, specs)
	if err != nil {
		v.release()
		return nil, err
	}
	v.textures = textures

	house := model.House()
	v.buffers = mesh.Upload(dev, house)
	v.camera = camera.New(width, height, math.Vec3{})

	rc := renderer.DefaultConfig()
	rc.RotationSpeed = cfg.Controls.RotationSpeed
	rc.ScrollStep = cfg.Controls.ScrollStep
	rc.InitialBrightness = cfg.Controls.InitialBrightness
	rc.MinBrightness = config.MinBrightness
	rc.MaxBrightness = config.MaxBrightness
	v.renderer = renderer.New(rc, dev, v.camera, v.program, v.buffers, v.textures, house.Ranges)

	logger.Info("Viewer initialized",
		zap.Int("vertices", house.VertexCount()),
		zap.Int("indices", house.IndexCount()),
		zap.Int("draw_ranges", len(house.Ranges)),
	)
	return v, nil
}

// State returns the lifecycle stage.
func (v *Viewer) State() State {
	return v.state
}

// Frames returns the number of frames presented.
func (v *Viewer) Frames() int {
	return v.frames
}

// Renderer exposes the frame renderer.
func (v *Viewer) Renderer() *renderer.FrameRenderer {
	return v.renderer
}

// Run loops until Escape, a window close or ctx cancellation. A quit request
// ends the loop after the frame it arrived in has been presented.
func (v *Viewer) Run(ctx context.Context) error {
	if v.state != StateInitialized {
		return fmt.Errorf("viewer: cannot run in state %s", v.state)
	}
	v.state = StateRendering
	v.fpsStarted = time.Now()

	logger.Info("Starting render loop")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Render loop cancelled", zap.Error(ctx.Err()))
			return nil
		default:
		}

		if !v.frame() {
			logger.Info("Quit requested", zap.Int("frames", v.frames))
			return nil
		}
	}
}

// frame runs one update tick and one render tick. It reports whether the
// loop should continue.
func (v *Viewer) frame() bool {
	v.input.BeginTick()
	v.surface.PollEvents(v.input)

	if w, h, ok := v.input.Resized(); ok {
		v.renderer.Resize(w, h)
	}

	v.renderer.Update(v.input)
	v.renderer.Scroll(v.input.Scroll())

	v.renderer.Render()
	// The back buffer is only defined until it is presented.
	if v.input.WasPressed(input.KeyScreenshot) {
		v.screenshot()
	}
	v.surface.SwapBuffers()
	v.frames++

	v.countFPS()
	return !v.input.QuitRequested()
}

func (v *Viewer) screenshot() {
	w, h := v.camera.Size()
	pixels := v.dev.ReadPixels(int32(w), int32(h))
	path, err := v.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("Screenshot failed", zap.Error(err))
		return
	}
	logger.Info("Screenshot saved", zap.String("path", path))
}

func (v *Viewer) countFPS() {
	v.fpsFrames++
	elapsed := time.Since(v.fpsStarted)
	if elapsed < time.Second {
		return
	}

	fps := float64(v.fpsFrames) / elapsed.Seconds()
	if v.config.Logging.ShowFPS {
		logger.Info("fps", zap.Float64("fps", fps))
		v.surface.SetTitle(fmt.Sprintf("%s - %.0f FPS", v.config.Graphics.Title, fps))
	} else {
		logger.Debug("fps", zap.Float64("fps", fps))
	}
	v.fpsFrames = 0
	v.fpsStarted = time.Now()
}

// Close releases GPU resources and the window. Calls after the first are no-ops.
func (v *Viewer) Close() {
	if v.state == StateShutdown {
		return
	}
	logger.Info("Closing viewer", zap.Int("frames", v.frames))
	v.release()
	v.surface.Close()
}

func (v *Viewer) release() {
	v.state = StateShutdown
	v.buffers.Release()
	v.textures.Release()
	v.program.Delete()
	v.files.Close()
}
