package renderer

import (
	stdmath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/house-viewer/internal/engine/camera"
	"github.com/Faultbox/house-viewer/internal/engine/gpu/gputest"
	"github.com/Faultbox/house-viewer/internal/engine/input"
	"github.com/Faultbox/house-viewer/internal/engine/mesh"
	"github.com/Faultbox/house-viewer/internal/engine/model"
	"github.com/Faultbox/house-viewer/internal/engine/shader"
	"github.com/Faultbox/house-viewer/pkg/math"
)

type sources map[string]string

func (s sources) ShaderSource(name string) string { return s[name] }

type keys map[input.Key]bool

func (k keys) IsKeyDown(key input.Key) bool { return k[key] }

// newTestRenderer wires a renderer over the recording device with 1x1
// placeholder textures.
func newTestRenderer(t *testing.T) (*FrameRenderer, *gputest.Device, *model.Model) {
	t.Helper()
	return newTestRendererWith(t, DefaultConfig())
}

func newTestRendererWith(t *testing.T, cfg Config) (*FrameRenderer, *gputest.Device, *model.Model) {
	t.Helper()
	dev := gputest.New()
	house := model.House()

	program := shader.Load(dev, sources{shader.VertexFile: "v", shader.FragmentFile: "f"})
	buffers := mesh.Upload(dev, house)
	textures := newTextureSet(t, dev)
	cam := camera.New(800, 600, math.Vec3{})

	dev.Reset()
	return New(cfg, dev, cam, program, buffers, textures, house.Ranges), dev, house
}

func approx(a, b float32) bool {
	return stdmath.Abs(float64(a-b)) < 1e-5
}

func TestInitialState(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	if got := r.Rotation(); got != (RotationState{Brightness: 1}) {
		t.Errorf("initial state = %+v", got)
	}
}

func TestModelMatrixIdentityRotation(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	if got, want := r.ModelMatrix(), math.Translate(0, 0, -3); got != want {
		t.Errorf("model = %v, want pure translation %v", got, want)
	}
}

func TestModelMatrixMatchesMathGL(t *testing.T) {
	angles := [][2]float32{{0, 0}, {30, 0}, {0, 45}, {12.5, -70}, {400, 725}}

	for _, a := range angles {
		r, _, _ := newTestRenderer(t)
		r.state.XRot, r.state.YRot = a[0], a[1]

		want := mgl32.Translate3D(0, 0, -3).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(a[1]))).
			Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(a[0])))
		got := r.ModelMatrix()
		for i := range got {
			if !approx(got[i], want[i]) {
				t.Fatalf("angles %v: model[%d] = %f, want %f", a, i, got[i], want[i])
			}
		}
	}
}

func TestModelMatrixRotatesBeforeTranslating(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	r.state.YRot = 90

	// The origin only moves by the translation.
	if p := r.ModelMatrix().TransformVec3(math.Vec3{}); !approx(p.X, 0) || !approx(p.Z, -3) {
		t.Errorf("origin -> %v, want (0,0,-3)", p)
	}
	// +X turns to -Z about the object's own axis, then recedes.
	if p := r.ModelMatrix().TransformVec3(math.V3(1, 0, 0)); !approx(p.X, 0) || !approx(p.Z, -4) {
		t.Errorf("+X -> %v, want (0,0,-4)", p)
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name  string
		keys  keys
		ticks int
		x, y  float32
	}{
		{"W", keys{input.KeyW: true}, 10, 5, 0},
		{"S", keys{input.KeyS: true}, 4, -2, 0},
		{"A", keys{input.KeyA: true}, 3, 0, 1.5},
		{"D", keys{input.KeyD: true}, 1, 0, -0.5},
		{"W and S cancel", keys{input.KeyW: true, input.KeyS: true}, 7, 0, 0},
		{"A and D cancel", keys{input.KeyA: true, input.KeyD: true}, 7, 0, 0},
		{"W and A", keys{input.KeyW: true, input.KeyA: true}, 2, 1, 1},
		{"nothing", keys{}, 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(t)
			for i := 0; i < tt.ticks; i++ {
				r.Update(tt.keys)
			}
			got := r.Rotation()
			if got.XRot != tt.x || got.YRot != tt.y {
				t.Errorf("rotation = (%v, %v), want (%v, %v)", got.XRot, got.YRot, tt.x, tt.y)
			}
		})
	}
}

func TestScrollClamps(t *testing.T) {
	r, _, _ := newTestRenderer(t)

	r.Scroll(50)
	if got := r.Rotation().Brightness; got != 3 {
		t.Errorf("after +50 brightness = %v, want 3", got)
	}
	r.Scroll(-100)
	if got := r.Rotation().Brightness; got != 0 {
		t.Errorf("after -100 brightness = %v, want 0", got)
	}
	r.Scroll(5)
	if got := r.Rotation().Brightness; !approx(got, 0.5) {
		t.Errorf("after +5 brightness = %v, want 0.5", got)
	}
}

func TestInitialBrightnessClamped(t *testing.T) {
	tests := []struct {
		initial float32
		want    float32
	}{
		{10, 3},
		{-2, 0},
		{2.5, 2.5},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.InitialBrightness = tt.initial
		r, dev, _ := newTestRendererWith(t, cfg)

		if got := r.Rotation().Brightness; got != tt.want {
			t.Errorf("initial %v: brightness = %v, want %v", tt.initial, got, tt.want)
		}
		r.Render()
		if got := dev.Uniforms[shader.UniformLightIntensity]; got != tt.want {
			t.Errorf("initial %v: lightIntensity = %v, want %v", tt.initial, got, tt.want)
		}
	}
}

func TestResizeOnlyChangesAspect(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	view := r.camera.ViewMatrix()
	pos := r.camera.Position

	r.Resize(800, 400)

	if dev.ViewportSize != [2]int32{800, 400} {
		t.Errorf("viewport = %v", dev.ViewportSize)
	}
	if r.camera.Position != pos || r.camera.ViewMatrix() != view {
		t.Error("resize moved the camera")
	}
	p := r.camera.ProjectionMatrix()
	if !approx(p[5]/p[0], 2) {
		t.Errorf("aspect term = %v, want 2", p[5]/p[0])
	}
}

func TestRenderDrawsRangesInOrder(t *testing.T) {
	r, dev, house := newTestRenderer(t)

	r.Render()

	if len(dev.Draws) != len(house.Ranges) {
		t.Fatalf("draws = %d, want %d", len(dev.Draws), len(house.Ranges))
	}
	for i, rng := range house.Ranges {
		d := dev.Draws[i]
		if d.Count != int32(rng.Count) || d.ByteOffset != rng.ByteOffset() {
			t.Errorf("%s: drew %d at %d, want %d at %d", rng.Name, d.Count, d.ByteOffset, rng.Count, rng.ByteOffset())
		}
		if d.Sampler != int32(rng.Texture) || d.Unit != rng.Texture.Unit() {
			t.Errorf("%s: texture0 = %d on unit %d, want %d", rng.Name, d.Sampler, d.Unit, rng.Texture)
		}
		if d.Texture != r.textures.Handle(rng.Texture) {
			t.Errorf("%s: bound texture %d, want %d", rng.Name, d.Texture, r.textures.Handle(rng.Texture))
		}
		if d.Program != r.program.ID() {
			t.Errorf("%s: program %d, want %d", rng.Name, d.Program, r.program.ID())
		}
	}

	wantSamplers := []int32{0, 1, 1, 1, 2}
	for i, want := range wantSamplers {
		if dev.Draws[i].Sampler != want {
			t.Errorf("draw %d texture0 = %d, want %d", i, dev.Draws[i].Sampler, want)
		}
	}

	if got := dev.Calls[len(dev.Calls)-1]; got != "BindVertexArray 0" {
		t.Errorf("last call = %q, want unbind", got)
	}
	if got := len(dev.CallsWithPrefix("BindVertexArray")); got != 2 {
		t.Errorf("vertex array binds = %d, want bind once and unbind once", got)
	}
}

func TestRenderUniforms(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	r.Scroll(5)
	r.Render()

	if dev.Calls[0] != "ClearColor" || dev.Calls[1] != "Clear" {
		t.Errorf("first calls = %v", dev.Calls[:2])
	}
	if dev.ClearRGBA != [4]float32{0.3, 0.3, 1, 1} {
		t.Errorf("clear colour = %v", dev.ClearRGBA)
	}
	if got := dev.Uniforms[shader.UniformModel]; got != [16]float32(math.Translate(0, 0, -3)) {
		t.Errorf("model = %v", got)
	}
	if got := dev.Uniforms[shader.UniformView]; got != [16]float32(r.camera.ViewMatrix()) {
		t.Errorf("view = %v", got)
	}
	if got := dev.Uniforms[shader.UniformProjection]; got != [16]float32(r.camera.ProjectionMatrix()) {
		t.Errorf("projection = %v", got)
	}
	if got := dev.Uniforms[shader.UniformLightPos]; got != [3]float32{2, 2, 1} {
		t.Errorf("lightPos = %v, want camera (0,0,1) + (2,2,0)", got)
	}
	if got, ok := dev.Uniforms[shader.UniformLightIntensity].(float32); !ok || !approx(got, 1.5) {
		t.Errorf("lightIntensity = %v, want 1.5", dev.Uniforms[shader.UniformLightIntensity])
	}
}

func TestRenderToleratesMissingUniforms(t *testing.T) {
	r, dev, house := newTestRenderer(t)
	dev.KnownUniforms = []string{shader.UniformModel}

	r.Render()

	if len(dev.Draws) != len(house.Ranges) {
		t.Fatalf("draws = %d, want %d", len(dev.Draws), len(house.Ranges))
	}
	if _, ok := dev.Uniforms[shader.UniformLightPos]; ok {
		t.Error("unresolved uniform was set")
	}
}
