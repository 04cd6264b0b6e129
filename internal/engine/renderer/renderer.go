// Package renderer draws uploaded meshes with the lit scene shader.
package renderer

import (
	"fmt"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/castle/internal/engine/lighting"
	"github.com/Faultbox/castle/internal/engine/shader"
	"github.com/Faultbox/castle/internal/engine/shader/shaders"
	"github.com/Faultbox/castle/internal/engine/transform"
	"github.com/Faultbox/castle/internal/logger"
	"github.com/Faultbox/castle/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width       int
	Height      int
	ClearColor  [3]float32
	Multisample bool
}

// DefaultClearColor is a light sky blue.
var DefaultClearColor = [3]float32{0.3, 0.8, 1.0}

// DrawCall is one object submitted for drawing.
type DrawCall struct {
	Mesh     *Mesh
	Texture  *Texture
	Matrices transform.Matrices
	Lit      bool
}

// Renderer owns the GL state and the scene shader program.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	drawCalls int
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if cfg.Multisample {
		gl.Enable(gl.MULTISAMPLE)
	}
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	var err error
	r.program, err = shader.NewProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene program: %w", err)
	}

	r.program.Use()
	r.program.SetInt("texture0", 0)
	r.SetMaterial(lighting.DefaultMaterial())

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetLights uploads the ambient and point lights.
func (r *Renderer) SetLights(rig lighting.Rig) {
	p := r.program
	p.Use()
	p.SetVec3("aLight.ambientColour", rig.Ambient.Color)
	p.SetFloat("aLight.ambientStrength", rig.Ambient.Strength)

	for i, l := range rig.Points {
		prefix := "pLights[" + strconv.Itoa(i) + "]."
		p.SetVec3(prefix+"base.diffuseColour", l.Color)
		p.SetFloat(prefix+"base.diffuseStrength", l.Strength)
		p.SetVec3(prefix+"position", l.Position)
		p.SetFloat(prefix+"constant", l.Constant)
		p.SetFloat(prefix+"linear", l.Linear)
		p.SetFloat(prefix+"exponent", l.Exponent)
	}
}

// SetMaterial uploads the specular response shared by all objects.
func (r *Renderer) SetMaterial(m lighting.Material) {
	r.program.Use()
	r.program.SetFloat("mat.specularStrength", m.SpecularStrength)
	r.program.SetFloat("mat.shininess", m.Shininess)
}

// Begin clears the frame and uploads the eye position.
func (r *Renderer) Begin(eye math.Vec3) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	r.program.SetVec3("eyePosition", eye)
	r.drawCalls = 0
}

// Draw uploads the call's three matrices separately and draws its mesh.
func (r *Renderer) Draw(dc DrawCall) {
	if dc.Mesh == nil {
		return
	}
	p := r.program
	p.SetMat4("model", dc.Matrices.Model)
	p.SetMat4("view", dc.Matrices.View)
	p.SetMat4("projection", dc.Matrices.Projection)
	lit := int32(0)
	if dc.Lit {
		lit = 1
	}
	p.SetInt("lit", lit)

	gl.ActiveTexture(gl.TEXTURE0)
	if dc.Texture != nil {
		dc.Texture.Bind()
	} else {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	dc.Mesh.Draw()
	r.drawCalls++
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// DrawCalls returns the number of draws issued since Begin.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
