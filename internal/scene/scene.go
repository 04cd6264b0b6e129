package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/castle/internal/engine/camera"
	"github.com/Faultbox/castle/internal/engine/lighting"
	"github.com/Faultbox/castle/internal/engine/mesh"
	"github.com/Faultbox/castle/internal/engine/renderer"
	"github.com/Faultbox/castle/internal/engine/texture"
	"github.com/Faultbox/castle/internal/engine/transform"
	"github.com/Faultbox/castle/internal/logger"
)

// Config holds scene configuration.
type Config struct {
	AssetDir       string
	LayoutPath     string // empty uses the embedded castle
	MaxTextureSize int
	Projection     transform.Projection
}

// Scene is the render context: it owns the camera, the projection
// pipeline, the lights and every GPU resource the layout needs.
type Scene struct {
	Camera   *camera.FlyCamera
	Pipeline *transform.Pipeline

	cfg      Config
	rig      lighting.Rig
	objects  []Object
	meshes   map[*mesh.Mesh]*renderer.Mesh
	textures map[string]*renderer.Texture
	loader   texture.Loader
	watcher  *Watcher
	r        *renderer.Renderer
	log      *zap.Logger
}

// New creates a scene viewed through cam. GPU resources are created by Init.
func New(cfg Config, cam *camera.FlyCamera) *Scene {
	return &Scene{
		Camera:   cam,
		Pipeline: transform.NewPipeline(cam, cfg.Projection),
		cfg:      cfg,
		loader:   texture.Loader{Dir: cfg.AssetDir, MaxSize: cfg.MaxTextureSize},
		log:      logger.Named("scene"),
	}
}

// Init loads the layout and uploads it. Must be called with a current GL context.
func (s *Scene) Init(r *renderer.Renderer) error {
	s.r = r

	layout := Castle()
	if s.cfg.LayoutPath != "" {
		var err error
		if layout, err = Load(s.cfg.LayoutPath); err != nil {
			return err
		}
	}
	if err := s.apply(layout); err != nil {
		return err
	}

	if s.cfg.LayoutPath != "" {
		w, err := Watch(s.cfg.LayoutPath)
		if err != nil {
			s.log.Warn("layout hot reload disabled", zap.Error(err))
		} else {
			s.watcher = w
		}
	}
	return nil
}

// apply builds and uploads a layout, replacing the current one only when
// everything succeeded.
func (s *Scene) apply(l *Layout) error {
	objects, err := l.Build()
	if err != nil {
		return fmt.Errorf("build layout: %w", err)
	}
	rig, err := l.Rig()
	if err != nil {
		return fmt.Errorf("build layout: %w", err)
	}

	meshes := make(map[*mesh.Mesh]*renderer.Mesh)
	for _, o := range objects {
		if _, ok := meshes[o.Mesh]; ok {
			continue
		}
		g, err := renderer.Upload(o.Mesh, o.Primitive)
		if err != nil {
			releaseMeshes(meshes)
			return fmt.Errorf("object %q: %w", o.Name, err)
		}
		meshes[o.Mesh] = g
	}

	textures := make(map[string]*renderer.Texture)
	for _, name := range l.Textures() {
		textures[name] = renderer.UploadTexture(s.loader.LoadOrPlaceholder(name))
	}

	s.release()
	s.objects, s.rig, s.meshes, s.textures = objects, rig, meshes, textures
	s.r.SetLights(rig)

	s.log.Info("layout loaded",
		zap.Int("objects", len(objects)),
		zap.Int("meshes", len(meshes)),
		zap.Int("textures", len(textures)),
	)
	return nil
}

// Update advances the camera by one fixed tick and applies any reloaded layout.
func (s *Scene) Update(in camera.Intent) {
	s.Camera.Tick(in)

	if s.watcher == nil {
		return
	}
	u, ok := s.watcher.Poll()
	if !ok {
		return
	}
	if u.Err != nil {
		s.log.Warn("layout reload failed, keeping current scene", zap.Error(u.Err))
		return
	}
	if err := s.apply(u.Layout); err != nil {
		s.log.Warn("layout reload failed, keeping current scene", zap.Error(err))
	}
}

// Resize updates the projection aspect ratio.
func (s *Scene) Resize(width, height int) {
	if height > 0 {
		s.Pipeline.SetAspect(float32(width) / float32(height))
	}
}

// Draw renders every object.
func (s *Scene) Draw() {
	s.r.Begin(s.Camera.Position)
	for _, o := range s.objects {
		s.r.Draw(renderer.DrawCall{
			Mesh:     s.meshes[o.Mesh],
			Texture:  s.textures[o.Texture],
			Matrices: s.Pipeline.Object(o.Transform),
			Lit:      o.Lit,
		})
	}
	s.r.End()
}

// Close stops the watcher and releases GPU resources.
func (s *Scene) Close() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.log.Warn("closing layout watcher", zap.Error(err))
		}
		s.watcher = nil
	}
	s.release()
}

func (s *Scene) release() {
	releaseMeshes(s.meshes)
	for _, t := range s.textures {
		t.Delete()
	}
	s.meshes, s.textures = nil, nil
}

func releaseMeshes(meshes map[*mesh.Mesh]*renderer.Mesh) {
	for _, g := range meshes {
		g.Delete()
	}
}
