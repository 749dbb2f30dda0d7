package gamespec

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/halvard/emberline/component"
	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/engine"
)

// cameraSpec mirrors component.Camera with a by-name follow target, since a
// spec file cannot reference entity handles.
type cameraSpec struct {
	Active       bool    `yaml:"active"`
	Zoom         float64 `yaml:"zoom"`
	FollowTarget string  `yaml:"followTarget"`
	OffsetX      float64 `yaml:"offsetX"`
	OffsetY      float64 `yaml:"offsetY"`
	Smoothing    float64 `yaml:"smoothing"`
}

type pendingFollow struct {
	camera core.Entity
	target string
}

// Populate creates the spec's entities, components, tags and tilemap
// collision bodies in the world. Unknown component kinds are skipped with a
// warning; a malformed component value fails the load.
func Populate(w *engine.World, spec *Spec, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	var follows []pendingFollow

	for i := range spec.Entities {
		es := &spec.Entities[i]
		e := w.CreateEntity()
		if e == core.None {
			return fmt.Errorf("populate: world capacity exceeded at entity %d", i)
		}
		if es.Name != "" {
			w.SetName(e, es.Name)
		}
		for _, tag := range es.Tags {
			w.AddTag(e, tag)
		}
		for kind, node := range es.Components {
			follow, known, err := attach(w, e, kind, node)
			if err != nil {
				return fmt.Errorf("populate: entity %q: %w", es.Name, err)
			}
			if !known {
				log.Warn("unknown component kind skipped",
					zap.String("entity", es.Name),
					zap.String("kind", kind))
			}
			if follow != "" {
				follows = append(follows, pendingFollow{camera: e, target: follow})
			}
		}
	}

	// Follow targets resolve after every named entity exists.
	for _, f := range follows {
		target, ok := w.ByName(f.target)
		if !ok {
			log.Warn("camera follow target not found", zap.String("target", f.target))
			continue
		}
		if cam, ok := w.Components.Camera.Get(f.camera); ok {
			cam.FollowTarget = target
			w.Components.Camera.Set(f.camera, cam)
		}
	}

	if spec.Tilemap != nil {
		if err := populateTilemap(w, spec.Tilemap); err != nil {
			return err
		}
	}

	log.Info("world populated",
		zap.Int("entities", w.EntityCount()),
		zap.Bool("tilemap", spec.Tilemap != nil))
	return nil
}

// attach decodes one component dictionary onto an entity. Returns the camera
// follow-target name when one needs later resolution, and whether the kind
// was recognized.
func attach(w *engine.World, e core.Entity, kind string, node yaml.Node) (followTarget string, known bool, err error) {
	switch kind {
	case "transform":
		var c component.Transform
		if err := node.Decode(&c); err != nil {
			return "", true, fmt.Errorf("transform: %w", err)
		}
		w.Components.Transform.Set(e, c)
	case "velocity":
		var c component.Velocity
		if err := node.Decode(&c); err != nil {
			return "", true, fmt.Errorf("velocity: %w", err)
		}
		w.Components.Velocity.Set(e, c)
	case "collider":
		var c component.Collider
		if err := node.Decode(&c); err != nil {
			return "", true, fmt.Errorf("collider: %w", err)
		}
		w.Components.Collider.Set(e, c)
	case "input":
		var c component.Input
		if err := node.Decode(&c); err != nil {
			return "", true, fmt.Errorf("input: %w", err)
		}
		w.Components.Input.Set(e, c)
	case "camera":
		var cs cameraSpec
		if err := node.Decode(&cs); err != nil {
			return "", true, fmt.Errorf("camera: %w", err)
		}
		w.Components.Camera.Set(e, component.Camera{
			Active:    cs.Active,
			Zoom:      cs.Zoom,
			OffsetX:   cs.OffsetX,
			OffsetY:   cs.OffsetY,
			Smoothing: cs.Smoothing,
		})
		return cs.FollowTarget, true, nil
	case "particleEmitter":
		var c component.ParticleEmitter
		if err := node.Decode(&c); err != nil {
			return "", true, fmt.Errorf("particleEmitter: %w", err)
		}
		w.Components.Emitter.Set(e, c)
	case "aiBehavior":
		var c component.AIBehavior
		if err := node.Decode(&c); err != nil {
			return "", true, fmt.Errorf("aiBehavior: %w", err)
		}
		w.Components.AI.Set(e, c)
	case "health":
		var c component.Health
		if err := node.Decode(&c); err != nil {
			return "", true, fmt.Errorf("health: %w", err)
		}
		if c.Max > 0 && c.Current == 0 {
			c.Current = c.Max
		}
		w.Components.Health.Set(e, c)
	case "sprite":
		var c component.Sprite
		if err := node.Decode(&c); err != nil {
			return "", true, fmt.Errorf("sprite: %w", err)
		}
		w.Components.Sprite.Set(e, c)
	case "animation":
		var c component.Animation
		if err := node.Decode(&c); err != nil {
			return "", true, fmt.Errorf("animation: %w", err)
		}
		w.Components.Animation.Set(e, c)
	default:
		return "", false, nil
	}
	return "", true, nil
}

// populateTilemap creates one static box-collider entity per collision-marked
// tile across all layers.
func populateTilemap(w *engine.World, tm *Tilemap) error {
	if tm.TileSize <= 0 {
		return fmt.Errorf("populate: tilemap tileSize must be positive")
	}
	for _, layer := range tm.Layers {
		for y, row := range layer {
			for x, id := range row {
				if id == 0 || !tm.collides(id) {
					continue
				}
				e := w.CreateEntity()
				if e == core.None {
					return fmt.Errorf("populate: world capacity exceeded in tilemap")
				}
				w.AddTag(e, "static")
				w.Components.Transform.Set(e, component.Transform{
					X: (float64(x) + 0.5) * tm.TileSize,
					Y: (float64(y) + 0.5) * tm.TileSize,
				})
				w.Components.Collider.Set(e, component.Collider{
					Shape:  component.ShapeBox,
					Width:  tm.TileSize,
					Height: tm.TileSize,
					Static: true,
				})
			}
		}
	}
	return nil
}
