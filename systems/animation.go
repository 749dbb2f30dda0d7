package systems

import "github.com/halvard/emberline/engine"

// AnimationSystem advances Animation frame timers and writes the current
// frame into the entity's Sprite.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Priority() int {
	return PriorityAnimation
}

func (s *AnimationSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Components.Animation.Entities() {
		anim, _ := w.Components.Animation.Get(e)
		if !anim.Playing || anim.Frames <= 0 || anim.FrameTime <= 0 {
			continue
		}

		anim.Elapsed += dt
		for anim.Elapsed >= anim.FrameTime {
			anim.Elapsed -= anim.FrameTime
			anim.Current++
			if anim.Current >= anim.Frames {
				if anim.Loop {
					anim.Current = 0
				} else {
					anim.Current = anim.Frames - 1
					anim.Playing = false
					break
				}
			}
		}
		w.Components.Animation.Set(e, anim)

		if sprite, ok := w.Components.Sprite.Get(e); ok {
			sprite.Frame = anim.Current
			w.Components.Sprite.Set(e, sprite)
		}
	}
}
