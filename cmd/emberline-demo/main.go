// Command emberline-demo runs a small scene against the real Chipmunk
// engine and draws it in the terminal. The terminal acts as the renderer
// collaborator: a read-only consumer of final transform, sprite, particle
// and camera state.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/halvard/emberline/config"
	"github.com/halvard/emberline/core"
	"github.com/halvard/emberline/game"
	"github.com/halvard/emberline/gamespec"
	"github.com/halvard/emberline/input"
	"github.com/halvard/emberline/physics"
)

// defaultScene is used when no -spec file is given: a controllable player,
// a patrolling and a chasing enemy, a coin sensor, a fountain emitter and a
// ground strip from a tilemap.
const defaultScene = `
entities:
  - name: player
    tags: [player]
    components:
      transform: {x: 160, y: 120}
      velocity: {}
      collider: {shape: box, width: 16, height: 16, friction: 0.8}
      input: {speed: 140, jumpSpeed: 300}
      health: {max: 100}
      sprite: {rune: 64, visible: true, color: {r: 240, g: 220, b: 80, a: 255}}
  - name: patroller
    tags: [enemy]
    components:
      transform: {x: 320, y: 120}
      velocity: {}
      collider: {shape: box, width: 16, height: 16, friction: 0.8}
      aiBehavior: {behavior: patrol, speed: 60}
      sprite: {rune: 112, visible: true, color: {r: 220, g: 80, b: 80, a: 255}}
  - name: chaser
    tags: [enemy]
    components:
      transform: {x: 480, y: 120}
      velocity: {}
      collider: {shape: circle, radius: 8, friction: 0.8}
      aiBehavior: {behavior: chase, speed: 80, detectionRadius: 200}
      sprite: {rune: 99, visible: true, color: {r: 250, g: 120, b: 40, a: 255}}
  - name: coin
    tags: [coin]
    components:
      transform: {x: 240, y: 160}
      collider: {shape: circle, radius: 6, sensor: true}
      sprite: {rune: 111, visible: true, color: {r: 250, g: 210, b: 60, a: 255}}
  - name: fountain
    components:
      transform: {x: 400, y: 180}
      particleEmitter:
        emitRate: 40
        lifetimeMin: 0.4
        lifetimeMax: 1.2
        speedMin: 60
        speedMax: 140
        angleMin: 3.5
        angleMax: 5.9
        gravityY: 300
        startColor: {r: 120, g: 180, b: 250, a: 255}
        endColor: {r: 40, g: 60, b: 120, a: 0}
  - name: camera
    components:
      camera: {active: true, zoom: 1, followTarget: player, smoothing: 0.9}
config:
  gravity: {x: 0, y: 900}
  worldBounds: {width: 800, height: 240}
tilemap:
  width: 50
  height: 15
  tileSize: 16
  tileset:
    - {id: 1, collision: true}
  layers:
    - - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1]
      - [1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1]
`

func main() {
	specPath := flag.String("spec", "", "path to a game specification YAML (default: built-in scene)")
	configPath := flag.String("config", "", "path to a runtime config YAML")
	logPath := flag.String("log", "emberline-demo.log", "log file (terminal owns stdout)")
	profileMode := flag.Bool("profile", false, "write a CPU profile on exit")
	flag.Parse()

	if *profileMode {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	if err := run(*specPath, *configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "emberline-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(specPath, configPath, logPath string) error {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{logPath}
	zcfg.ErrorOutputPaths = []string{logPath}
	log, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var spec *gamespec.Spec
	if specPath != "" {
		spec, err = gamespec.Load(specPath)
	} else {
		spec, err = gamespec.Parse([]byte(defaultScene))
	}
	if err != nil {
		return err
	}

	rt, err := game.NewRuntime(cfg, physics.NewChipmunk(), log)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.LoadSpec(spec); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	// Pickup rule: the coin disappears on player contact.
	rules := rt.Rules()
	rules.AddRule("player", "coin", func(player, coin core.Entity) {
		rules.RemoveEntity(coin)
		log.Info("coin collected", zap.Uint32("player", uint32(player)))
	})

	// Enemies chip away at the player on touch.
	rules.AddRule("enemy", "player", func(enemy, player core.Entity) {
		if rules.DamageEntity(player, 10) {
			log.Info("player defeated")
		}
	})

	view := newView(screen, rt)
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	view.events = events

	rt.Run(view)
	<-view.quit
	rt.Stop()
	return nil
}

// view renders frames and feeds terminal key events into the input service.
// Both happen on the loop goroutine, keeping the simulation single-threaded.
type view struct {
	screen tcell.Screen
	rt     *game.Runtime
	events chan tcell.Event
	quit   chan struct{}

	// Terminals report key presses but no releases; held keys are expired
	// after a short window unless auto-repeat refreshes them.
	holdUntil map[input.Key]time.Time
}

const keyHold = 150 * time.Millisecond

func newView(screen tcell.Screen, rt *game.Runtime) *view {
	return &view{
		screen:    screen,
		rt:        rt,
		quit:      make(chan struct{}),
		holdUntil: make(map[input.Key]time.Time),
	}
}

func (v *view) Render(frame game.Frame) {
	v.pumpInput()
	v.draw(frame)
}

func (v *view) pumpInput() {
	now := time.Now()
	for {
		select {
		case ev := <-v.events:
			key, ok := mapKey(ev)
			if !ok {
				continue
			}
			if key == "quit" {
				select {
				case <-v.quit:
				default:
					close(v.quit)
				}
				continue
			}
			v.rt.Input().SetKey(key, true)
			v.holdUntil[key] = now.Add(keyHold)
		default:
			for key, until := range v.holdUntil {
				if now.After(until) {
					v.rt.Input().SetKey(key, false)
					delete(v.holdUntil, key)
				}
			}
			return
		}
	}
}

func mapKey(ev tcell.Event) (input.Key, bool) {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return "", false
	}
	switch kev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "quit", true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyUp:
		return input.KeyJump, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyRune:
		switch kev.Rune() {
		case 'q':
			return "quit", true
		case 'a':
			return input.KeyLeft, true
		case 'd':
			return input.KeyRight, true
		case 'w', ' ':
			return input.KeyJump, true
		case 's':
			return input.KeyDown, true
		}
	}
	return "", false
}

// cellSize maps world pixels to terminal cells.
const cellSize = 8.0

func (v *view) draw(frame game.Frame) {
	v.screen.Clear()
	width, height := v.screen.Size()

	camX := frame.Camera.X + frame.Camera.ShakeX
	camY := frame.Camera.Y + frame.Camera.ShakeY

	toCell := func(x, y float64) (int, int) {
		cx := int((x-camX)/cellSize) + width/2
		cy := int((y-camY)/(cellSize*2)) + height/2
		return cx, cy
	}

	world := frame.World
	for _, e := range world.Components.Sprite.Entities() {
		sprite, _ := world.Components.Sprite.Get(e)
		if !sprite.Visible {
			continue
		}
		tr, ok := world.Components.Transform.Get(e)
		if !ok {
			continue
		}
		cx, cy := toCell(tr.X, tr.Y)
		if cx < 0 || cy < 0 || cx >= width || cy >= height {
			continue
		}
		glyph := sprite.Rune
		if glyph == 0 {
			glyph = '#'
		}
		style := tcell.StyleDefault.Foreground(
			tcell.NewRGBColor(int32(sprite.Color.R), int32(sprite.Color.G), int32(sprite.Color.B)))
		v.screen.SetContent(cx, cy, glyph, nil, style)
	}

	for i := range frame.Particles {
		p := &frame.Particles[i]
		cx, cy := toCell(p.X, p.Y)
		if cx < 0 || cy < 0 || cx >= width || cy >= height {
			continue
		}
		c := p.Color()
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		v.screen.SetContent(cx, cy, '·', nil, style)
	}

	status := fmt.Sprintf(" %3.0f fps | %d entities | %d particles | a/d move, w jump, q quit ",
		v.rt.FPS(), world.EntityCount(), len(frame.Particles))
	for i, r := range status {
		if i >= width {
			break
		}
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}

	v.screen.Show()
}
