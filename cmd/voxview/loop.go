package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"voxview/internal/config"
	"voxview/internal/graphics"
	"voxview/internal/graphics/gldevice"
	"voxview/internal/logging"
	"voxview/internal/physics"
	"voxview/internal/profiling"
	"voxview/internal/terrain"
	"voxview/internal/world"
)

// Loop drives one frame at a time: input, streaming, collision, draw.
type Loop struct {
	window *glfw.Window
	dev    *gldevice.Device
	ter    *terrain.Terrain
	cam    *graphics.Camera
	solid  *physics.Resolver
	log    *zap.Logger
	slow   *logging.Throttled
	limit  *frameLimiter
	proc   *profiling.ProcessSampler

	speed     float32
	slowFrame time.Duration
	spawnFrom int

	paused   bool
	collide  bool
	spawned  bool
	fbWidth  int
	fbHeight int

	lastTime  time.Time
	lastStats time.Time
	frames    int
}

func newLoop(w *glfw.Window, dev *gldevice.Device, ter *terrain.Terrain, cam *graphics.Camera, cfg config.Config, log *zap.Logger) *Loop {
	fbw, fbh := w.GetFramebufferSize()
	cam.SetViewport(fbw, fbh)
	proc, err := profiling.NewProcessSampler()
	if err != nil {
		log.Warn("process stats disabled", zap.Error(err))
	}
	now := time.Now()
	return &Loop{
		proc:      proc,
		window:    w,
		dev:       dev,
		ter:       ter,
		cam:       cam,
		solid:     physics.NewResolver(ter, cfg.Player.CollisionMargin),
		log:       log,
		slow:      logging.NewThrottled(log, 5*time.Second, 1),
		limit:     newFrameLimiter(cfg.Render.FPSLimit),
		speed:     cfg.Player.MoveSpeed,
		slowFrame: time.Duration(cfg.Render.SlowFrameMs) * time.Millisecond,
		spawnFrom: int(cfg.Player.SpawnHeight),
		collide:   true,
		fbWidth:   fbw,
		fbHeight:  fbh,
		lastTime:  now,
		lastStats: now,
	}
}

// Run blocks until the window is closed.
func (l *Loop) Run() {
	for !l.window.ShouldClose() {
		l.tick()
	}
}

func (l *Loop) tick() {
	profiling.ResetFrame()
	start := time.Now()
	dt := float32(start.Sub(l.lastTime).Seconds())
	l.lastTime = start

	glfw.PollEvents()

	if !l.paused {
		f, s, u := movement(l.window)
		l.cam.Move(f, s, u, l.speed*dt)
	}

	l.ter.Update(l.cam)
	l.placeSpawn()
	if l.collide {
		func() {
			defer profiling.Track("physics.Collide")()
			l.solid.Collide(&l.cam.Position)
		}()
	}

	func() {
		defer profiling.Track("render")()
		l.dev.BeginFrame(l.fbWidth, l.fbHeight)
		l.ter.Draw(l.cam)
	}()
	l.window.SwapBuffers()
	frame := time.Since(start)
	l.limit.Wait()

	l.frames++
	if frame > l.slowFrame {
		l.slow.Warn("slow frame",
			zap.Duration("frame", frame),
			zap.String("top", profiling.TopN(3)),
		)
	}
	if time.Since(l.lastStats) >= 5*time.Second {
		st := l.ter.Stats()
		l.log.Debug("terrain",
			zap.Int("fps", l.frames/5),
			zap.Int("resident", st.Resident),
			zap.Int("meshed", st.Meshed),
			zap.Int("pending", st.Pending),
			zap.Int("queued", st.Queued),
			zap.Int("drawn", st.Drawn),
			zap.Stringer("sector", world.SectorAt(l.cam.Position, l.ter.Geometry().Size)),
			l.processField(),
		)
		l.frames = 0
		l.lastStats = time.Now()
	}
}

// placeSpawn drops the camera onto the ground once the spawn column has a
// meshed sector. Until then the camera hovers at the configured height.
func (l *Loop) placeSpawn() {
	if l.spawned {
		return
	}
	p := l.cam.Position
	ground, ok := physics.GroundLevel(l.ter, p.X(), p.Z(), l.spawnFrom, l.spawnFrom-4*l.ter.Geometry().Size)
	if !ok {
		return
	}
	if !l.columnMeshed(p, ground) {
		return
	}
	l.cam.Position[1] = ground + 1.5
	l.spawned = true
	l.log.Info("spawned", zap.Float32("x", p.X()), zap.Float32("y", l.cam.Position[1]), zap.Float32("z", p.Z()))
}

// columnMeshed reports whether every sector between the spawn height and
// ground is meshed, so a sector still in flight above cannot hide the real
// surface.
func (l *Loop) columnMeshed(p mgl32.Vec3, ground float32) bool {
	size := l.ter.Geometry().Size
	top := world.SectorAt(mgl32.Vec3{p.X(), float32(l.spawnFrom), p.Z()}, size)
	bottom := world.SectorAt(mgl32.Vec3{p.X(), ground - 0.5, p.Z()}, size)
	for y := top.Y; y >= bottom.Y; y-- {
		s, ok := l.ter.Sector(world.SectorCoord{X: top.X, Y: y, Z: top.Z})
		if !ok || !s.Meshed() {
			return false
		}
	}
	return true
}

func (l *Loop) processField() zap.Field {
	if l.proc == nil {
		return zap.Skip()
	}
	st, err := l.proc.Sample()
	if err != nil {
		return zap.NamedError("process", err)
	}
	return zap.Dict("process",
		zap.Uint64("rss_bytes", st.RSSBytes),
		zap.Float64("cpu_pct", st.CPUPercent),
		zap.Int32("threads", st.Threads),
	)
}
