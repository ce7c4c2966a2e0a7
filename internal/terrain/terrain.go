package terrain

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"voxview/internal/config"
	"voxview/internal/culling"
	"voxview/internal/graphics"
	"voxview/internal/logging"
	"voxview/internal/meshing"
	"voxview/internal/profiling"
	"voxview/internal/world"
)

// ErrGeometryMismatch is returned when a custom generator fills sectors of
// a different shape than the configuration describes.
var ErrGeometryMismatch = errors.New("generator geometry does not match config")

// Terrain owns the resident sectors and schedules background generation
// around the camera. Every method except the worker internals must be
// called from the goroutine that owns the graphics device.
type Terrain struct {
	cfg   config.StreamingSettings
	geom  world.Geometry
	dev   graphics.Device
	log   *zap.Logger
	warn  *logging.Throttled
	stats *metrics

	sectors  map[world.SectorCoord]*Sector
	unmeshed []world.SectorCoord
	pending  *PendingSet
	pool     *workerPool
	visit    []world.SectorCoord

	lastDrawn []world.SectorCoord
	closed    bool
}

type options struct {
	log *zap.Logger
	reg prometheus.Registerer
	gen world.TerrainGenerator
}

// Option customises New.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.log = l } }

// WithRegisterer exports the terrain metrics.
func WithRegisterer(r prometheus.Registerer) Option { return func(o *options) { o.reg = r } }

// WithGenerator replaces the noise generator.
func WithGenerator(g world.TerrainGenerator) Option { return func(o *options) { o.gen = g } }

// New starts the worker pool. The caller must Close the terrain.
func New(cfg config.Config, dev graphics.Device, atlas meshing.AtlasInfo, opts ...Option) (*Terrain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	geom := world.Geometry{Size: cfg.Sector.Size, Padding: cfg.Sector.Padding}
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.gen == nil {
		o.gen = world.NewGenerator(geom, cfg.WorldGen)
	}
	if o.gen.Geometry() != geom {
		return nil, fmt.Errorf("%w: %+v vs %+v", ErrGeometryMismatch, o.gen.Geometry(), geom)
	}

	s := cfg.Streaming
	t := &Terrain{
		cfg:     s,
		geom:    geom,
		dev:     dev,
		log:     o.log.Named("terrain"),
		stats:   newMetrics(o.reg),
		sectors: make(map[world.SectorCoord]*Sector),
		pending: NewPendingSet(s.MaxPending),
		visit:   VisitOrder(s.GenerationRadius, s.VerticalRadius, s.RetentionRadius),
	}
	t.warn = logging.NewThrottled(t.log, time.Second, 3)
	t.pool = newWorkerPool(s.Workers, s.ResultQueue, t.pending, o.gen, atlas,
		s.WorkerIdleSleep.Std(), t.stats, t.log)

	t.log.Info("terrain started",
		zap.Int("workers", s.Workers),
		zap.Int("sector_size", geom.Size),
		zap.Int("visit_offsets", len(t.visit)),
	)
	return t, nil
}

// Geometry returns the sector shape.
func (t *Terrain) Geometry() world.Geometry { return t.geom }

// Update runs the per-frame streaming step: drain finished sectors, upload
// their meshes, evict sectors out of range and request new ones.
func (t *Terrain) Update(cam graphics.CameraView) {
	defer profiling.Track("terrain.Update")()
	if t.closed {
		return
	}
	center := world.SectorAt(cam.Translation(), t.geom.Size)

	t.drain(center)
	t.attachMeshes()
	t.evict(center)
	t.requestAround(center)

	t.stats.resident.Set(float64(len(t.sectors)))
	t.stats.pending.Set(float64(t.pending.Len()))
}

func (t *Terrain) drain(center world.SectorCoord) {
	defer profiling.Track("terrain.drain")()
	start := time.Now()
	deadline := start.Add(t.cfg.DrainBudget.Std())
	defer func() { t.stats.drain.Observe(time.Since(start).Seconds()) }()

	for time.Now().Before(deadline) {
		select {
		case g := <-t.pool.results:
			t.insert(g, center)
		default:
			return
		}
	}
	if len(t.pool.results) > 0 {
		t.warn.Warn("drain budget exhausted", zap.Int("queued", len(t.pool.results)))
	}
}

func (t *Terrain) insert(g Generated, center world.SectorCoord) {
	t.pending.Complete(g.Coord)
	r := t.cfg.RetentionRadius
	if g.Coord.DistSq(center) > r*r {
		t.stats.discarded.Inc()
		return
	}
	if _, ok := t.sectors[g.Coord]; ok {
		t.stats.discarded.Inc()
		return
	}
	t.sectors[g.Coord] = newSector(g)
	t.unmeshed = append(t.unmeshed, g.Coord)
}

func (t *Terrain) attachMeshes() {
	defer profiling.Track("terrain.attachMeshes")()
	deadline := time.Now().Add(t.cfg.UploadBudget.Std())
	done := 0
	for done < len(t.unmeshed) {
		if done > 0 && !time.Now().Before(deadline) {
			break
		}
		c := t.unmeshed[done]
		done++
		s, ok := t.sectors[c]
		if !ok || s.meshed {
			continue
		}
		if len(s.vertices) == 0 {
			s.meshed = true
			continue
		}
		mesh, err := t.dev.UploadMesh(s.vertices)
		if err != nil {
			t.stats.uploadErr.Inc()
			t.warn.Warn("mesh upload failed", zap.Stringer("coord", c), zap.Error(err))
			// retried next frame
			done--
			break
		}
		s.mesh = mesh
		s.vertices = nil
		s.meshed = true
	}
	t.unmeshed = append(t.unmeshed[:0], t.unmeshed[done:]...)
}

func (t *Terrain) evict(center world.SectorCoord) {
	r2 := t.cfg.RetentionRadius * t.cfg.RetentionRadius
	removed := 0
	for c, s := range t.sectors {
		if c.DistSq(center) > r2 {
			s.Release()
			delete(t.sectors, c)
			removed++
		}
	}
	if removed > 0 {
		t.stats.evicted.Add(float64(removed))
		t.log.Debug("evicted sectors", zap.Int("count", removed), zap.Stringer("center", center))
	}
	t.pending.PruneUnclaimed(func(c world.SectorCoord) bool {
		return c.DistSq(center) <= r2
	})
}

func (t *Terrain) requestAround(center world.SectorCoord) {
	for _, off := range t.visit {
		c := center.Add(off.X, off.Y, off.Z)
		if _, ok := t.sectors[c]; ok {
			continue
		}
		if st := t.pending.Request(c); st == QueueFull || st == ShuttingDown {
			return
		}
	}
}

// Request asks for a single sector. It returns false if the sector is
// resident, already pending, or the pending set is full.
func (t *Terrain) Request(c world.SectorCoord) bool {
	if _, ok := t.sectors[c]; ok {
		return false
	}
	return t.pending.Request(c) == Requested
}

// Draw culls resident sectors against the camera frustum and issues one
// draw call per visible mesh. It returns the number of draw calls.
func (t *Terrain) Draw(cam graphics.CameraView) int {
	defer profiling.Track("terrain.Draw")()
	view, proj := cam.ViewMatrix(), cam.ProjectionMatrix()
	frustum := culling.Derive(proj.Mul4(view))

	t.dev.BindTexture()
	t.dev.SetView(view, proj)

	t.lastDrawn = t.lastDrawn[:0]
	for c, s := range t.sectors {
		if s.mesh == nil || !frustum.SectorVisible(c, t.geom.Size) {
			continue
		}
		tr := c.Translation(t.geom.Size)
		t.dev.DrawMesh(s.mesh, mgl32.Translate3D(tr.X(), tr.Y(), tr.Z()))
		t.lastDrawn = append(t.lastDrawn, c)
	}
	return len(t.lastDrawn)
}

// LastDrawn returns the sectors drawn by the previous Draw.
func (t *Terrain) LastDrawn() []world.SectorCoord {
	return append([]world.SectorCoord(nil), t.lastDrawn...)
}

// SolidAt reports whether the block at world coordinates is solid. Only
// meshed sectors count, so collision matches what is on screen.
func (t *Terrain) SolidAt(x, y, z int) bool {
	sc, local := world.SplitBlock(t.geom, x, y, z)
	s, ok := t.sectors[sc]
	if !ok || !s.meshed {
		return false
	}
	return s.blocks.Get(local).IsSolid()
}

// Sector returns a resident sector.
func (t *Terrain) Sector(c world.SectorCoord) (*Sector, bool) {
	s, ok := t.sectors[c]
	return s, ok
}

// ResidentCount is the number of sectors in the map.
func (t *Terrain) ResidentCount() int { return len(t.sectors) }

// PendingCount is the number of requested sectors not yet consumed.
func (t *Terrain) PendingCount() int { return t.pending.Len() }

// Stats is a point-in-time summary for overlays and logs.
type Stats struct {
	Resident int
	Meshed   int
	Pending  int
	Queued   int
	Drawn    int
}

func (t *Terrain) Stats() Stats {
	st := Stats{
		Resident: len(t.sectors),
		Pending:  t.pending.Len(),
		Queued:   len(t.pool.results),
		Drawn:    len(t.lastDrawn),
	}
	for _, s := range t.sectors {
		if s.meshed {
			st.Meshed++
		}
	}
	return st
}

// Close stops the workers and releases every mesh. Safe to call twice.
func (t *Terrain) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.pool.shutdown()
	for c, s := range t.sectors {
		s.Release()
		delete(t.sectors, c)
	}
	t.unmeshed = nil
	t.log.Info("terrain stopped")
}
