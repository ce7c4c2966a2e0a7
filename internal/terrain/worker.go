package terrain

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"voxview/internal/meshing"
	"voxview/internal/world"
)

// Generated is one finished unit of work travelling from a worker to the
// main goroutine. The block list is read-only from here on.
type Generated struct {
	Coord    world.SectorCoord
	Blocks   *world.BlockList
	Vertices []meshing.Vertex
}

// workerPool runs the generate-then-mesh loop on a fixed number of
// goroutines, pulling work from the pending set and pushing results into a
// bounded channel.
type workerPool struct {
	pending *PendingSet
	gen     world.TerrainGenerator
	atlas   meshing.AtlasInfo
	idle    time.Duration
	results chan Generated
	metrics *metrics
	log     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newWorkerPool(workers, queueSize int, pending *PendingSet, gen world.TerrainGenerator,
	atlas meshing.AtlasInfo, idle time.Duration, m *metrics, log *zap.Logger) *workerPool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &workerPool{
		pending: pending,
		gen:     gen,
		atlas:   atlas,
		idle:    idle,
		results: make(chan Generated, queueSize),
		metrics: m,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

func (p *workerPool) worker(id int) {
	defer p.wg.Done()
	log := p.log.With(zap.Int("worker", id))
	log.Debug("worker started")

	for {
		coord, ok, exiting := p.pending.Claim()
		if exiting {
			log.Debug("worker exiting")
			return
		}
		if ok {
			if !p.build(coord) {
				return
			}
		}

		select {
		case <-time.After(p.idle):
		case <-p.ctx.Done():
			return
		}
	}
}

// build generates and meshes one sector and hands it over. It returns false
// if shutdown interrupted the handoff.
func (p *workerPool) build(coord world.SectorCoord) bool {
	blocks := p.gen.Generate(coord)
	vertices := meshing.Generate(blocks, meshing.PaddingNeighbors(blocks), p.atlas)
	p.metrics.generated.Inc()

	select {
	case p.results <- Generated{Coord: coord, Blocks: blocks, Vertices: vertices}:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// shutdown stops every worker. Workers blocked on a full result channel are
// released by the cancelled context; results still queued are dropped.
func (p *workerPool) shutdown() {
	p.pending.Shutdown()
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-p.results:
		case <-done:
			return
		}
	}
}
