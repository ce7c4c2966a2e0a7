package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xlab/closer"
	"go.uber.org/zap"

	"voxview/internal/config"
	"voxview/internal/graphics"
	"voxview/internal/graphics/gldevice"
	"voxview/internal/logging"
	"voxview/internal/resources"
	"voxview/internal/terrain"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

var (
	configPath  = flag.String("config", "", "path to a YAML config file")
	logLevel    = flag.String("log-level", "info", "debug, info, warn or error")
	metricsAddr = flag.String("metrics", "", "serve Prometheus metrics on this address, e.g. :9100")
	devLog      = flag.Bool("dev", false, "human readable development logging")
)

func main() {
	flag.Parse()

	log, err := logging.New(*logLevel, *devLog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log = log.With(zap.String("run", uuid.NewString()))
	closer.Bind(func() { _ = log.Sync() })

	cfg, ok := configOrReport(*configPath, log)
	if !ok {
		closer.Exit(2)
		return
	}

	if *metricsAddr != "" {
		srv := serveMetrics(*metricsAddr, log)
		closer.Bind(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		})
	}

	if err := run(cfg, log); err != nil {
		log.Error("viewer stopped", zap.Error(err))
		closer.Exit(1)
		return
	}
	closer.Close()
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// configOrReport loads the config and logs the failure instead of exiting,
// so bound cleanup still runs on the caller's exit path.
func configOrReport(path string, log *zap.Logger) (config.Config, bool) {
	cfg, err := loadConfig(path)
	if err != nil {
		log.Error("config", zap.String("path", path), zap.Error(err))
		return config.Config{}, false
	}
	return cfg, true
}

func serveMetrics(addr string, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", addr))
	return srv
}

// run owns the window and GL context; everything it creates is torn down
// before it returns.
func run(cfg config.Config, log *zap.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Render)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	atlas, err := resources.LoadAtlas(cfg.Render.AtlasPath, cfg.Render.TileSize)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("atlas not found, using flat colours", zap.String("path", cfg.Render.AtlasPath))
		atlas, err = resources.PlaceholderAtlas(cfg.Render.TileSize), nil
	}
	if err != nil {
		return err
	}
	dev, err := gldevice.New(atlas, log.Named("gl"))
	if err != nil {
		return err
	}
	defer dev.Dispose()

	ter, err := terrain.New(cfg, dev, atlas.Info(),
		terrain.WithLogger(log),
		terrain.WithRegisterer(prometheus.DefaultRegisterer),
	)
	if err != nil {
		return err
	}
	defer ter.Close()

	cam := graphics.NewCamera(cfg.Render.Width, cfg.Render.Height,
		cfg.Render.FOV, cfg.Render.NearPlane, cfg.Render.FarPlane)
	cam.Sensitivity = float64(cfg.Player.MouseSensitivity)
	cam.Position[1] = cfg.Player.SpawnHeight

	loop := newLoop(window, dev, ter, cam, cfg, log)
	setupInputHandlers(window, loop)
	loop.Run()

	log.Info("window closed", zap.Int("live_meshes", dev.LiveMeshes()))
	return nil
}
