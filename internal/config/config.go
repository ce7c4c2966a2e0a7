package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of the viewer. It is loaded once at startup and
// passed by value; nothing mutates it afterwards.
type Config struct {
	Sector    SectorSettings    `yaml:"sector"`
	Streaming StreamingSettings `yaml:"streaming"`
	WorldGen  WorldGen          `yaml:"world_gen"`
	Player    PlayerSettings    `yaml:"player"`
	Render    RenderSettings    `yaml:"render"`
}

// SectorSettings describes the geometry of one terrain sector.
type SectorSettings struct {
	Size    int `yaml:"size"`    // edge length in blocks
	Padding int `yaml:"padding"` // extra ring stored around the interior
}

// StreamingSettings tunes the background generation pipeline.
type StreamingSettings struct {
	Workers          int `yaml:"workers"`
	RetentionRadius  int `yaml:"retention_radius"`  // in sectors
	GenerationRadius int `yaml:"generation_radius"` // horizontal, in sectors
	VerticalRadius   int `yaml:"vertical_radius"`
	MaxPending       int `yaml:"max_pending"`
	ResultQueue      int `yaml:"result_queue"`

	DrainBudget     Duration `yaml:"drain_budget"`
	UploadBudget    Duration `yaml:"upload_budget"`
	WorkerIdleSleep Duration `yaml:"worker_idle_sleep"`
}

// PlayerSettings holds movement and collision tuning.
type PlayerSettings struct {
	CollisionMargin  float32 `yaml:"collision_margin"`
	MoveSpeed        float32 `yaml:"move_speed"` // blocks per second
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	SpawnHeight      float32 `yaml:"spawn_height"`
}

// RenderSettings holds window, projection and atlas parameters.
type RenderSettings struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	FOV         float32 `yaml:"fov"` // degrees
	NearPlane   float32 `yaml:"near_plane"`
	FarPlane    float32 `yaml:"far_plane"`
	AtlasPath   string  `yaml:"atlas_path"`
	TileSize    int     `yaml:"tile_size"`
	SlowFrameMs int     `yaml:"slow_frame_ms"`
	FPSLimit    int     `yaml:"fps_limit"` // 0 means vsync only
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Sector: SectorSettings{Size: 32, Padding: 1},
		Streaming: StreamingSettings{
			Workers:          max(runtime.NumCPU()-1, 1),
			RetentionRadius:  8,
			GenerationRadius: 4,
			VerticalRadius:   1,
			MaxPending:       256,
			ResultQueue:      16,
			DrainBudget:      Duration(5 * time.Millisecond),
			UploadBudget:     Duration(4 * time.Millisecond),
			WorkerIdleSleep:  Duration(time.Millisecond),
		},
		WorldGen: DefaultWorldGen(),
		Player: PlayerSettings{
			CollisionMargin:  0.4,
			MoveSpeed:        20,
			MouseSensitivity: 0.1,
			SpawnHeight:      40,
		},
		Render: RenderSettings{
			Width:       900,
			Height:      600,
			FOV:         60,
			NearPlane:   0.1,
			FarPlane:    1000,
			AtlasPath:   "assets/textures/terrain.png",
			TileSize:    16,
			SlowFrameMs: 50,
		},
	}
}

// Load reads a YAML file on top of Default. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	s := c.Streaming
	switch {
	case c.Sector.Size <= 0:
		return fmt.Errorf("%w: sector.size must be positive, got %d", ErrInvalid, c.Sector.Size)
	case c.Sector.Padding < 0:
		return fmt.Errorf("%w: sector.padding must not be negative, got %d", ErrInvalid, c.Sector.Padding)
	case s.Workers <= 0:
		return fmt.Errorf("%w: streaming.workers must be positive, got %d", ErrInvalid, s.Workers)
	case s.GenerationRadius < 0 || s.VerticalRadius < 0:
		return fmt.Errorf("%w: streaming generation radii must not be negative", ErrInvalid)
	case s.RetentionRadius <= s.GenerationRadius || s.RetentionRadius <= s.VerticalRadius:
		// otherwise freshly requested sectors would be evicted right away
		return fmt.Errorf("%w: streaming.retention_radius (%d) must exceed the generation radii", ErrInvalid, s.RetentionRadius)
	case s.MaxPending <= 0:
		return fmt.Errorf("%w: streaming.max_pending must be positive, got %d", ErrInvalid, s.MaxPending)
	case s.ResultQueue <= 0:
		return fmt.Errorf("%w: streaming.result_queue must be positive, got %d", ErrInvalid, s.ResultQueue)
	case s.DrainBudget <= 0:
		return fmt.Errorf("%w: streaming.drain_budget must be positive", ErrInvalid)
	case s.WorkerIdleSleep <= 0:
		return fmt.Errorf("%w: streaming.worker_idle_sleep must be positive", ErrInvalid)
	case c.Player.CollisionMargin < 0 || c.Player.CollisionMargin >= 0.5:
		return fmt.Errorf("%w: player.collision_margin must be in [0, 0.5), got %v", ErrInvalid, c.Player.CollisionMargin)
	case c.Render.FPSLimit < 0:
		return fmt.Errorf("%w: render.fps_limit must not be negative, got %d", ErrInvalid, c.Render.FPSLimit)
	case c.Render.TileSize <= 0:
		return fmt.Errorf("%w: render.tile_size must be positive, got %d", ErrInvalid, c.Render.TileSize)
	}
	return c.WorldGen.validate(c.Sector.Size)
}

// Duration is a time.Duration that unmarshals from strings like "5ms".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
