package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// New builds the process logger. level is one of debug, info, warn, error.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = !development
	return cfg.Build()
}

// Throttled drops log lines that exceed a fixed rate and counts what it
// dropped, so hot-path warnings cannot flood the output.
type Throttled struct {
	log     *zap.Logger
	limiter *rate.Limiter
	dropped int
}

// NewThrottled allows one line per interval with a burst of burst lines.
func NewThrottled(log *zap.Logger, every time.Duration, burst int) *Throttled {
	return &Throttled{log: log, limiter: rate.NewLimiter(rate.Every(every), burst)}
}

// Warn logs at warn level if the limiter allows it. Not safe for concurrent use.
func (t *Throttled) Warn(msg string, fields ...zap.Field) {
	if !t.limiter.Allow() {
		t.dropped++
		return
	}
	if t.dropped > 0 {
		fields = append(fields, zap.Int("suppressed", t.dropped))
		t.dropped = 0
	}
	t.log.Warn(msg, fields...)
}
