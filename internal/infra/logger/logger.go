package logger

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// Dir receives knockbot.log. It is created if missing.
	Dir   string
	Debug bool
}

var (
	mu      sync.RWMutex
	global  = zap.NewNop()
	logFile *os.File
	logPath string
)

func Setup(cfg Config) (func() error, error) {
	dir := filepath.Clean(cfg.Dir)
	if cfg.Dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		setNop()
		return nil, err
	}

	path := filepath.Join(dir, "knockbot.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		setNop()
		return nil, err
	}

	l := New(zapcore.AddSync(f), cfg.Debug)

	mu.Lock()
	global = l
	logFile = f
	logPath = path
	mu.Unlock()

	l.Info("logger.initialized", zap.String("path", path), zap.Bool("debug", cfg.Debug))

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		_ = global.Sync()
		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		logPath = ""
		global = zap.NewNop()
		return cerr
	}

	return cleanup, nil
}

// New builds a JSON logger writing to ws. Debug lowers the level and adds
// caller information.
func New(ws zapcore.WriteSyncer, debug bool) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339Nano))
	}

	level := zapcore.InfoLevel
	var opts []zap.Option
	if debug {
		level = zapcore.DebugLevel
		opts = append(opts, zap.AddCaller())
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, zap.NewAtomicLevelAt(level))
	return zap.New(core, opts...)
}

func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

func setNop() {
	mu.Lock()
	defer mu.Unlock()
	global = zap.NewNop()
	logFile = nil
	logPath = ""
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if logFile == nil || logPath == "" {
		return errors.New("logger not initialized")
	}
	return nil
}
