package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/knockbot/knockbot/internal/domain"
)

// EnvPrefix marks environment overrides. Double underscores separate levels:
// KNOCKBOT_HTTP__TIMEOUT=5s sets http.timeout.
const EnvPrefix = "KNOCKBOT_"

type Options struct {
	// Path is an explicit config file. It must exist.
	Path string
	// StartDir is searched upward for knockbot.toml when Path is empty.
	StartDir string
	// HomeDir expands "~" and holds the fallback ~/.knockbot/knockbot.toml.
	HomeDir string
}

type Result struct {
	Config domain.Config
	// Path is the file that was loaded, empty when defaults were used.
	Path string
}

// Load layers defaults, the config file and KNOCKBOT_* variables.
func Load(opts Options) (Result, error) {
	path, err := locate(opts)
	if err != nil {
		return Result{}, err
	}

	k := koanf.New(".")

	def := domain.DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]any{
		"data_dir":        def.DataDir,
		"http.timeout":    def.HTTP.Timeout.String(),
		"http.user_agent": def.HTTP.UserAgent,
		"history.backend": string(def.History.Backend),
	}, "."), nil); err != nil {
		return Result{}, &domain.OpError{Op: "settings.load", Kind: domain.KindExecution, Err: err}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Result{}, &domain.OpError{Op: "settings.load", Kind: domain.KindInvalidConfig, Path: path, Err: err}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Result{}, &domain.OpError{Op: "settings.env", Kind: domain.KindInvalidConfig, Err: err}
	}

	var f File
	if err := k.Unmarshal("", &f); err != nil {
		return Result{}, &domain.OpError{Op: "settings.decode", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	cfg, err := Map(path, f, opts.HomeDir)
	if err != nil {
		return Result{}, err
	}
	return Result{Config: cfg, Path: path}, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func locate(opts Options) (string, error) {
	if opts.Path != "" {
		p := ExpandHome(opts.Path, opts.HomeDir)
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			if err == nil {
				err = errors.New("is a directory")
			}
			return "", &domain.OpError{Op: "settings.locate", Kind: domain.KindNotFound, Path: p, Err: err}
		}
		return p, nil
	}

	if opts.StartDir != "" {
		p, err := NewFinder().FindConfig(opts.StartDir)
		if err == nil {
			return p, nil
		}
		if !domain.IsKind(err, domain.KindNotFound) {
			return "", err
		}
	}

	if opts.HomeDir != "" {
		p := filepath.Join(opts.HomeDir, ".knockbot", FileName)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}

	return "", nil
}
