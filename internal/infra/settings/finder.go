package settings

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

const FileName = "knockbot.toml"

// Finder locates knockbot.toml by searching upward from a directory.
type Finder struct {
	ConfigFile string // defaults to "knockbot.toml"
}

var _ ports.SettingsLocator = (*Finder)(nil)

func NewFinder() *Finder {
	return &Finder{ConfigFile: FileName}
}

// FindConfig returns the path of the nearest config file at or above startDir.
func (f *Finder) FindConfig(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "settings.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "settings.find",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	name := f.ConfigFile
	if name == "" {
		name = FileName
	}

	cur := filepath.Clean(abs)
	for {
		cfgPath := filepath.Join(cur, name)
		if st, err := os.Stat(cfgPath); err == nil && !st.IsDir() {
			return cfgPath, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "settings.find",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
