package settings

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/infra/corpusfetch"
)

// Map validates the decoded file and turns it into a domain.Config.
// Relative paths are anchored at the directory of path. Sources and
// variants fall back to the built-in defaults when the file declares none.
func Map(path string, f File, home string) (domain.Config, error) {
	cfg := domain.Config{
		DataDir:     ExpandHome(strings.TrimSpace(f.DataDir), home),
		Credentials: ExpandHome(strings.TrimSpace(f.Credentials), home),
		HTTP: domain.HTTPConfig{
			UserAgent: strings.TrimSpace(f.HTTP.UserAgent),
		},
		History: domain.HistoryConfig{
			Dir: ExpandHome(strings.TrimSpace(f.History.Dir), home),
		},
	}

	if cfg.DataDir == "" {
		return domain.Config{}, invalidField(path, "data_dir", "data directory is required")
	}
	if path != "" {
		base := filepath.Dir(path)
		cfg.DataDir = resolve(base, cfg.DataDir)
		cfg.Credentials = resolve(base, cfg.Credentials)
		cfg.History.Dir = resolve(base, cfg.History.Dir)
	}

	timeout, err := time.ParseDuration(strings.TrimSpace(f.HTTP.Timeout))
	if err != nil {
		return domain.Config{}, invalidField(path, "http.timeout", err.Error())
	}
	if timeout <= 0 {
		return domain.Config{}, invalidField(path, "http.timeout", "timeout must be positive")
	}
	cfg.HTTP.Timeout = timeout

	backend, err := parseBackend(f.History.Backend)
	if err != nil {
		return domain.Config{}, invalidField(path, "history.backend", err.Error())
	}
	cfg.History.Backend = backend

	if len(f.Sources) == 0 {
		cfg.Sources = domain.DefaultSources()
	} else {
		cfg.Sources, err = mapSources(path, f.Sources)
		if err != nil {
			return domain.Config{}, err
		}
	}

	if len(f.Variants) == 0 {
		cfg.Variants = domain.DefaultVariants()
	} else {
		cfg.Variants, err = mapVariants(path, f.Variants)
		if err != nil {
			return domain.Config{}, err
		}
	}

	if err := checkReferences(path, cfg); err != nil {
		return domain.Config{}, err
	}

	return cfg, nil
}

func mapSources(path string, in []SourceDTO) ([]domain.CorpusSource, error) {
	out := make([]domain.CorpusSource, 0, len(in))
	seen := map[string]bool{}
	// Cache file name -> URL. Two URLs must never share a local file.
	files := map[string]string{}

	for i, s := range in {
		fieldPrefix := fmt.Sprintf("sources[%d]", i)

		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, invalidField(path, fieldPrefix+".name", "name is required")
		}
		if seen[name] {
			return nil, invalidField(path, fieldPrefix+".name", fmt.Sprintf("duplicate source %q", name))
		}
		seen[name] = true

		rawURL := strings.TrimSpace(s.URL)
		if rawURL == "" {
			return nil, invalidField(path, fieldPrefix+".url", "url is required")
		}
		u, err := url.Parse(rawURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, invalidField(path, fieldPrefix+".url", fmt.Sprintf("expected an http(s) url, got %q", rawURL))
		}
		file, err := corpusfetch.FilenameFromURL(rawURL)
		if err != nil {
			return nil, invalidField(path, fieldPrefix+".url", "url has no file name")
		}
		if prev, ok := files[file]; ok && prev != rawURL {
			return nil, invalidField(path, fieldPrefix+".url", fmt.Sprintf("file name %q is already used by %q", file, prev))
		}
		files[file] = rawURL

		format := domain.FormatLines
		if strings.TrimSpace(s.Format) != "" {
			format, err = domain.ParseCorpusFormat(s.Format)
			if err != nil {
				return nil, invalidField(path, fieldPrefix+".format", err.Error())
			}
		} else if strings.HasSuffix(strings.ToLower(u.Path), ".json") {
			format = domain.FormatJSON
		}

		field := strings.TrimSpace(s.Field)
		if format == domain.FormatJSON && field == "" {
			return nil, invalidField(path, fieldPrefix+".field", "json sources need a field")
		}

		out = append(out, domain.CorpusSource{
			Name:   name,
			URL:    rawURL,
			Format: format,
			Field:  field,
		})
	}

	return out, nil
}

func mapVariants(path string, in []VariantDTO) ([]domain.VariantSpec, error) {
	out := make([]domain.VariantSpec, 0, len(in))
	seen := map[string]bool{}

	for i, v := range in {
		fieldPrefix := fmt.Sprintf("variants[%d]", i)

		name := strings.TrimSpace(v.Name)
		if name == "" {
			return nil, invalidField(path, fieldPrefix+".name", "name is required")
		}
		if seen[name] {
			return nil, invalidField(path, fieldPrefix+".name", fmt.Sprintf("duplicate variant %q", name))
		}
		seen[name] = true

		weight := 1
		if v.Weight != nil {
			weight = *v.Weight
		}
		if weight < 0 {
			return nil, invalidField(path, fieldPrefix+".weight", "weight must be >= 0")
		}

		if len(v.FirstNames) == 0 {
			return nil, invalidField(path, fieldPrefix+".first_names", "at least one corpus is required")
		}
		if len(v.Surnames) == 0 {
			return nil, invalidField(path, fieldPrefix+".surnames", "at least one corpus is required")
		}

		tpl, err := mapTemplate(name, v.Template)
		if err != nil {
			return nil, invalidField(path, fieldPrefix+".template", err.Error())
		}

		out = append(out, domain.VariantSpec{
			Name:       name,
			Weight:     weight,
			FirstNames: trimAll(v.FirstNames),
			Surnames:   trimAll(v.Surnames),
			Template:   tpl,
		})
	}

	total := 0
	for _, v := range out {
		total += v.Weight
	}
	if total == 0 {
		return nil, invalidField(path, "variants", "at least one variant needs a positive weight")
	}

	return out, nil
}

// mapTemplate falls back to the built-in wording for "en" and "fi" when the
// template table is omitted entirely.
func mapTemplate(variant string, t TemplateDTO) (domain.JokeTemplate, error) {
	tpl := domain.JokeTemplate{
		Salutation: strings.TrimSpace(t.Salutation),
		Response:   strings.TrimSpace(t.Response),
		Who:        strings.TrimSpace(t.Who),
	}

	if tpl == (domain.JokeTemplate{}) {
		switch variant {
		case "en":
			return domain.EnglishTemplate(), nil
		case "fi":
			return domain.FinnishTemplate(), nil
		}
	}

	var missing []string
	if tpl.Salutation == "" {
		missing = append(missing, "salutation")
	}
	if tpl.Response == "" {
		missing = append(missing, "response")
	}
	if tpl.Who == "" {
		missing = append(missing, "who")
	}
	if len(missing) > 0 {
		return domain.JokeTemplate{}, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return tpl, nil
}

func checkReferences(path string, cfg domain.Config) error {
	for i, v := range cfg.Variants {
		for _, ref := range []struct {
			field string
			names []string
		}{
			{field: "first_names", names: v.FirstNames},
			{field: "surnames", names: v.Surnames},
		} {
			for _, name := range ref.names {
				if _, ok := cfg.Source(name); !ok {
					return invalidField(path, fmt.Sprintf("variants[%d].%s", i, ref.field), fmt.Sprintf("unknown source %q", name))
				}
			}
		}
	}
	return nil
}

func parseBackend(s string) (domain.HistoryBackend, error) {
	switch b := domain.HistoryBackend(strings.ToLower(strings.TrimSpace(s))); b {
	case domain.HistoryJSON, domain.HistorySQLite, domain.HistoryNone:
		return b, nil
	case "":
		return domain.HistoryJSON, nil
	default:
		return "", fmt.Errorf("unsupported backend %q (expected json|sqlite|none)", s)
	}
}

// resolve anchors a relative path at base. Empty paths stay empty.
func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "settings.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
