package domain

import (
	"path/filepath"
	"time"
)

// Config represents the knockbot configuration after all layers are applied.
type Config struct {
	DataDir     string
	Credentials string

	HTTP    HTTPConfig
	History HistoryConfig

	Sources  []CorpusSource
	Variants []VariantSpec
}

type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// HistoryBackend selects the run store.
type HistoryBackend string

const (
	HistoryJSON   HistoryBackend = "json"
	HistorySQLite HistoryBackend = "sqlite"
	HistoryNone   HistoryBackend = "none"
)

type HistoryConfig struct {
	Backend HistoryBackend
	// Dir defaults to <DataDir>/runs when empty.
	Dir string
}

// Source returns the corpus source with the given name.
func (c Config) Source(name string) (CorpusSource, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return CorpusSource{}, false
}

// CorpusDir is where downloaded corpora are cached.
func (c Config) CorpusDir() string {
	return c.DataDir
}

// CredentialsPath defaults to <DataDir>/credentials.yaml.
func (c Config) CredentialsPath() string {
	if c.Credentials != "" {
		return c.Credentials
	}
	return filepath.Join(c.DataDir, "credentials.yaml")
}

func (c Config) RunsDir() string {
	if c.History.Dir != "" {
		return c.History.Dir
	}
	return filepath.Join(c.DataDir, "runs")
}

func (c Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

const (
	EnFirstNamesURL = "https://raw.githubusercontent.com/dariusk/corpora/master/data/humans/firstNames.json"
	EnSurnamesURL   = "https://raw.githubusercontent.com/dariusk/corpora/master/data/humans/authors.json"
	FiFemaleURL     = "https://raw.githubusercontent.com/isaru/name-generator/master/data/female.txt"
	FiMaleURL       = "https://raw.githubusercontent.com/isaru/name-generator/master/data/male.txt"
	FiSurnamesURL   = "https://raw.githubusercontent.com/isaru/name-generator/master/data/surname.txt"
)

// DefaultSources are the corpora used when the config file defines none.
func DefaultSources() []CorpusSource {
	return []CorpusSource{
		{Name: "en_firstnames", URL: EnFirstNamesURL, Format: FormatJSON, Field: "firstNames"},
		{Name: "en_surnames", URL: EnSurnamesURL, Format: FormatJSON, Field: "authors"},
		{Name: "fi_female", URL: FiFemaleURL, Format: FormatLines},
		{Name: "fi_male", URL: FiMaleURL, Format: FormatLines},
		{Name: "fi_surnames", URL: FiSurnamesURL, Format: FormatLines},
	}
}

// DefaultVariants picks Finnish one time in four.
func DefaultVariants() []VariantSpec {
	return []VariantSpec{
		{
			Name:       "en",
			Weight:     3,
			FirstNames: []string{"en_firstnames"},
			Surnames:   []string{"en_surnames"},
			Template:   EnglishTemplate(),
		},
		{
			Name:       "fi",
			Weight:     1,
			FirstNames: []string{"fi_female", "fi_male"},
			Surnames:   []string{"fi_surnames"},
			Template:   FinnishTemplate(),
		},
	}
}

// DefaultConfig provides sane defaults if knockbot.toml is partially missing.
func DefaultConfig() Config {
	return Config{
		DataDir: "~/.knockbot/data",
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "knockbot",
		},
		History: HistoryConfig{
			Backend: HistoryJSON,
		},
		Sources:  DefaultSources(),
		Variants: DefaultVariants(),
	}
}
