package domain

import (
	"fmt"
	"strings"
)

// CorpusFormat is the on-disk layout of a name corpus.
type CorpusFormat string

const (
	// FormatLines is newline-delimited UTF-8 text, one name per line.
	FormatLines CorpusFormat = "lines"
	// FormatJSON is a JSON document holding an array of names under a field.
	FormatJSON CorpusFormat = "json"
)

// ParseCorpusFormat accepts the canonical names plus a few common aliases.
func ParseCorpusFormat(s string) (CorpusFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lines", "text", "txt":
		return FormatLines, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported corpus format %q (expected lines|json)", s)
	}
}

// CorpusSource describes where a corpus comes from and how to read it.
type CorpusSource struct {
	Name   string
	URL    string
	Format CorpusFormat
	// Field is the JSON array key (or a JSONPath starting with "$").
	// Ignored for FormatLines.
	Field string
}

// NameCorpus is a loaded list of candidate names.
type NameCorpus struct {
	Name  string
	Names []string
}

func (c NameCorpus) Len() int { return len(c.Names) }
