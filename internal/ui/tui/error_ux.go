package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knockbot/knockbot/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "corpusfetch") {
				return "Data directory not found (run knockbot init)"
			}
			if strings.Contains(oe.Op, "yamlcreds") {
				return "Credentials file not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" && looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base + " line " + line
			}
			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		case domain.KindDownload:
			return "Could not download a name list"

		case domain.KindCorpusFormat:
			if oe.Path != "" {
				return "Malformed name list " + filepath.Base(oe.Path)
			}
			return "Malformed name list"

		case domain.KindEmptyCorpus:
			return "A name list is empty"

		case domain.KindCredential:
			if m := missingKeys(err.Error()); m != "" {
				return "Missing credentials: " + m
			}
			return "Missing credentials"

		case domain.KindPublish:
			return "Posting failed (see logs)"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

// missingKeys pulls "a, b" out of "... missing a, b: missing credentials".
func missingKeys(s string) string {
	i := strings.Index(s, "missing ")
	if i < 0 {
		return ""
	}
	part := s[i+len("missing "):]
	if j := strings.Index(part, ":"); j >= 0 {
		part = part[:j]
	}
	part = strings.TrimSpace(part)
	if part == "credentials" {
		return ""
	}
	return part
}
