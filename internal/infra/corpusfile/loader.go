package corpusfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/PaesslerAG/jsonpath"

	"github.com/knockbot/knockbot/internal/domain"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Loader reads a cached corpus file into a list of names.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// LoadNames reads path according to the source format. Names keep their
// original spelling and order; only surrounding whitespace is removed.
func (l *Loader) LoadNames(path string, source domain.CorpusSource) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "corpusfile.read", Kind: kind, Path: path, Err: err}
	}

	switch source.Format {
	case domain.FormatLines, "":
		names, err := ParseLines(b)
		if err != nil {
			return nil, &domain.OpError{Op: "corpusfile.lines", Kind: domain.KindCorpusFormat, Path: path, Err: err}
		}
		return names, nil
	case domain.FormatJSON:
		names, err := ParseJSON(b, source.Field)
		if err != nil {
			return nil, &domain.OpError{Op: "corpusfile.json", Kind: domain.KindCorpusFormat, Path: path, Err: err}
		}
		return names, nil
	default:
		return nil, &domain.OpError{
			Op:   "corpusfile.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("unsupported format %q", source.Format),
		}
	}
}

// ParseLines splits b into trimmed, non-blank lines.
func ParseLines(b []byte) ([]string, error) {
	b = bytes.TrimPrefix(b, bom)
	if !utf8.Valid(b) {
		return nil, errors.New("file is not valid UTF-8")
	}

	names := []string{}
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// ParseJSON evaluates field against the document and expects an array of
// strings. A bare key like "firstNames" is treated as "$.firstNames".
func ParseJSON(b []byte, field string) ([]string, error) {
	expr := Expr(field)
	if expr == "" {
		return nil, errors.New("json corpus needs a field")
	}

	var doc any
	if err := json.Unmarshal(bytes.TrimPrefix(b, bom), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", expr, err)
	}

	arr, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("field %s: expected array, got %T", expr, val)
	}

	names := make([]string, 0, len(arr))
	for i, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("field %s[%d]: expected string, got %T", expr, i, v)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		names = append(names, s)
	}
	return names, nil
}

// Expr turns a configured field into a JSONPath expression.
func Expr(field string) string {
	f := strings.TrimSpace(field)
	if f == "" || strings.HasPrefix(f, "$") {
		return f
	}
	return "$." + f
}
