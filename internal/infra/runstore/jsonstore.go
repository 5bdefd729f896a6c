package runstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

const indexFile = "index.jsonl"

// JSONStore keeps one pretty-printed JSON file per run plus an append-only
// index.jsonl in a single directory.
type JSONStore struct {
	dir        string
	writeIndex bool
	now        func() time.Time
	log        *zap.Logger
}

type Option func(*JSONStore)

// WithIndex toggles the JSONL index: <dir>/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *JSONStore) { s.log = l }
}

func NewJSONStore(dir string, opts ...Option) *JSONStore {
	s := &JSONStore{
		dir:        dir,
		writeIndex: true,
		now:        time.Now,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

func (s *JSONStore) SaveRun(run domain.RunArtifact) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	ts := run.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := run
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	slug := slugify(run.Variant)
	if slug == "" {
		slug = "run"
	}

	stem := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	filename := stem + ".json"
	for n := 2; fileExists(filepath.Join(s.dir, filename)); n++ {
		filename = fmt.Sprintf("%s-%d.json", stem, n)
	}
	path := filepath.Join(s.dir, filename)

	if strings.TrimSpace(toSave.ID) == "" {
		toSave.ID = strings.TrimSuffix(filename, ".json")
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		if err := s.appendIndex(filename, toSave); err != nil {
			s.log.Warn("runstore.index.failed", zap.String("dir", s.dir), zap.Error(err))
		}
	}

	return toSave.ID, nil
}

func (s *JSONStore) appendIndex(filename string, run domain.RunArtifact) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Variant   string    `json:"variant"`
		DryRun    bool      `json:"dry_run"`
		PostID    string    `json:"post_id,omitempty"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        run.ID,
		File:      filename,
		Variant:   run.Variant,
		DryRun:    run.DryRun,
		PostID:    run.PostID,
		StartedAt: run.StartedAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
// A missing directory is an empty history.
func (s *JSONStore) ListRuns(limit int) ([]domain.RunArtifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.RunArtifact{}, nil
		}
		return nil, &domain.OpError{Op: "runstore.list", Kind: domain.KindExecution, Path: s.dir, Err: err}
	}

	type entry struct {
		run domain.RunArtifact
		seq int
	}
	list := make([]entry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}

		path := filepath.Join(s.dir, e.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, &domain.OpError{Op: "runstore.read", Kind: domain.KindExecution, Path: path, Err: err}
		}
		var run domain.RunArtifact
		if err := json.Unmarshal(b, &run); err != nil {
			s.log.Warn("runstore.skip_corrupt", zap.String("path", path), zap.Error(err))
			continue
		}
		list = append(list, entry{run: run, seq: collisionSeq(e.Name())})
	}

	// Newest first. Ties go to the later collision suffix.
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.run.StartedAt.Equal(b.run.StartedAt) {
			return a.run.StartedAt.After(b.run.StartedAt)
		}
		return a.seq > b.seq
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]domain.RunArtifact, 0, len(list))
	for _, e := range list {
		out = append(out, e.run)
	}
	return out, nil
}

// collisionSeq returns N for "<stem>-N.json" and 1 otherwise.
func collisionSeq(name string) int {
	stem := strings.TrimSuffix(name, ".json")
	i := strings.LastIndexByte(stem, '-')
	if i < 0 {
		return 1
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil || n < 2 {
		return 1
	}
	return n
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
