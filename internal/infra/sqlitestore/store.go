package sqlitestore

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// FileName is the database file created inside the runs directory.
const FileName = "history.db"

// Store keeps run history in a SQLite database.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ ports.ArtifactStore = (*Store)(nil)

// runRow is the table layout. Times are RFC 3339 text and the seed is
// decimal text, since SQLite integers are signed.
type runRow struct {
	ID         string `db:"id"`
	StartedAt  string `db:"started_at"`
	FinishedAt string `db:"finished_at"`
	Seed       string `db:"seed"`
	Variant    string `db:"variant"`
	FirstName  string `db:"first_name"`
	Surname    string `db:"surname"`
	Text       string `db:"text"`
	DryRun     bool   `db:"dry_run"`
	PostID     string `db:"post_id"`
	Permalink  string `db:"permalink"`
}

// Open connects to the database at path, creating the file and parent
// directory if needed, and applies pending migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &domain.OpError{Op: "sqlitestore.mkdir", Kind: domain.KindExecution, Path: path, Err: err}
	}

	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path))
	if err != nil {
		return nil, &domain.OpError{Op: "sqlitestore.connect", Kind: domain.KindExecution, Path: path, Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, &domain.OpError{Op: "sqlitestore.migrate", Kind: domain.KindExecution, Path: path, Err: err}
	}

	return &Store{db: db, now: time.Now}, nil
}

func migrate(db *sqlx.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return fmt.Errorf("setting dialect for migrations: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("applying migration: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing history db: %w", err)
	}
	return nil
}

func (s *Store) SaveRun(run domain.RunArtifact) (string, error) {
	if strings.TrimSpace(run.ID) == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", &domain.OpError{Op: "sqlitestore.id", Kind: domain.KindExecution, Err: err}
		}
		run.ID = id.String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = s.now()
	}

	row := toRow(run)
	const query = `
		INSERT INTO runs (id, started_at, finished_at, seed, variant, first_name, surname, text, dry_run, post_id, permalink)
		VALUES (:id, :started_at, :finished_at, :seed, :variant, :first_name, :surname, :text, :dry_run, :post_id, :permalink)`

	if _, err := s.db.NamedExec(query, row); err != nil {
		return "", &domain.OpError{Op: "sqlitestore.insert", Kind: domain.KindExecution, Err: err}
	}
	return run.ID, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
func (s *Store) ListRuns(limit int) ([]domain.RunArtifact, error) {
	query := `SELECT id, started_at, finished_at, seed, variant, first_name, surname, text, dry_run, post_id, permalink
		FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []runRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, &domain.OpError{Op: "sqlitestore.list", Kind: domain.KindExecution, Err: err}
	}

	out := make([]domain.RunArtifact, 0, len(rows))
	for _, r := range rows {
		run, err := fromRow(r)
		if err != nil {
			return nil, &domain.OpError{Op: "sqlitestore.decode", Kind: domain.KindExecution, Err: err}
		}
		out = append(out, run)
	}
	return out, nil
}

func toRow(run domain.RunArtifact) runRow {
	return runRow{
		ID:         run.ID,
		StartedAt:  formatTime(run.StartedAt),
		FinishedAt: formatTime(run.FinishedAt),
		Seed:       strconv.FormatUint(run.Seed, 10),
		Variant:    run.Variant,
		FirstName:  run.FirstName,
		Surname:    run.Surname,
		Text:       run.Text,
		DryRun:     run.DryRun,
		PostID:     run.PostID,
		Permalink:  run.Permalink,
	}
}

func fromRow(r runRow) (domain.RunArtifact, error) {
	started, err := parseTime(r.StartedAt)
	if err != nil {
		return domain.RunArtifact{}, fmt.Errorf("run %s started_at: %w", r.ID, err)
	}
	finished, err := parseTime(r.FinishedAt)
	if err != nil {
		return domain.RunArtifact{}, fmt.Errorf("run %s finished_at: %w", r.ID, err)
	}
	seed, err := strconv.ParseUint(r.Seed, 10, 64)
	if err != nil {
		return domain.RunArtifact{}, fmt.Errorf("run %s seed: %w", r.ID, err)
	}

	return domain.RunArtifact{
		ID:         r.ID,
		StartedAt:  started,
		FinishedAt: finished,
		Seed:       seed,
		Variant:    r.Variant,
		FirstName:  r.FirstName,
		Surname:    r.Surname,
		Text:       r.Text,
		DryRun:     r.DryRun,
		PostID:     r.PostID,
		Permalink:  r.Permalink,
	}, nil
}

// Fixed-width layout so text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s)
}
