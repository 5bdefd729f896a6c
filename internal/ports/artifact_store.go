package ports

import "github.com/knockbot/knockbot/internal/domain"

// ArtifactStore persists run artifacts.
type ArtifactStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
	// ListRuns returns the most recent runs first.
	ListRuns(limit int) ([]domain.RunArtifact, error)
}
