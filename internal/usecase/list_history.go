package usecase

import (
	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

type ListHistory struct {
	store ports.ArtifactStore
}

func NewListHistory(s ports.ArtifactStore) *ListHistory {
	return &ListHistory{store: s}
}

// Execute returns the newest runs first. A nil store means history is off.
func (uc *ListHistory) Execute(limit int) ([]domain.RunArtifact, error) {
	if uc.store == nil {
		return []domain.RunArtifact{}, nil
	}
	return uc.store.ListRuns(limit)
}
