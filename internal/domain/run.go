package domain

import "time"

// PublishResult identifies a published post.
type PublishResult struct {
	PostID    string `json:"post_id"`
	Permalink string `json:"permalink"`
}

// RunArtifact is the persisted record of one invocation.
type RunArtifact struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Seed      uint64 `json:"seed"`
	Variant   string `json:"variant"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Text      string `json:"text"`

	DryRun    bool   `json:"dry_run"`
	PostID    string `json:"post_id,omitempty"`
	Permalink string `json:"permalink,omitempty"`
}
