package ports

import (
	"context"

	"github.com/knockbot/knockbot/internal/domain"
)

// Publisher posts text to a social-media account.
// Implementations must not be called with empty text.
type Publisher interface {
	Publish(ctx context.Context, text string) (domain.PublishResult, error)
}
