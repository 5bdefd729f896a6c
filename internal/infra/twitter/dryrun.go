package twitter

import (
	"context"

	"go.uber.org/zap"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

// DryRun stands in for Client in test mode. It validates the text and
// returns a zero result without any network traffic.
type DryRun struct {
	Log *zap.Logger
}

var _ ports.Publisher = DryRun{}

func (d DryRun) Publish(_ context.Context, text string) (domain.PublishResult, error) {
	if err := ValidateText(text); err != nil {
		return domain.PublishResult{}, err
	}
	if d.Log != nil {
		d.Log.Info("twitter.publish.dry_run", zap.Int("runes", len([]rune(text))))
	}
	return domain.PublishResult{}, nil
}
