package client

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Intake is the public side of the flow: submit an address, then wait for an
// operator to approve it before handing out the download link.
type Intake struct {
	Client       *Client
	DownloadURL  string
	PollInterval time.Duration
	Log          *zap.SugaredLogger
}

// Submit registers email and returns the lead id and its current state.
func (in *Intake) Submit(ctx context.Context, email string) (Submission, error) {
	return in.Client.Submit(ctx, email)
}

// AwaitApproval polls the lead until it is approved and returns the download
// link. A failed poll is logged and retried on the next tick. Polls never
// overlap: a slow answer delays the next tick rather than stacking requests.
func (in *Intake) AwaitApproval(ctx context.Context, leadID string) (string, error) {
	interval := in.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		lead, err := in.Client.Get(ctx, leadID)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			in.logger().Warnw("approval check failed", "lead_id", leadID, "error", err.Error())
			continue
		}

		if lead.Approved {
			return in.DownloadURL, nil
		}
	}
}

func (in *Intake) logger() *zap.SugaredLogger {
	if in.Log == nil {
		return zap.NewNop().Sugar()
	}
	return in.Log
}
