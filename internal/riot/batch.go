package riot

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/EmmanuelCobian/league-wrapped/internal/model"
)

// FetchMatches fetches every id in batches of cfg.BatchSize concurrent
// requests, pausing cfg.BatchDelay between batches. Results keep the order
// of ids. The first failure aborts the batch and is returned; no partial
// result is returned with it.
func (c *Client) FetchMatches(ctx context.Context, ids []string) ([]model.MatchRecord, error) {
	out := make([]model.MatchRecord, len(ids))
	size := c.cfg.BatchSize

	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		c.log.Debug("fetching match batch",
			zap.Int("batch", start/size+1),
			zap.Int("size", end-start),
			zap.Int("total", len(ids)))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				m, err := c.GetMatch(gctx, ids[i])
				if err != nil {
					return err
				}
				out[i] = *m
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		if end < len(ids) && c.cfg.BatchDelay > 0 {
			if err := sleep(ctx, c.cfg.BatchDelay); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
