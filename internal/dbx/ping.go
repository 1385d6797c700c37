package dbx

import (
	"context"
	"database/sql"
	"time"

	"github.com/sethvargo/go-retry"
)

// pingBackoff is a seam for tests.
var pingBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
}

// PingWithRetry pings db until it answers or the backoff gives up. The last
// ping error is returned.
func PingWithRetry(ctx context.Context, db *sql.DB) error {
	return retry.Do(ctx, pingBackoff(), func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
