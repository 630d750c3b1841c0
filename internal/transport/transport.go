// Package transport wraps the email and spreadsheet collaborators behind
// small interfaces with a shared bounded-retry policy. The core only ever
// sees boolean-style success or failure after retries are exhausted.
package transport

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/akm592/coldreach/internal/types"
)

// Mailer sends one outbound message.
type Mailer interface {
	Send(ctx context.Context, msg types.OutboundMessage) error
}

// ReplyChecker looks for an unread reply from the given address and returns
// its text. found is false when the inbox holds nothing new from them.
type ReplyChecker interface {
	Check(ctx context.Context, fromEmail string) (body string, found bool, err error)
}

// SheetSyncer replaces the remote sheet contents with the given rows.
type SheetSyncer interface {
	Sync(ctx context.Context, rows [][]string) error
}

// Retry policy shared by all transports: bounded attempts with exponential
// backoff plus jitter.
const maxAttempts = 3

// backoffUnit scales the exponential backoff and its jitter; tests shrink it.
var backoffUnit = time.Second

// withRetry runs op up to maxAttempts times, sleeping 2^attempt seconds
// plus jitter between attempts. Context cancellation cuts the wait short
// and returns immediately.
func withRetry(ctx context.Context, label string, op func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		log.Printf("[TRANSPORT] %s attempt %d/%d failed: %v", label, attempt+1, maxAttempts, lastErr)

		if attempt == maxAttempts-1 {
			break
		}
		backoff := time.Duration(1<<attempt)*backoffUnit + jitter()
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", label, maxAttempts, lastErr)
}

// jitter returns a random delay between 0.5 and 1.5 backoff units.
func jitter() time.Duration {
	return backoffUnit/2 + time.Duration(rand.Int63n(int64(backoffUnit)))
}
