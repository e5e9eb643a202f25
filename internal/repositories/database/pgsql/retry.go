package pgsql

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"strings"
	"time"

	"github.com/finbase/corebanking/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// Transient SQLSTATE codes: connection failures (class 08), admin shutdown /
// crash shutdown / cannot connect (57P01..57P03), serialization failure
// (40001) and deadlock detected (40P01). Everything else, constraint
// violations included, is permanent and must not be retried.
var transientCodes = map[string]bool{
	"57P01": true,
	"57P02": true,
	"57P03": true,
	"40001": true,
	"40P01": true,
}

// IsTransient reports whether err is a storage fault that is safe to retry by
// re-running the whole transaction against fresh reads.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "08") {
			return true
		}
		return transientCodes[pgErr.Code]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return pgconn.SafeToRetry(err)
}

// WithRetry runs fn up to maxAttempts times, retrying only on transient
// errors with jittered exponential backoff. Context cancellation stops the
// retry loop immediately. A transient fault that survives every attempt is
// surfaced as apperrors.ErrOperationFailed.
func WithRetry(ctx context.Context, maxAttempts int, fn func(ctx context.Context) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !IsTransient(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		backoff := time.Duration(attempt) * 100 * time.Millisecond
		backoff += time.Duration(rand.Int63n(int64(50 * time.Millisecond)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%w: transient storage fault persisted after %d attempts: %w", apperrors.ErrOperationFailed, maxAttempts, err)
}
