package repositories

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable wraps any transport or infrastructure failure from the
// underlying store. Surfaced as-is to the caller; the aggregation reads are
// idempotent and safe for the caller to resubmit, so no retry happens here.
var ErrStoreUnavailable = errors.New("store unavailable")

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
