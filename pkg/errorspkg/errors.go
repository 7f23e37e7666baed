// Package errorspkg provides errors shared by every layer of the ledger.
package errorspkg

import "errors"

// ErrInternal hides storage and infrastructure failures from API clients.
// The cause is logged where it happens.
var ErrInternal = errors.New("internal error")
