package usage

import "errors"

// ErrLimitReached indicates the user exhausted their generation credits.
var ErrLimitReached = errors.New("limit reached")
