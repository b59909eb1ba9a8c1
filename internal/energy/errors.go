package energy

import "errors"

// ErrInvalidInput is the single failure category of the estimator.
var ErrInvalidInput = errors.New("invalid energy estimate input")
