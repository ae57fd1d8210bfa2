package election

import "errors"

// ErrRaceNotFound reports a race id absent from an otherwise-successful
// dataset fetch.
var ErrRaceNotFound = errors.New("race not found")
