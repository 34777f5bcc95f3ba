package wardrobe

import "errors"

var (
	// ErrNoImage is returned when an analysis or ingestion request carries
	// no image payload. The caller treats it as a no-op, not a crash: the
	// workflow stays idle and no store or classifier call is made.
	ErrNoImage = errors.New("no image provided")

	// ErrNoSession is returned when a mutation is attempted without a
	// signed-in user. Read paths skip instead of erroring.
	ErrNoSession = errors.New("no signed-in user")
)
