package ecsforge

import (
	"io"

	"github.com/rs/zerolog"
)

// newNopLogger returns a logger that discards everything, the default for
// a World that wasn't given one. Hot paths (Spawn, Despawn, InsertBundle)
// only ever emit at debug level, so a silent default costs nothing beyond
// a no-op write.
func newNopLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}
