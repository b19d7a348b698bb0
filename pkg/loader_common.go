package cache

// loader_common.go holds the bits every family loader shares: the
// dependency bag each create() receives, and the DATA/PATH byte-reading
// logic common to CERT, CA, CRL, and the non-ENGINE branch of PKEY.
//
// © 2025 sslcache authors. MIT License.

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// loadDeps bundles the collaborators a create() call may need. It plays the
// role the teacher's config struct plays for the whole cache — a small,
// read-only bag of knobs threaded through without a context.Context, since
// §5 rules out cancellation entirely ("Cancellation: None").
type loadDeps struct {
	pathPrefix string
	engines    *EngineRegistry
	pwBufSize  int
	logger     *zap.Logger
}

// readReferenceBytes returns the raw bytes a CERT/CA/CRL/PKEY loader should
// feed to its parser: the inline PEM payload for a DATA key (with the
// "data:" marker stripped), or the file contents for a PATH key.
func readReferenceBytes(key Key, _ *loadDeps) ([]byte, error) {
	switch key.Kind {
	case KindData:
		return stripDataPrefix(key.Bytes), nil
	case KindPath:
		b, err := os.ReadFile(string(key.Bytes))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: family does not support key kind %s", ErrInvalidSyntax, key.Kind)
	}
}
