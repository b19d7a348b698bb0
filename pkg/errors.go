package cache

// errors.go collects the sentinel error values for every failure kind the
// object cache can surface (§7 of the design). Every fetch either returns an
// object handle or a non-nil error wrapping one of these sentinels, so
// callers can branch with errors.Is instead of parsing strings — the
// idiomatic Go upgrade of "a human-readable static string".
//
// © 2025 sslcache authors. MIT License.

import "errors"

var (
	// ErrInvalidSyntax covers bad reference syntax, e.g. an "engine:"
	// reference missing its ":key-id" suffix.
	ErrInvalidSyntax = errors.New("invalid syntax")

	// ErrOpenFailed covers file-open or memory-buffer failures while
	// reading the raw bytes a loader needs to parse.
	ErrOpenFailed = errors.New("open failed")

	// ErrParseFailed covers the PEM/DER decoder rejecting input. Each
	// loader wraps this with a diagnostic identifying the failed step.
	ErrParseFailed = errors.New("parse failed")

	// ErrEmptyChain covers CRL and CA loaders whose input contained zero
	// objects.
	ErrEmptyChain = errors.New("chain contained no objects")

	// ErrEngineNotFound covers a PKEY ENGINE reference naming an engine id
	// that was never registered.
	ErrEngineNotFound = errors.New("engine not found")

	// ErrEngineKeyNotLoadable covers an engine rejecting a key id it was
	// asked to load.
	ErrEngineKeyNotLoadable = errors.New("engine key not loadable")

	// ErrCallbackDirection covers the password callback being invoked in
	// the wrong direction (encrypt instead of decrypt) — a programmer
	// error, not a data error.
	ErrCallbackDirection = errors.New("password callback invoked for encryption")
)
