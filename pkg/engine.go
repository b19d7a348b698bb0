package cache

// engine.go implements the hardware-engine collaborator the PKEY loader's
// ENGINE branch talks to (§4.2). The engine itself — a PKCS#11 module, an
// HSM driver, a TPM — is an external collaborator exactly like the PEM/DER
// parser (§1); this package only defines the narrow interface the loader
// needs and a process-local registry an embedder populates at startup.
//
// © 2025 sslcache authors. MIT License.

import "crypto"

// Engine loads a private key held by an external key store, identified by an
// engine-specific key id (the part after the second colon in an
// "engine:engine-id:key-id" reference).
type Engine interface {
	LoadKey(keyID string) (crypto.Signer, error)
}

// EngineRegistry maps engine ids to Engine implementations. It is built once
// at startup by the embedder and handed to the cache via WithEngines; the
// cache itself only ever reads it, so — like every other structure here — it
// needs no locking under the single-threaded-per-cycle model (§5).
type EngineRegistry struct {
	engines map[string]Engine
}

// NewEngineRegistry returns an empty registry.
func NewEngineRegistry() *EngineRegistry {
	return &EngineRegistry{engines: make(map[string]Engine)}
}

// Register associates id with eng, overwriting any previous registration.
func (r *EngineRegistry) Register(id string, eng Engine) {
	r.engines[id] = eng
}

// acquire looks up id and returns a release func that must run regardless of
// whether the subsequent key load succeeds (§4.2: "release the engine handle
// regardless of success"). Real engine bindings may hold a handle open
// across the lookup; this registry has nothing to release, so the returned
// func is a no-op, but the call site shape matches what a cgo-backed engine
// binding would require.
func (r *EngineRegistry) acquire(id string) (Engine, func(), error) {
	eng, ok := r.engines[id]
	if !ok {
		return nil, func() {}, ErrEngineNotFound
	}
	return eng, func() {}, nil
}
