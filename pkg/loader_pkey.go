package cache

// loader_pkey.go implements the PKEY loader's three branches (§4.2): a
// hardware-engine key, a password-protected PEM key tried against an ordered
// password list, and a plain unencrypted PEM key.
//
// © 2025 sslcache authors. MIT License.

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"go.uber.org/zap"
)

func createPrivateKey(key Key, passwords []string, deps *loadDeps) (Object, error) {
	if key.Kind == KindEngine {
		return createEngineKey(key, deps)
	}
	return createFileOrDataKey(key, passwords, deps)
}

func createEngineKey(key Key, deps *loadDeps) (Object, error) {
	engineID, keyID, err := validateEngineReference(key.Bytes)
	if err != nil {
		return nil, err
	}
	if deps.engines == nil {
		return nil, fmt.Errorf("%w: %q", ErrEngineNotFound, engineID)
	}
	eng, release, err := deps.engines.acquire(engineID)
	defer release()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineNotFound, err)
	}
	signer, err := eng.LoadKey(keyID)
	if err != nil {
		return nil, fmt.Errorf("%w: engine %q key %q: %v", ErrEngineKeyNotLoadable, engineID, keyID, err)
	}
	return newPrivateKeyHandle(signer), nil
}

func createFileOrDataKey(key Key, passwords []string, deps *loadDeps) (Object, error) {
	raw, err := readReferenceBytes(key, deps)
	if err != nil {
		return nil, err
	}

	if len(passwords) == 0 {
		return parsePrivateKeyPEM(raw, nil)
	}

	var lastErr error
	for _, candidate := range passwords {
		pw := truncatePassword(deps, candidate)
		// Between attempts the source is conceptually "reset" and parser
		// errors cleared (§4.2); since raw is immutable and pem.Decode is
		// re-run from scratch each iteration, that reset is implicit here.
		obj, perr := parsePrivateKeyPEM(raw, pw)
		if perr == nil {
			return obj, nil
		}
		lastErr = perr
	}
	return nil, lastErr
}

func parsePrivateKeyPEM(raw, password []byte) (Object, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM data", ErrParseFailed)
	}

	der := block.Bytes
	if password != nil {
		//lint:ignore SA1019 legacy OpenSSL-style "ENCRYPTED" PEM headers are
		// exactly what the password-list branch exists to decrypt; no
		// non-deprecated stdlib replacement covers this format, and no
		// third-party library in the retrieval pack offers one either.
		if x509.IsEncryptedPEMBlock(block) { //nolint:staticcheck
			decrypted, derr := x509.DecryptPEMBlock(block, password) //nolint:staticcheck
			if derr != nil {
				return nil, fmt.Errorf("%w: decrypting private key: %v", ErrParseFailed, derr)
			}
			der = decrypted
		}
	}

	key, err := parseAnyPrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("%w: parsed key does not implement crypto.Signer", ErrParseFailed)
	}
	return newPrivateKeyHandle(signer), nil
}

// parseAnyPrivateKey tries every DER private-key encoding Go's stdlib
// understands, since a PEM "PRIVATE KEY" block may carry PKCS#8, PKCS#1, or
// SEC1 (EC) content depending on how it was produced.
func parseAnyPrivateKey(der []byte) (any, error) {
	if k, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return k, nil
	}
	if k, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return k, nil
	}
	if k, err := x509.ParseECPrivateKey(der); err == nil {
		return k, nil
	}
	return nil, fmt.Errorf("unrecognized private key encoding")
}

// PasswordCallback mimics the shape of the OpenSSL-style password callback
// the spec describes (§4.2, §7.6): it copies at most len(buf) bytes of
// candidate into buf, and refuses outright if invoked in the write
// direction, which is always a programmer error for a cache that only ever
// decrypts.
func PasswordCallback(buf []byte, writing bool, candidate []byte) (int, error) {
	if writing {
		return 0, ErrCallbackDirection
	}
	return copy(buf, candidate), nil
}

// truncatePassword copies at most deps.pwBufSize bytes of candidate,
// logging a truncation warning if the candidate was longer (§4.2).
func truncatePassword(deps *loadDeps, candidate string) []byte {
	buf := make([]byte, deps.pwBufSize)
	n, _ := PasswordCallback(buf, false, []byte(candidate))
	if len(candidate) > deps.pwBufSize {
		deps.logger.Warn("password candidate truncated to buffer size",
			zap.Int("candidate_len", len(candidate)),
			zap.Int("buf_size", deps.pwBufSize))
	}
	return buf[:n]
}
