package cache

// loader_cert.go implements the CERT and CA loaders (§4.2). Both read a PEM
// stream and parse every certificate it contains into an ordered chain; they
// differ only in whether the first certificate is distinguished as "the
// leaf" and whether an empty result is an error.
//
// © 2025 sslcache authors. MIT License.

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

const pemBlockCertificate = "CERTIFICATE"

// createCertChain is the CERT family's create(). The leaf is read first;
// reaching end-of-input after the leaf was read is normal termination, not a
// parse failure (§4.2).
func createCertChain(key Key, _ []string, deps *loadDeps) (Object, error) {
	return createChain(key, CertFamily, false, deps)
}

// createCAChain is the CA family's create(). No certificate is distinguished
// as the leaf, and a zero-length result is an error (§4.2).
func createCAChain(key Key, _ []string, deps *loadDeps) (Object, error) {
	return createChain(key, CAFamily, true, deps)
}

func createChain(key Key, family Family, emptyIsError bool, deps *loadDeps) (Object, error) {
	raw, err := readReferenceBytes(key, deps)
	if err != nil {
		return nil, err
	}

	var certs []*refCert
	rest := raw
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break // EOF — normal termination once we've started reading.
		}
		if block.Type != pemBlockCertificate {
			continue // skip auxiliary PEM blocks (bag attributes, etc).
		}
		step := "leaf"
		if family == CAFamily || len(certs) > 0 {
			step = "chain"
		}
		cert, perr := x509.ParseCertificate(block.Bytes)
		if perr != nil {
			return nil, fmt.Errorf("%w: parsing %s certificate: %v", ErrParseFailed, step, perr)
		}
		certs = append(certs, newRefCert(cert))
	}

	if len(certs) == 0 {
		if emptyIsError {
			return nil, fmt.Errorf("%w: CA chain contained zero certificates", ErrEmptyChain)
		}
		return nil, fmt.Errorf("%w: no leaf certificate found", ErrParseFailed)
	}
	return &CertChain{Certs: certs, leaf: family}, nil
}
