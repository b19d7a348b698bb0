package cache

// loader_crl.go implements the CRL loader (§4.2): like CERT, a sequence of
// one-or-more parsed objects; unlike CERT, no element is distinguished as a
// leaf, and an empty result is always an error.
//
// © 2025 sslcache authors. MIT License.

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

const pemBlockCRL = "X509 CRL"

func createCRLChain(key Key, _ []string, deps *loadDeps) (Object, error) {
	raw, err := readReferenceBytes(key, deps)
	if err != nil {
		return nil, err
	}

	var crls []*refCRL
	rest := raw
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != pemBlockCRL {
			continue
		}
		crl, perr := x509.ParseRevocationList(block.Bytes)
		if perr != nil {
			return nil, fmt.Errorf("%w: parsing CRL: %v", ErrParseFailed, perr)
		}
		crls = append(crls, newRefCRL(crl))
	}

	if len(crls) == 0 {
		return nil, fmt.Errorf("%w: CRL chain contained zero entries", ErrEmptyChain)
	}
	return &CRLChain{CRLs: crls}, nil
}
