package cache

// object.go implements the refcounted parsed objects the cache hands out
// (§3 Entry, §5 Resource ownership). Go's garbage collector normally makes
// manual reference counting unnecessary, but the cache's contract requires
// it anyway: a caller's handle must stay valid independently of the cache
// entry that produced it, including after that entry is evicted while the
// handle is still held (Invariant 2 and 5, §3). We simulate the
// OpenSSL-style "up-ref / free" discipline the spec describes on top of
// ordinary Go values using small atomic counters.
//
// Chain objects (CERT/CRL/CA) are containers whose *elements* are
// independently reference-counted; ref() duplicates the container shell and
// bumps each element, matching §5's "Chain objects ... are containers whose
// elements are independently reference-counted."
//
// © 2025 sslcache authors. MIT License.

import (
	"crypto"
	"crypto/x509"
	"sync/atomic"
)

// Object is the opaque handle type returned to callers. Its concrete type
// is always one of *CertChain, *PrivateKeyHandle, or *CRLChain depending on
// the family that produced it.
type Object interface {
	family() Family
}

/* -------------------------------------------------------------------------
   Certificate / CA chains
   ------------------------------------------------------------------------- */

// refCert is one reference-counted certificate. Several refCert values can
// share the same underlying *x509.Certificate and refcount pointer; each
// represents one independent reference.
type refCert struct {
	cert *x509.Certificate
	rc   *int32
}

func newRefCert(c *x509.Certificate) *refCert {
	n := int32(1)
	return &refCert{cert: c, rc: &n}
}

func (r *refCert) upRef() *refCert {
	atomic.AddInt32(r.rc, 1)
	return &refCert{cert: r.cert, rc: r.rc}
}

func (r *refCert) release() { atomic.AddInt32(r.rc, -1) }

// CertChain is the object produced by the CERT and CA families: an ordered,
// non-empty sequence of certificates (§4.2).
type CertChain struct {
	Certs  []*refCert
	leaf   Family // CertFamily or CAFamily, recorded for diagnostics only
}

func (c *CertChain) family() Family { return c.leaf }

// Certificates returns the parsed certificates in load order. The leaf (for
// CertFamily chains) is Certificates()[0].
func (c *CertChain) Certificates() []*x509.Certificate {
	out := make([]*x509.Certificate, len(c.Certs))
	for i, r := range c.Certs {
		out[i] = r.cert
	}
	return out
}

func (c *CertChain) ref() *CertChain {
	out := make([]*refCert, len(c.Certs))
	for i, r := range c.Certs {
		out[i] = r.upRef()
	}
	return &CertChain{Certs: out, leaf: c.leaf}
}

func (c *CertChain) free() {
	for _, r := range c.Certs {
		r.release()
	}
}

func refChain(obj Object) (Object, error) { return obj.(*CertChain).ref(), nil }
func freeChain(obj Object)                { obj.(*CertChain).free() }

/* -------------------------------------------------------------------------
   Private keys
   ------------------------------------------------------------------------- */

type refKey struct {
	key crypto.Signer
	rc  *int32
}

// PrivateKeyHandle is the object produced by the PKEY family.
type PrivateKeyHandle struct {
	ref *refKey
}

func (k *PrivateKeyHandle) family() Family { return PKeyFamily }

// Signer returns the parsed private key.
func (k *PrivateKeyHandle) Signer() crypto.Signer { return k.ref.key }

func newPrivateKeyHandle(signer crypto.Signer) *PrivateKeyHandle {
	n := int32(1)
	return &PrivateKeyHandle{ref: &refKey{key: signer, rc: &n}}
}

func refPrivateKey(obj Object) (Object, error) {
	k := obj.(*PrivateKeyHandle)
	atomic.AddInt32(k.ref.rc, 1)
	return &PrivateKeyHandle{ref: k.ref}, nil
}

func freePrivateKey(obj Object) {
	k := obj.(*PrivateKeyHandle)
	atomic.AddInt32(k.ref.rc, -1)
}

/* -------------------------------------------------------------------------
   CRL chains
   ------------------------------------------------------------------------- */

type refCRL struct {
	crl *x509.RevocationList
	rc  *int32
}

func newRefCRL(c *x509.RevocationList) *refCRL {
	n := int32(1)
	return &refCRL{crl: c, rc: &n}
}

func (r *refCRL) upRef() *refCRL {
	atomic.AddInt32(r.rc, 1)
	return &refCRL{crl: r.crl, rc: r.rc}
}

func (r *refCRL) release() { atomic.AddInt32(r.rc, -1) }

// CRLChain is the object produced by the CRL family: an ordered, non-empty
// sequence of revocation lists (§4.2).
type CRLChain struct {
	CRLs []*refCRL
}

func (c *CRLChain) family() Family { return CRLFamily }

// RevocationLists returns the parsed CRLs in load order.
func (c *CRLChain) RevocationLists() []*x509.RevocationList {
	out := make([]*x509.RevocationList, len(c.CRLs))
	for i, r := range c.CRLs {
		out[i] = r.crl
	}
	return out
}

func (c *CRLChain) ref() *CRLChain {
	out := make([]*refCRL, len(c.CRLs))
	for i, r := range c.CRLs {
		out[i] = r.upRef()
	}
	return &CRLChain{CRLs: out}
}

func (c *CRLChain) free() {
	for _, r := range c.CRLs {
		r.release()
	}
}

func refCRLChain(obj Object) (Object, error) { return obj.(*CRLChain).ref(), nil }
func freeCRLChain(obj Object)                { obj.(*CRLChain).free() }
