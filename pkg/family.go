package cache

// family.go implements the "tagged variant with an associated capability set"
// design note (§9): Family is data, not an interface hierarchy, and each
// value dispatches to a fixed {create, ref, free} triple via opsFor. This is
// the generalisation of the teacher's functional-option registration pattern
// (config.go's WeightFn/EjectCallback slots) to a closed set of four cached
// object kinds instead of an open user-supplied type.
//
// © 2025 sslcache authors. MIT License.

// Family is one of the four object classes the cache can hold.
type Family uint8

const (
	CertFamily Family = iota
	PKeyFamily
	CRLFamily
	CAFamily
)

func (f Family) String() string {
	switch f {
	case CertFamily:
		return "cert"
	case PKeyFamily:
		return "pkey"
	case CRLFamily:
		return "crl"
	case CAFamily:
		return "ca"
	default:
		return "unknown"
	}
}

// familyOps is the loader triple from §4.2: parse, bump a reference, release
// a reference. create and free always see the cache's own reference; ref
// always produces a new, independently-released caller reference.
type familyOps struct {
	create func(key Key, passwords []string, deps *loadDeps) (Object, error)
	ref    func(Object) (Object, error)
	free   func(Object)
}

// opsFor returns the loader triple for a family. Panics on an unknown family
// value, which can only happen from a bug inside this package — Family is
// not an extension point for callers.
func opsFor(f Family) familyOps {
	switch f {
	case CertFamily:
		return familyOps{create: createCertChain, ref: refChain, free: freeChain}
	case CAFamily:
		return familyOps{create: createCAChain, ref: refChain, free: freeChain}
	case PKeyFamily:
		return familyOps{create: createPrivateKey, ref: refPrivateKey, free: freePrivateKey}
	case CRLFamily:
		return familyOps{create: createCRLChain, ref: refCRLChain, free: freeCRLChain}
	default:
		panic("sslcache: unknown family")
	}
}

// bypassesCache implements the PKEY-with-passwords cache bypass shared by
// both the configuration cache (§4.4 step 2) and the connection cache
// (§4.5 step 1): the same key file under different passwords must not
// collide, and passwords must not be retained in a cache key.
func bypassesCache(family Family, passwords []string) bool {
	return family == PKeyFamily && len(passwords) > 0
}
