package cache

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestCreateCertChainFromData(t *testing.T) {
	certPEM, _ := generateCertPEM(t, "leaf.example.com")
	deps := &loadDeps{}

	key, err := classify(CertFamily, "data:"+certPEM, "")
	require.NoError(t, err)

	obj, err := createCertChain(key, nil, deps)
	require.NoError(t, err)
	chain := obj.(*CertChain)
	require.Len(t, chain.Certificates(), 1)
	require.Equal(t, "leaf.example.com", chain.Certificates()[0].Subject.CommonName)
}

func TestCreateCertChainFromPath(t *testing.T) {
	certPEM, _ := generateCertPEM(t, "path.example.com")
	path := writeTempFile(t, "leaf.pem", certPEM)
	deps := &loadDeps{}

	key, err := classify(CertFamily, path, "")
	require.NoError(t, err)

	obj, err := createCertChain(key, nil, deps)
	require.NoError(t, err)
	require.Equal(t, "path.example.com", obj.(*CertChain).Certificates()[0].Subject.CommonName)
}

func TestCreateCertChainEmptyIsParseError(t *testing.T) {
	deps := &loadDeps{}
	key, _ := classify(CertFamily, "data:not a cert", "")
	_, err := createCertChain(key, nil, deps)
	require.ErrorIs(t, err, ErrParseFailed)
}

func TestCreateCAChainEmptyIsEmptyChainError(t *testing.T) {
	deps := &loadDeps{}
	key, _ := classify(CAFamily, "data:not a cert", "")
	_, err := createCAChain(key, nil, deps)
	require.ErrorIs(t, err, ErrEmptyChain)
}

func TestCreateCertChainOpenFailed(t *testing.T) {
	deps := &loadDeps{}
	key, _ := classify(CertFamily, "/nonexistent/path.pem", "")
	_, err := createCertChain(key, nil, deps)
	require.ErrorIs(t, err, ErrOpenFailed)
}

func TestObjectRefCountingIndependence(t *testing.T) {
	certPEM, _ := generateCertPEM(t, "ref.example.com")
	deps := &loadDeps{}
	key, _ := classify(CertFamily, "data:"+certPEM, "")

	obj, err := createCertChain(key, nil, deps)
	require.NoError(t, err)
	chain := obj.(*CertChain)

	ref2, err := refChain(chain)
	require.NoError(t, err)
	chain2 := ref2.(*CertChain)

	// compare the parsed subject element-by-element rather than the raw DER:
	// a future change to re-parse instead of alias should still pass as long
	// as the decoded identity fields agree.
	diff := cmp.Diff(chain.Certificates()[0].Subject, chain2.Certificates()[0].Subject,
		cmpopts.IgnoreFields(chain.Certificates()[0].Subject, "Names", "ExtraNames"))
	require.Empty(t, diff)

	freeChain(chain)
	// chain2 must remain independently valid after chain's reference is
	// released — it still holds its own up-ref.
	require.NotEmpty(t, chain2.Certificates())
	freeChain(chain2)
}
