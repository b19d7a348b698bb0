package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigCacheFetchHitIncrementsRefNotReparse(t *testing.T) {
	certPEM, _ := generateCertPEM(t, "config.example.com")
	gen := NewGeneration(nil)
	defer gen.Teardown()

	ref := "data:" + certPEM
	obj1, err := gen.Config.Fetch(CertFamily, ref, nil)
	require.NoError(t, err)
	obj2, err := gen.Config.Fetch(CertFamily, ref, nil)
	require.NoError(t, err)

	c1 := obj1.(*CertChain)
	c2 := obj2.(*CertChain)
	require.Equal(t, c1.Certificates()[0].Raw, c2.Certificates()[0].Raw)
	require.Equal(t, 1, gen.Config.index.len())
}

func TestConfigCacheInheritsUnchangedPathAcrossGenerations(t *testing.T) {
	certPEM, _ := generateCertPEM(t, "inherit.example.com")
	path := writeTempFile(t, "inherit.pem", certPEM)

	genA := NewGeneration(nil, WithInherit(true))
	_, err := genA.Config.Fetch(CertFamily, path, nil)
	require.NoError(t, err)

	genB := NewGeneration(genA, WithInherit(true))
	_, err = genB.Config.Fetch(CertFamily, path, nil)
	require.NoError(t, err)

	entA, ok := genA.Config.index.find(CertFamily, mustKey(t, CertFamily, path))
	require.True(t, ok)
	entB, ok := genB.Config.index.find(CertFamily, mustKey(t, CertFamily, path))
	require.True(t, ok)

	// Adopted objects share the identical parsed certificate, not a
	// re-parsed copy, proving inheritance (not re-creation) occurred.
	require.Same(t, entA.object.(*CertChain).Certs[0].cert, entB.object.(*CertChain).Certs[0].cert)

	genA.Teardown()
	genB.Teardown()
}

func TestConfigCacheDoesNotInheritChangedPath(t *testing.T) {
	certPEM1, _ := generateCertPEM(t, "before.example.com")
	path := writeTempFile(t, "rotating.pem", certPEM1)

	genA := NewGeneration(nil, WithInherit(true))
	_, err := genA.Config.Fetch(CertFamily, path, nil)
	require.NoError(t, err)

	// Advance mtime so the second generation sees a changed file, even if
	// the content generator produced identical bytes by coincidence.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))
	certPEM2, _ := generateCertPEM(t, "after.example.com")
	require.NoError(t, os.WriteFile(path, []byte(certPEM2), 0o600))
	require.NoError(t, os.Chtimes(path, future, future))

	genB := NewGeneration(genA, WithInherit(true))
	obj, err := genB.Config.Fetch(CertFamily, path, nil)
	require.NoError(t, err)
	require.Equal(t, "after.example.com", obj.(*CertChain).Certificates()[0].Subject.CommonName)

	genA.Teardown()
	genB.Teardown()
}

func TestConfigCacheInheritDisabledAlwaysReparses(t *testing.T) {
	certPEM, _ := generateCertPEM(t, "noinherit.example.com")
	path := writeTempFile(t, "noinherit.pem", certPEM)

	genA := NewGeneration(nil, WithInherit(true))
	_, err := genA.Config.Fetch(CertFamily, path, nil)
	require.NoError(t, err)

	genB := NewGeneration(genA, WithInherit(false))
	_, err = genB.Config.Fetch(CertFamily, path, nil)
	require.NoError(t, err)

	entA, _ := genA.Config.index.find(CertFamily, mustKey(t, CertFamily, path))
	entB, _ := genB.Config.index.find(CertFamily, mustKey(t, CertFamily, path))
	require.NotSame(t, entA.object.(*CertChain).Certs[0].cert, entB.object.(*CertChain).Certs[0].cert)

	genA.Teardown()
	genB.Teardown()
}

func TestConfigCacheBypassesIndexForPasswordProtectedKey(t *testing.T) {
	_, keyPEM := generateCertPEM(t, "bypass.example.com")
	path := writeTempFile(t, "bypass.key", keyPEM)

	gen := NewGeneration(nil)
	defer gen.Teardown()

	_, err := gen.Config.Fetch(PKeyFamily, path, []string{"some-password"})
	require.NoError(t, err)
	require.Equal(t, 0, gen.Config.index.len(), "PKEY fetch with passwords must never populate the index")
}

func mustKey(t *testing.T, family Family, reference string) Key {
	t.Helper()
	k, err := classify(family, reference, "")
	require.NoError(t, err)
	return k
}
