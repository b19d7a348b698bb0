package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGenerationAssignsUniqueID(t *testing.T) {
	genA := NewGeneration(nil)
	genB := NewGeneration(nil)
	defer genA.Teardown()
	defer genB.Teardown()

	require.NotEqual(t, genA.ID, genB.ID)
}

func TestGenerationTeardownFreesConfigCache(t *testing.T) {
	certPEM, _ := generateCertPEM(t, "gen-teardown.example.com")
	gen := NewGeneration(nil)
	_, err := gen.Config.Fetch(CertFamily, "data:"+certPEM, nil)
	require.NoError(t, err)
	require.Equal(t, 1, gen.Config.index.len())

	gen.Teardown()
	// teardown frees every object's cache reference but the index
	// structure itself is left as-is; the arena backing it has been
	// released, so re-using gen after Teardown is a caller error, not a
	// scenario this test exercises further.
}
