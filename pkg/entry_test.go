package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDetachedEntryIsSelfLooped(t *testing.T) {
	k, _ := classify(CertFamily, "data:x", "")
	e := newDetachedEntry(k, CertFamily)
	require.True(t, e.detached())
	require.Same(t, e, e.next)
	require.Same(t, e, e.prev)
}

func TestBypassesCacheOnlyForPKeyWithPasswords(t *testing.T) {
	require.True(t, bypassesCache(PKeyFamily, []string{"x"}))
	require.False(t, bypassesCache(PKeyFamily, nil))
	require.False(t, bypassesCache(CertFamily, []string{"x"}))
}
