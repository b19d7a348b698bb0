package cache

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"go.uber.org/zap"

	"github.com/stretchr/testify/require"
)

func TestCreatePrivateKeyPlainData(t *testing.T) {
	_, keyPEM := generateCertPEM(t, "plain.example.com")
	deps := &loadDeps{pwBufSize: defaultPasswordBufSize, logger: zap.NewNop()}

	key, err := classify(PKeyFamily, "data:"+keyPEM, "")
	require.NoError(t, err)

	obj, err := createPrivateKey(key, nil, deps)
	require.NoError(t, err)
	require.NotNil(t, obj.(*PrivateKeyHandle).Signer())
}

func TestCreatePrivateKeyPasswordRetryList(t *testing.T) {
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(ecKey)
	require.NoError(t, err)

	//lint:ignore SA1019 building an encrypted legacy PEM fixture on purpose.
	block, err := x509.EncryptPEMBlock(rand.Reader, "EC PRIVATE KEY", der, []byte("correct-horse"), x509.PEMCipherAES256) //nolint:staticcheck
	require.NoError(t, err)
	encrypted := string(pem.EncodeToMemory(block))

	deps := &loadDeps{pwBufSize: defaultPasswordBufSize, logger: zap.NewNop()}
	key, err := classify(PKeyFamily, "data:"+encrypted, "")
	require.NoError(t, err)

	_, err = createPrivateKey(key, []string{"wrong-one", "also-wrong"}, deps)
	require.ErrorIs(t, err, ErrParseFailed)

	obj, err := createPrivateKey(key, []string{"wrong-one", "correct-horse"}, deps)
	require.NoError(t, err)
	require.NotNil(t, obj.(*PrivateKeyHandle).Signer())
}

func TestCreatePrivateKeyPasswordTruncationWarns(t *testing.T) {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	deps := &loadDeps{pwBufSize: 4, logger: logger}
	buf := truncatePassword(deps, "way-too-long-password")
	require.Len(t, buf, 4)
}

func TestPasswordCallbackRejectsWriteDirection(t *testing.T) {
	buf := make([]byte, 16)
	_, err := PasswordCallback(buf, true, []byte("x"))
	require.ErrorIs(t, err, ErrCallbackDirection)

	n, err := PasswordCallback(buf, false, []byte("hunter2"))
	require.NoError(t, err)
	require.Equal(t, "hunter2", string(buf[:n]))
}

func TestCreateEngineKeyNotFound(t *testing.T) {
	deps := &loadDeps{engines: NewEngineRegistry()}
	key, err := classify(PKeyFamily, "engine:missing:key1", "")
	require.NoError(t, err)

	_, err = createPrivateKey(key, nil, deps)
	require.ErrorIs(t, err, ErrEngineNotFound)
}

// engineFunc adapts a plain function to the Engine interface for tests.
type engineFunc func(keyID string) (crypto.Signer, error)

func (f engineFunc) LoadKey(keyID string) (crypto.Signer, error) { return f(keyID) }

func TestCreateEngineKeySuccess(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	reg := NewEngineRegistry()
	reg.Register("softhsm", engineFunc(func(keyID string) (crypto.Signer, error) {
		require.Equal(t, "key1", keyID)
		return priv, nil
	}))

	deps := &loadDeps{engines: reg}
	key, err := classify(PKeyFamily, "engine:softhsm:key1", "")
	require.NoError(t, err)

	obj, err := createPrivateKey(key, nil, deps)
	require.NoError(t, err)
	require.Equal(t, priv, obj.(*PrivateKeyHandle).Signer())
}

func TestCreateEngineKeyMalformedReference(t *testing.T) {
	deps := &loadDeps{engines: NewEngineRegistry()}
	key, err := classify(PKeyFamily, "engine:missingcolon", "")
	require.NoError(t, err)

	_, err = createPrivateKey(key, nil, deps)
	require.ErrorIs(t, err, ErrInvalidSyntax)
}
