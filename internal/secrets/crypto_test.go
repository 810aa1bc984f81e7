package secrets

import (
	"bytes"
	"encoding/base64"
	"testing"

	kerrors "github.com/PolarWolf314/agentg/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	c, err := New(key)
	require.NoError(t, err)
	return c
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	inputs := [][]byte{
		{},
		[]byte("a"),
		[]byte("You are Agent-G, a helpful assistant."),
		bytes.Repeat([]byte{0x00, 0xff}, 4096),
	}

	for _, plaintext := range inputs {
		ciphertext, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		assert.Len(t, ciphertext, len(plaintext)+Overhead)

		got, err := c.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	c := newTestCipher(t)
	plaintext := []byte("same input")

	first, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	second, err := c.Encrypt(plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecrypt_WrongKey(t *testing.T) {
	a := newTestCipher(t)
	b := newTestCipher(t)

	ciphertext, err := a.Encrypt([]byte("secret profile"))
	require.NoError(t, err)

	plaintext, err := b.Decrypt(ciphertext)
	assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)
	assert.Nil(t, plaintext)
}

func TestDecrypt_Tampered(t *testing.T) {
	c := newTestCipher(t)
	ciphertext, err := c.Encrypt([]byte("page content"))
	require.NoError(t, err)

	tampered := append([]byte(nil), ciphertext...)
	tampered[len(tampered)-1] ^= 0x01

	plaintext, err := c.Decrypt(tampered)
	assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)
	assert.Nil(t, plaintext)
}

func TestDecrypt_Truncated(t *testing.T) {
	c := newTestCipher(t)
	ciphertext, err := c.Encrypt([]byte("page content"))
	require.NoError(t, err)

	for _, n := range []int{0, 10, NonceSize, Overhead - 1, len(ciphertext) - 1} {
		plaintext, err := c.Decrypt(ciphertext[:n])
		assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed, "length %d", n)
		assert.Nil(t, plaintext)
	}
}

func TestDecrypt_ForeignFormat(t *testing.T) {
	c := newTestCipher(t)
	_, err := c.Decrypt([]byte(`{"preferred_name": "plaintext json is not a blob of ours"}`))
	assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)
}

func TestNew_MissingKey(t *testing.T) {
	_, err := New("   ")
	assert.ErrorIs(t, err, kerrors.ErrMissingKey)
}

func TestNew_InvalidKeyFormat(t *testing.T) {
	cases := map[string]string{
		"not base64": "this is not base64 !!!",
		"too short":  base64.URLEncoding.EncodeToString(make([]byte, 16)),
		"too long":   base64.URLEncoding.EncodeToString(make([]byte, 48)),
	}
	for name, key := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(key)
			assert.ErrorIs(t, err, kerrors.ErrInvalidKeyFormat)
		})
	}
}

func TestNew_AcceptsStandardAndUnpaddedEncodings(t *testing.T) {
	raw := bytes.Repeat([]byte{0xfb}, KeySize)
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawURLEncoding, base64.RawStdEncoding} {
		c, err := New(enc.EncodeToString(raw))
		require.NoError(t, err)

		canonical, err := New(base64.URLEncoding.EncodeToString(raw))
		require.NoError(t, err)

		blob, err := c.Encrypt([]byte("x"))
		require.NoError(t, err)
		got, err := canonical.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, []byte("x"), got)
	}
}

func TestFromEnv(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	t.Setenv("AGENTG_TEST_KEY", key)
	c, err := FromEnv("AGENTG_TEST_KEY")
	require.NoError(t, err)
	assert.NotNil(t, c)

	t.Setenv("AGENTG_TEST_KEY", "")
	_, err = FromEnv("AGENTG_TEST_KEY")
	assert.ErrorIs(t, err, kerrors.ErrMissingKey)
}

func TestGenerateKey_Format(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	assert.Len(t, key, 44)

	raw, err := base64.URLEncoding.DecodeString(key)
	require.NoError(t, err)
	assert.Len(t, raw, KeySize)
}
