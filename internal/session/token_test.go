package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_SignAndVerify(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	token, err := signer.Sign("abc123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, signer.Verify("abc123", token))
}

func TestSigner_RejectsWrongSession(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	token, err := signer.Sign("abc123")
	require.NoError(t, err)

	assert.ErrorIs(t, signer.Verify("other", token), ErrInvalidToken)
}

func TestSigner_RejectsTamperedToken(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	token, err := signer.Sign("abc123")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	assert.ErrorIs(t, signer.Verify("abc123", tampered), ErrInvalidToken)
}

func TestSigner_RejectsForeignSecret(t *testing.T) {
	signer, err := NewSigner("secret-one")
	require.NoError(t, err)
	other, err := NewSigner("secret-two")
	require.NoError(t, err)

	token, err := signer.Sign("abc123")
	require.NoError(t, err)

	assert.ErrorIs(t, other.Verify("abc123", token), ErrInvalidToken)
}

func TestSigner_RejectsGarbage(t *testing.T) {
	signer, err := NewSigner("test-secret")
	require.NoError(t, err)

	assert.ErrorIs(t, signer.Verify("abc123", "not-a-jwt"), ErrInvalidToken)
	assert.ErrorIs(t, signer.Verify("abc123", ""), ErrInvalidToken)
}

func TestNewSigner_RandomSecretWhenEmpty(t *testing.T) {
	a, err := NewSigner("")
	require.NoError(t, err)
	b, err := NewSigner("")
	require.NoError(t, err)

	// Tokens from one random-secret signer must not verify under another
	token, err := a.Sign("abc123")
	require.NoError(t, err)

	assert.NoError(t, a.Verify("abc123", token))
	assert.ErrorIs(t, b.Verify("abc123", token), ErrInvalidToken)
}
