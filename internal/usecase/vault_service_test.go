package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"reputation_server/internal/domain"
)

func TestVaultIssueAndVerify(t *testing.T) {
	vault := NewVaultService(bcrypt.MinCost)

	secret, hash, err := vault.Issue("agent-1")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, secret, hash)

	assert.True(t, vault.Verify("agent-1", secret))
	assert.False(t, vault.Verify("agent-1", "wrong"))
	assert.False(t, vault.Verify("agent-1", ""))
	assert.False(t, vault.Verify("agent-2", secret))
}

func TestVaultIssueIsOneShot(t *testing.T) {
	vault := NewVaultService(bcrypt.MinCost)

	_, _, err := vault.Issue("agent-1")
	require.NoError(t, err)

	_, _, err = vault.Issue("agent-1")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestVaultIssueRequiresAgentID(t *testing.T) {
	vault := NewVaultService(bcrypt.MinCost)

	_, _, err := vault.Issue("")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestVaultRestoreSeedsHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	vault := NewVaultService(bcrypt.MinCost)
	vault.Restore("agent-1", string(hash))

	assert.True(t, vault.Verify("agent-1", "s3cret"))
}

func TestVaultRestoreNeverReplacesLiveCredential(t *testing.T) {
	vault := NewVaultService(bcrypt.MinCost)

	secret, _, err := vault.Issue("agent-1")
	require.NoError(t, err)

	stale, err := bcrypt.GenerateFromPassword([]byte("stale"), bcrypt.MinCost)
	require.NoError(t, err)
	vault.Restore("agent-1", string(stale))

	assert.True(t, vault.Verify("agent-1", secret))
	assert.False(t, vault.Verify("agent-1", "stale"))
}
