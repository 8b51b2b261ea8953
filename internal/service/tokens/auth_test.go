package tokens

import (
	"testing"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateUserJWT(t *testing.T) {
	key := []byte("test-secret")

	token, err := GenerateUserJWT(42, domain.RoleAdmin, time.Minute, key)
	require.NoError(t, err)

	claims, err := ValidateUserJWT(token, key)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.ID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.True(t, claims.Actor().Can(domain.PermApproveLoans))
}

func TestValidateUserJWTErrors(t *testing.T) {
	key := []byte("test-secret")

	expired, err := GenerateUserJWT(1, domain.RoleUser, -time.Minute, key)
	require.NoError(t, err)
	_, err = ValidateUserJWT(expired, key)
	assert.ErrorIs(t, err, ErrTokenExpired)

	valid, err := GenerateUserJWT(1, domain.RoleUser, time.Minute, key)
	require.NoError(t, err)
	_, err = ValidateUserJWT(valid, []byte("other-secret"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenExpired)

	_, err = ValidateUserJWT("not-a-token", key)
	assert.Error(t, err)
}
