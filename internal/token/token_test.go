package token

import (
	"testing"
	"time"

	"titlerate/backend/internal/entity"
	"titlerate/backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)
	user := &entity.User{ID: uuid.New(), Role: entity.RoleModerator}

	signed, expiresAt, err := m.Issue(user)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, entity.RoleModerator, claims.Role)
	assert.False(t, claims.Superuser)
}

func TestParseCarriesSuperuserFlag(t *testing.T) {
	m := NewManager("secret", time.Hour)
	user := &entity.User{ID: uuid.New(), Role: entity.RoleUser, IsSuperuser: true}

	signed, _, err := m.Issue(user)
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.True(t, claims.Superuser)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := NewManager("secret", time.Hour)
	verifier := NewManager("other-secret", time.Hour)

	signed, _, err := signer.Issue(&entity.User{ID: uuid.New(), Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewManager("secret", -time.Minute)

	signed, _, err := m.Issue(&entity.User{ID: uuid.New(), Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = m.Parse(signed)
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager("secret", time.Hour)

	_, err := m.Parse("not.a.token")
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}
