package auth_test

import (
	"testing"
	"time"

	"grievance-portal-backend/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	service := auth.NewService("test-secret")
	userID := uuid.New()
	orgID := uuid.New()

	token, err := service.IssueToken(userID, orgID, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, orgID, claims.OrganizationID)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestRememberMeExtendsLifetime(t *testing.T) {
	service := auth.NewService("test-secret")
	userID := uuid.New()
	orgID := uuid.New()

	short, err := service.IssueToken(userID, orgID, false)
	require.NoError(t, err)
	long, err := service.IssueToken(userID, orgID, true)
	require.NoError(t, err)

	shortClaims, err := service.ParseToken(short)
	require.NoError(t, err)
	longClaims, err := service.ParseToken(long)
	require.NoError(t, err)

	diff := longClaims.ExpiresAt.Sub(shortClaims.ExpiresAt.Time)
	assert.InDelta(t, float64(auth.ExtendedTokenLifetime-auth.TokenLifetime), float64(diff), float64(time.Minute))
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := auth.NewService("secret-one")
	verifier := auth.NewService("secret-two")

	token, err := issuer.IssueToken(uuid.New(), uuid.New(), false)
	require.NoError(t, err)

	claims, err := verifier.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseTokenGarbage(t *testing.T) {
	service := auth.NewService("test-secret")

	claims, err := service.ParseToken("not-a-jwt")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestIsKnownPermission(t *testing.T) {
	assert.True(t, auth.IsKnownPermission(auth.PermCreateGrievance))
	assert.True(t, auth.IsKnownPermission(auth.PermDeleteRole))
	assert.False(t, auth.IsKnownPermission("LAUNCH_MISSILES"))
	assert.False(t, auth.IsKnownPermission(""))
}

func TestCallerHasAnyPermission(t *testing.T) {
	caller := &auth.Caller{Permissions: []string{auth.PermViewGrievance}}

	assert.True(t, caller.HasPermission(auth.PermViewGrievance))
	assert.False(t, caller.HasPermission(auth.PermDeleteGrievance))
	assert.True(t, caller.HasAnyPermission(auth.PermDeleteGrievance, auth.PermViewGrievance))
	assert.False(t, caller.HasAnyPermission(auth.PermDeleteGrievance))
}
