package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "adwatch/pkg/domain"
	dErrors "adwatch/pkg/domain-errors"
)

func newTestService() *Service {
	return NewService("test-signing-key", "adwatch", "adwatch-api")
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()
	operatorID := id.NewOperatorID()

	tokenString, err := svc.GenerateAccessToken(operatorID, "acme-air", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.Validate(tokenString)
	require.NoError(t, err)
	assert.Equal(t, operatorID.String(), claims.OperatorID)
	assert.Equal(t, "acme-air", claims.ClientID)
	assert.Equal(t, "adwatch", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newTestService()

	tokenString, err := svc.GenerateAccessToken(id.NewOperatorID(), "acme-air", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(tokenString)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateRejectsWrongKey(t *testing.T) {
	tokenString, err := newTestService().GenerateAccessToken(id.NewOperatorID(), "acme-air", time.Minute)
	require.NoError(t, err)

	other := NewService("different-key", "adwatch", "adwatch-api")
	_, err = other.Validate(tokenString)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	issued := NewService("test-signing-key", "someone-else", "adwatch-api")
	tokenString, err := issued.GenerateAccessToken(id.NewOperatorID(), "acme-air", time.Minute)
	require.NoError(t, err)

	_, err = newTestService().Validate(tokenString)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := newTestService().Validate("not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateTokenAdapter(t *testing.T) {
	svc := newTestService()
	operatorID := id.NewOperatorID()

	tokenString, err := svc.GenerateAccessToken(operatorID, "acme-air", time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, operatorID.String(), claims.OperatorID)
}
