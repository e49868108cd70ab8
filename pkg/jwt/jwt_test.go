package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, claims, err := m.GenerateToken("shop-1", "tea_shop_1")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	got, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "shop-1", got.ShopID)
	assert.Equal(t, "tea_shop_1", got.ShopName)
	assert.Equal(t, claims.ID, got.ID)
}

func TestValidateRejectsForeignSecretAndExpiry(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, _, err := m.GenerateToken("shop-1", "tea_shop_1")
	require.NoError(t, err)

	_, err = NewManager("other-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := NewManager("test-secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEmptySecretIsRefused(t *testing.T) {
	m := NewManager("", time.Hour)

	_, _, err := m.GenerateToken("shop-1", "tea_shop_1")
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = m.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = NewManager("s", time.Hour).ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}
