package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/pkg/jwt"
	"go-shop-backoffice/pkg/session"
)

const (
	testShopName = "tea_shop_1"
	thisMachine  = "123456789"
)

func newShop(t *testing.T, mutate func(*model.Shop)) *model.Shop {
	t.Helper()
	shop := &model.Shop{
		BaseModel: model.BaseModel{ID: uuid.New()},
		ShopName:  testShopName,
		Username:  "owner",
	}
	require.NoError(t, shop.SetPassword("s3cret"))
	if mutate != nil {
		mutate(shop)
	}
	return shop
}

func newAuth(shops ...*model.Shop) (*authService, *session.MemoryRevocationStore) {
	revoked := session.NewMemoryRevocationStore()
	svc := NewAuthService(
		newMemoryShops(shops...),
		jwt.NewManager("test-secret", time.Hour),
		revoked,
		AuthOptions{ShopName: testShopName, MachineCode: thisMachine},
	).(*authService)
	return svc, revoked
}

func TestLoginSuccessIssuesUsableToken(t *testing.T) {
	shop := newShop(t, nil)
	svc, _ := newAuth(shop)

	resp, err := svc.Login(context.Background(), "owner", "s3cret")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)

	who, err := svc.Authenticate(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, shop.ID.String(), who.ID)
	assert.Equal(t, testShopName, who.Name)
}

func TestLoginFailures(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	tests := []struct {
		name     string
		shop     *model.Shop
		username string
		password string
		want     error
	}{
		{"missing fields", newShop(t, nil), "", "", ErrCredentialsRequired},
		{"unknown user", newShop(t, nil), "stranger", "s3cret", ErrInvalidCredentials},
		{"wrong password", newShop(t, nil), "owner", "guess", ErrInvalidCredentials},
		{"bound to another machine", newShop(t, func(s *model.Shop) { s.MachineCode = "999" }), "owner", "s3cret", ErrMachineNotAuthorized},
		{"expired", newShop(t, func(s *model.Shop) { s.ExpiryDate = &past }), "owner", "s3cret", ErrSubscriptionExpired},
		{"other deployment", newShop(t, func(s *model.Shop) { s.ShopName = "bakery" }), "owner", "s3cret", ErrInvalidCredentials},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newAuth(tc.shop)
			_, err := svc.Login(context.Background(), tc.username, tc.password)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoginOnBoundMachine(t *testing.T) {
	svc, _ := newAuth(newShop(t, func(s *model.Shop) { s.MachineCode = thisMachine }))

	_, err := svc.Login(context.Background(), "owner", "s3cret")
	assert.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newAuth(newShop(t, nil))
	resp, err := svc.Login(context.Background(), "owner", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))

	_, err = svc.Authenticate(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
}

func TestAuthenticateGatesExpiredSubscription(t *testing.T) {
	expiry := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newAuth(newShop(t, func(s *model.Shop) { s.ExpiryDate = &expiry }))
	svc.now = fixedClock(expiry.Add(-time.Minute))

	resp, err := svc.Login(context.Background(), "owner", "s3cret")
	require.NoError(t, err)

	svc.now = fixedClock(expiry.Add(time.Minute))
	_, err = svc.Authenticate(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrSubscriptionExpired)
}

func TestAuthenticateRejectsTokenOfDeletedShop(t *testing.T) {
	shop := newShop(t, nil)
	svc, _ := newAuth(shop)
	resp, err := svc.Login(context.Background(), "owner", "s3cret")
	require.NoError(t, err)

	delete(svc.shops.(*memoryShops).shops, shop.ID.String())

	_, err = svc.Authenticate(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
