package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/stat/repository"
	"anoa.com/marketplace/internal/testutil"
)

func TestMarketplaceStats(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewStatService(repository.NewStatRepository(db))
	ctx := context.Background()

	empty, err := svc.GetMarketplaceStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalUsers)
	assert.True(t, empty.Revenue.IsZero())

	for i, role := range []entity.Role{entity.RoleBuyer, entity.RoleBuyer, entity.RoleSeller, entity.RoleAdmin} {
		require.NoError(t, db.Create(&entity.Credential{
			Username: "user" + string(rune('a'+i)), PasswordHash: "x", Role: role,
		}).Error)
	}

	sellerA, sellerB := uuid.New(), uuid.New()
	for _, sellerID := range []uuid.UUID{sellerA, sellerA, sellerB} {
		require.NoError(t, db.Create(&entity.Product{
			SellerID: sellerID, Name: "Mug", Category: "Home", Price: decimal.NewFromInt(5),
		}).Error)
	}
	for _, o := range []struct {
		seller uuid.UUID
		amount string
	}{{sellerA, "20"}, {sellerA, "12.50"}, {sellerB, "7"}} {
		require.NoError(t, db.Create(&entity.Order{
			UserID: uuid.New(), ProductID: uuid.New(), SellerID: o.seller,
			ProductName: "Mug", Quantity: 1, Amount: decimal.RequireFromString(o.amount),
		}).Error)
	}

	stats, err := svc.GetMarketplaceStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.TotalBuyers)
	assert.EqualValues(t, 1, stats.TotalSellers)
	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 3, stats.TotalOrders)
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("39.5")), stats.Revenue.String())

	seller, err := svc.GetSellerStats(ctx, sellerA)
	require.NoError(t, err)
	assert.EqualValues(t, 2, seller.TotalProducts)
	assert.EqualValues(t, 2, seller.TotalOrders)
	assert.True(t, seller.Revenue.Equal(decimal.RequireFromString("32.5")), seller.Revenue.String())

	none, err := svc.GetSellerStats(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, none.TotalOrders)
	assert.True(t, none.Revenue.IsZero())
}
