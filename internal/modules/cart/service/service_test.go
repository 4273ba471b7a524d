package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/cart/repository"
	productRepo "anoa.com/marketplace/internal/modules/product/repository"
	"anoa.com/marketplace/internal/testutil"
	"anoa.com/marketplace/pkg/apperror"
)

func newProduct(t *testing.T, db *gorm.DB, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		SellerID: uuid.New(),
		Name:     "Canvas Tote",
		Category: "Bags",
		Price:    decimal.RequireFromString(price),
		Stock:    5,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func newService(db *gorm.DB, merge bool) CartService {
	return NewCartService(repository.NewCartRepository(db), productRepo.NewProductRepository(db), merge)
}

func TestAddLineAppendsByDefault(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db, false)
	ctx := context.Background()
	user := uuid.New()
	product := newProduct(t, db, "10.00")

	first, err := svc.AddLine(ctx, user, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(20)))

	second, err := svc.AddLine(ctx, user, product.ID, 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	cart, err := svc.ListLines(ctx, user)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, first.ID, cart.Lines[0].ID)
	assert.Equal(t, "Canvas Tote", cart.Lines[0].Product.Name)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(30)))
}

func TestAddLineCapturesPriceAtAddTime(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db, false)
	ctx := context.Background()
	user := uuid.New()
	product := newProduct(t, db, "10.00")

	_, err := svc.AddLine(ctx, user, product.ID, 3)
	require.NoError(t, err)

	require.NoError(t, db.Model(product).Update("price", decimal.RequireFromString("99.00")).Error)

	cart, err := svc.ListLines(ctx, user)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.True(t, cart.Lines[0].Amount.Equal(decimal.NewFromInt(30)))
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(30)))
}

func TestAddLineMergePolicy(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db, true)
	ctx := context.Background()
	user := uuid.New()
	product := newProduct(t, db, "2.50")

	first, err := svc.AddLine(ctx, user, product.ID, 2)
	require.NoError(t, err)
	merged, err := svc.AddLine(ctx, user, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 4, merged.Quantity)

	cart, err := svc.ListLines(ctx, user)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
	assert.True(t, cart.Lines[0].Amount.Equal(decimal.NewFromInt(10)))
}

func TestAddLineValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db, false)
	ctx := context.Background()
	product := newProduct(t, db, "10.00")

	_, err := svc.AddLine(ctx, uuid.New(), product.ID, 0)
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "quantity")

	_, err = svc.AddLine(ctx, uuid.New(), uuid.New(), 1)
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "productId")
}

func TestRemoveLineAndClear(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newService(db, false)
	ctx := context.Background()
	user := uuid.New()
	product := newProduct(t, db, "1.00")

	line, err := svc.AddLine(ctx, user, product.ID, 1)
	require.NoError(t, err)

	err = svc.RemoveLine(ctx, uuid.New(), line.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound, "a line is only visible to its owner")

	require.NoError(t, svc.RemoveLine(ctx, user, line.ID))
	assert.ErrorIs(t, svc.RemoveLine(ctx, user, line.ID), apperror.ErrNotFound)

	_, err = svc.AddLine(ctx, user, product.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, user, product.ID, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, user))

	cart, err := svc.ListLines(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Total.IsZero())
}
