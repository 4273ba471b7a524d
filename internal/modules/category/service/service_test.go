package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/category/dto"
	"anoa.com/marketplace/internal/modules/category/repository"
	"anoa.com/marketplace/internal/testutil"
)

func TestGetAllCategories(t *testing.T) {
	db := testutil.NewDB(t)
	for _, c := range []string{"Shoes", "Shoes", "Shoes", "Hats", "Bags", "Bags"} {
		require.NoError(t, db.Create(&entity.Product{
			SellerID: uuid.New(), Name: c + " item", Category: c, Price: decimal.NewFromInt(1),
		}).Error)
	}
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	res, err := svc.GetAllCategories(context.Background(), dto.CategoryFilter{})
	require.NoError(t, err)
	require.Len(t, res.Data, 3)
	assert.Equal(t, dto.CategoryResponse{Name: "Shoes", ProductCount: 3}, res.Data[0])
	assert.Equal(t, "Bags", res.Data[1].Name)
	assert.EqualValues(t, 3, res.Meta.TotalItems)

	res, err = svc.GetAllCategories(context.Background(), dto.CategoryFilter{Search: "ha", Limit: 10})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Hats", res.Data[0].Name)
	assert.EqualValues(t, 1, res.Meta.TotalItems)
	assert.Equal(t, 10, res.Meta.Limit)
}
