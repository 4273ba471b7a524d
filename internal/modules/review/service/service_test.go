package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/modules/review/repository"
	"anoa.com/marketplace/internal/testutil"
	"anoa.com/marketplace/pkg/apperror"
	"anoa.com/marketplace/pkg/ratelimiter"
)

func setup(t *testing.T) (*gorm.DB, ReviewService, *entity.Product) {
	t.Helper()
	db := testutil.NewDB(t)
	product := &entity.Product{
		SellerID: uuid.New(),
		Name:     "Wool Scarf",
		Category: "Accessories",
		Price:    decimal.NewFromInt(30),
		Stock:    3,
	}
	require.NoError(t, db.Create(product).Error)

	svc := NewReviewService(repository.NewReviewRepository(db), ratelimiter.New(nil), 0, nil)
	return db, svc, product
}

func newUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()
	c := &entity.Credential{Username: username, PasswordHash: "x", Role: entity.RoleBuyer}
	require.NoError(t, db.Create(c).Error)
	return c.ID
}

func TestRecordReviewFiveThenThree(t *testing.T) {
	db, svc, product := setup(t)
	ctx := context.Background()
	user := newUser(t, db, "alice")

	summary, err := svc.RecordReview(ctx, user, product.ID, 5, "Warm and soft, love it")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.NumReviews)
	assert.Equal(t, 5.0, summary.AverageRating)

	summary, err = svc.RecordReview(ctx, user, product.ID, 3, "Started pilling after a week")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.NumReviews)
	assert.Equal(t, 4.0, summary.AverageRating)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 8, stored.RatingSum)
	assert.Equal(t, 2, stored.NumReviews)
	assert.Equal(t, 4.0, stored.AverageRating)

	reviews, err := svc.ListReviews(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 3, reviews[0].Rating, "newest first")
	assert.Equal(t, "alice", reviews[0].Username)
}

func TestRecordReviewRoundsToOneDecimal(t *testing.T) {
	db, svc, product := setup(t)
	ctx := context.Background()
	user := newUser(t, db, "bob")

	for _, r := range []int{4, 4, 5} {
		_, err := svc.RecordReview(ctx, user, product.ID, r, "A perfectly decent scarf")
		require.NoError(t, err)
	}

	summary, err := svc.RecordReview(ctx, user, product.ID, 5, "Still wearing it daily")
	require.NoError(t, err)
	assert.Equal(t, 4.5, summary.AverageRating)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 18, stored.RatingSum)
}

func TestRecordReviewValidation(t *testing.T) {
	db, svc, product := setup(t)
	ctx := context.Background()
	user := newUser(t, db, "carol")

	cases := []struct {
		name   string
		rating int
		text   string
		field  string
	}{
		{"rating too low", 0, "long enough text", "rating"},
		{"rating too high", 6, "long enough text", "rating"},
		{"text too short", 4, "too short", "review"},
		{"markup does not count", 4, "<b><i>short</i></b>", "review"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordReview(ctx, user, product.ID, tc.rating, tc.text)
			require.ErrorIs(t, err, apperror.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.field)
		})
	}

	var count int64
	require.NoError(t, db.Model(&entity.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordReviewSanitizesText(t *testing.T) {
	db, svc, product := setup(t)
	ctx := context.Background()
	user := newUser(t, db, "dave")

	_, err := svc.RecordReview(ctx, user, product.ID, 4, `<script>alert("x")</script>Nice & cosy`)
	require.NoError(t, err)

	reviews, err := svc.ListReviews(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Nice & cosy", reviews[0].Review)
}

func TestRecordReviewUnknownProduct(t *testing.T) {
	db, svc, _ := setup(t)
	user := newUser(t, db, "erin")

	_, err := svc.RecordReview(context.Background(), user, uuid.New(), 5, "Does this product exist?")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&entity.Review{}).Count(&count).Error)
	assert.Zero(t, count, "the review is rolled back with the failed increment")
}

func TestRecordReviewConcurrent(t *testing.T) {
	db, svc, product := setup(t)
	ctx := context.Background()

	const writers = 12
	users := make([]uuid.UUID, writers)
	for i := range users {
		users[i] = newUser(t, db, fmt.Sprintf("user%02d", i))
	}

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	wantSum := 0
	for i := 0; i < writers; i++ {
		rating := i%5 + 1
		wantSum += rating
		wg.Add(1)
		go func(user uuid.UUID, rating int) {
			defer wg.Done()
			_, err := svc.RecordReview(ctx, user, product.ID, rating, "Concurrent review text")
			errs <- err
		}(users[i], rating)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, writers, stored.NumReviews)
	assert.Equal(t, wantSum, stored.RatingSum)
	assert.Equal(t, entity.AverageRating(wantSum, writers), stored.AverageRating)

	var count int64
	require.NoError(t, db.Model(&entity.Review{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, writers, count)
}
