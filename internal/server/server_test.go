package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"anoa.com/marketplace/internal/config"
	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/testutil"
)

type harness struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
}

func newHarness(t *testing.T) *harness {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	cfg := &config.Config{
		AppEnv:                 "test",
		JWTSecret:              "test-secret",
		JWTTTL:                 time.Hour,
		SessionCookie:          "token",
		TokenQueryParam:        "token",
		CloudinaryUploadFolder: "market",
		UploadConcurrency:      6,
	}
	srv := NewServer(cfg, Deps{DB: db, ImageStorage: testutil.NewMemoryStorage()})
	return &harness{t: t, db: db, handler: srv.Handler()}
}

func (h *harness) do(method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	h.t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) doJSON(method, path, token string, payload any) *httptest.ResponseRecorder {
	h.t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(h.t, err)
	return h.do(method, path, token, bytes.NewBuffer(data), "application/json")
}

func (h *harness) login(username, password string) string {
	h.t.Helper()
	rec := h.doJSON(http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Token    string `json:"token"`
		UserType string `json:"userType"`
	}
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(h.t, res.Token)
	return res.Token
}

func (h *harness) seedSeller(username string) *entity.Credential {
	h.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(h.t, err)
	c := &entity.Credential{
		Username:      username,
		PasswordHash:  string(hash),
		Role:          entity.RoleSeller,
		SellerProfile: &entity.SellerProfile{StoreName: "Shop", Phone: "0123456789"},
	}
	require.NoError(h.t, h.db.Create(c).Error)
	return c
}

func registerBuyer(t *testing.T, h *harness, username string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range map[string]string{
		"username": username,
		"password": "secret1",
		"name":     "Buyer",
		"phone":    "0812345678",
		"email":    username + "@example.com",
		"address":  "1 Main Street",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("image", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rec := h.do(http.MethodPost, "/api/register", "", body, w.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCartCheckoutFlow(t *testing.T) {
	h := newHarness(t)

	seller := h.seedSeller("sam")
	product := &entity.Product{SellerID: seller.ID, Name: "Desk Lamp", Category: "Home", Price: decimal.NewFromInt(10), Stock: 10}
	require.NoError(t, h.db.Create(product).Error)

	registerBuyer(t, h, "alice")
	token := h.login("alice", "secret1")

	for i := 0; i < 2; i++ {
		rec := h.doJSON(http.MethodPost, "/api/cart/add", token, map[string]any{"productId": product.ID.String(), "quantity": 2})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := h.do(http.MethodPost, "/api/cart/checkout", token, nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		Data struct {
			Orders []struct {
				Amount decimal.Decimal `json:"amount"`
			} `json:"orders"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Data.Orders, 2)
	for _, o := range res.Data.Orders {
		assert.True(t, o.Amount.Equal(decimal.NewFromInt(20)))
	}

	rec = h.do(http.MethodGet, "/api/cart", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lines":[]`)

	rec = h.do(http.MethodPost, "/api/cart/checkout", token, nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "the cart is empty after checkout")

	sellerToken := h.login("sam", "secret1")
	rec = h.do(http.MethodGet, "/api/seller/orders", sellerToken, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var received []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &received))
	assert.Len(t, received, 2)
}

func TestRouteGuards(t *testing.T) {
	h := newHarness(t)
	registerBuyer(t, h, "bob")
	token := h.login("bob", "secret1")

	rec := h.doJSON(http.MethodPost, "/api/cart/add", "", map[string]any{"productId": uuid.NewString(), "quantity": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(http.MethodGet, "/api/cart", "not-a-token", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(http.MethodGet, "/api/seller/products", token, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodGet, "/api/admin/complaints", token, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodGet, "/api/profile/me", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"userType":"buyer"`), rec.Body.String())

	rec = h.do(http.MethodGet, "/api/products", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = h.do(http.MethodGet, "/api/product/"+uuid.NewString(), "", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewFlow(t *testing.T) {
	h := newHarness(t)
	product := &entity.Product{SellerID: uuid.New(), Name: "Kettle", Category: "Home", Price: decimal.NewFromInt(25), Stock: 3}
	require.NoError(t, h.db.Create(product).Error)

	registerBuyer(t, h, "cara")
	token := h.login("cara", "secret1")

	for _, rating := range []int{5, 3} {
		rec := h.doJSON(http.MethodPost, "/api/reviews", token, map[string]any{
			"productId": product.ID.String(),
			"rating":    rating,
			"review":    "Boils quickly and quietly",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := h.doJSON(http.MethodPost, "/api/reviews", token, map[string]any{
		"productId": product.ID.String(),
		"rating":    9,
		"review":    "Boils quickly and quietly",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodGet, "/api/product/"+product.ID.String(), "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p struct {
		NumReviews    int     `json:"numReviews"`
		AverageRating float64 `json:"averageRating"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 2, p.NumReviews)
	assert.Equal(t, 4.0, p.AverageRating)

	rec = h.do(http.MethodGet, "/api/reviews/"+product.ID.String(), "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 2)
	assert.Equal(t, "cara", reviews[0]["username"])
}
