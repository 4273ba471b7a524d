package handler

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/marketplace/internal/modules/user/repository"
	"anoa.com/marketplace/internal/modules/user/service"
	"anoa.com/marketplace/internal/testutil"
	"anoa.com/marketplace/internal/token"
	"anoa.com/marketplace/pkg/storage"
)

func newRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	assets := storage.NewAssetStore(testutil.NewMemoryStorage(), "profiles", 6, nil)
	svc := service.NewAuthService(repository.NewUserRepository(db), assets, token.NewIssuer("s", time.Hour))
	h := NewAuthHandler(svc, CookieConfig{Name: "token", TTL: time.Hour})

	r := gin.New()
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", h.Logout)
	return r
}

func registerForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImage {
		part, err := w.CreateFormFile("image", "alice.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func aliceFields() map[string]string {
	return map[string]string{
		"username": "alice",
		"password": "secret1",
		"name":     "Alice",
		"phone":    "0812345678",
		"email":    "alice@example.com",
		"address":  "1 Main Street",
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	r := newRouter(t)

	body, ct := registerForm(t, aliceFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"status":"done","message":"User registered successfully"}`, rec.Body.String())

	body, ct = registerForm(t, aliceFields(), true)
	req = httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"Username already exists"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "login successful", res["status"])
	assert.Equal(t, "buyer", res["userType"])
	require.NotEmpty(t, res["token"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, res["token"], cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	req = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestRegisterValidation(t *testing.T) {
	r := newRouter(t)

	fields := aliceFields()
	fields["phone"] = "123"
	body, ct := registerForm(t, fields, true)
	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone")

	body, ct = registerForm(t, aliceFields(), false)
	req = httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "image is required")
}
