package middleware

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"anoa.com/marketplace/internal/entity"
	userRepo "anoa.com/marketplace/internal/modules/user/repository"
	"anoa.com/marketplace/internal/token"
	"anoa.com/marketplace/pkg/apperror"
	"anoa.com/marketplace/pkg/response"
)

const (
	ctxUserID   = "user_id"
	ctxUserRole = "user_role"
)

type AuthMiddleware struct {
	userRepo   userRepo.UserRepository
	issuer     *token.Issuer
	cookieName string
	queryParam string
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, issuer *token.Issuer, cookieName, queryParam string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo:   userRepo,
		issuer:     issuer,
		cookieName: cookieName,
		queryParam: queryParam,
	}
}

// ExtractToken looks at the Authorization bearer header, then the session cookie,
// then the query parameter. The first non-empty value wins.
func (m *AuthMiddleware) ExtractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1])
		}
	}

	if m.cookieName != "" {
		if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}

	if m.queryParam != "" {
		return r.URL.Query().Get(m.queryParam)
	}
	return ""
}

// Authenticate verifies the request's token and that its credential still exists.
func (m *AuthMiddleware) Authenticate(ctx context.Context, r *http.Request) (*token.Identity, error) {
	raw := m.ExtractToken(r)
	if raw == "" {
		return nil, apperror.New(http.StatusUnauthorized, "authorization required", apperror.ErrUnauthorized)
	}

	identity, err := m.issuer.Verify(raw)
	if err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "invalid or expired token", err)
	}

	exists, err := m.userRepo.ExistsByID(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up credential: %w", err)
	}
	if !exists {
		return nil, apperror.New(http.StatusUnauthorized, "user not found", apperror.ErrStaleCredential)
	}

	return identity, nil
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUserID, identity.ID.String())
		c.Set(ctxUserRole, identity.Role)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := CurrentIdentity(c)
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}

		if !slices.Contains(roles, identity.Role) {
			response.ResponseError(c, apperror.Forbidden(fmt.Sprintf("%s access required", joinRoles(roles))))
			c.Abort()
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)
}

// CurrentIdentity returns the identity attached by RequireAuth.
func CurrentIdentity(c *gin.Context) (token.Identity, error) {
	id, err := response.GetUserID(c)
	if err != nil {
		return token.Identity{}, err
	}
	role, ok := c.Get(ctxUserRole)
	if !ok {
		return token.Identity{}, apperror.ErrUnauthorized
	}
	r, ok := role.(entity.Role)
	if !ok || !r.Valid() {
		return token.Identity{}, apperror.ErrUnauthorized
	}
	return token.Identity{ID: id, Role: r}, nil
}

func joinRoles(roles []entity.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}
