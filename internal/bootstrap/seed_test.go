package bootstrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"anoa.com/marketplace/internal/bootstrap"
	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/testutil"
)

func TestSeedAdminUserIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, bootstrap.SeedAdminUser(db, zap.NewNop()))
	require.NoError(t, bootstrap.SeedAdminUser(db, zap.NewNop()))

	var admins []entity.Credential
	require.NoError(t, db.Where("username = ?", "admin").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, entity.RoleAdmin, admins[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte("admin123")))
}
