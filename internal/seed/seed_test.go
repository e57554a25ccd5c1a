package seed

import (
	"context"
	"testing"

	dealerRepo "github.com/fekuna/tagro-storefront-service/internal/dealer/repository"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	productRepo "github.com/fekuna/tagro-storefront-service/internal/product/repository"
	userRepo "github.com/fekuna/tagro-storefront-service/internal/user/repository"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_BundledCatalog(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Len(t, c.Products, 6)
	require.Len(t, c.Dealers, 6)

	ff := c.Products[0]
	assert.Equal(t, "ff001", ff.ID)
	assert.Equal(t, "1599.00", ff.Price.StringFixed(2))
	assert.Equal(t, "স্টার্টার ফিশ ফিড", ff.Name.Get(model.LangBN))
	assert.Len(t, ff.Ratings, 2)

	assert.Equal(t, "d_001", c.Dealers[0].ID)
	assert.Equal(t, "Northern Zone", c.Dealers[0].Zone.Get(model.LangEN))
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("products:\n  - id: x1\n    price: \"-1\"\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("products: ["))
	assert.Error(t, err)
}

func TestApply_Idempotent(t *testing.T) {
	ctx := context.Background()
	c, err := Load("")
	require.NoError(t, err)

	products := productRepo.NewMemoryRepository()
	dealers := dealerRepo.NewMemoryRepository()

	res, err := Apply(ctx, c, products, dealers, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{Products: 6, Dealers: 6}, res)

	res, err = Apply(ctx, c, products, dealers, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	p, err := products.FindByID(ctx, "ff001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Len(t, p.Ratings, 2)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	users := userRepo.NewMemoryRepository()
	admin := Admin{ID: "admin", Name: "Admin", Email: " Admin@TAgro.com ", Phone: "01700000000", Password: "secret1"}

	created, err := EnsureAdmin(ctx, users, admin, logger.NewNop())
	require.NoError(t, err)
	assert.True(t, created)

	u, err := users.FindByID(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.Equal(t, "admin@tagro.com", u.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))

	admin.ID, admin.Email, admin.Phone = "admin2", "other@tagro.com", "01800000000"
	created, err = EnsureAdmin(ctx, users, admin, logger.NewNop())
	require.NoError(t, err)
	assert.False(t, created)
}
