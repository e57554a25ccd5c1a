package seed

import (
	"context"
	_ "embed"
	"os"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/dealer"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product"
	"github.com/fekuna/tagro-storefront-service/internal/user"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Products []model.Product `yaml:"products"`
	Dealers  []model.Dealer  `yaml:"dealers"`
}

// Load parses the catalog at path, or the bundled one when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}
	for i := range c.Products {
		if err := c.Products[i].Validate(); err != nil {
			return nil, errors.Wrapf(err, "product %s", c.Products[i].ID)
		}
	}
	for i := range c.Dealers {
		if err := c.Dealers[i].Validate(); err != nil {
			return nil, errors.Wrapf(err, "dealer %s", c.Dealers[i].ID)
		}
	}
	return &c, nil
}

type Result struct {
	Products int
	Dealers  int
}

// Apply inserts catalog entries whose id is not stored yet. Existing rows
// are never overwritten.
func Apply(ctx context.Context, c *Catalog, products product.Repository, dealers dealer.Repository, log logger.ZapLogger) (Result, error) {
	var res Result
	now := time.Now()

	for i := range c.Products {
		p := c.Products[i]
		existing, err := products.FindByID(ctx, p.ID)
		if err != nil {
			return res, errors.Wrapf(err, "find product %s", p.ID)
		}
		if existing != nil {
			continue
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		if p.Ratings == nil {
			p.Ratings = []model.Rating{}
		}
		if err := products.Create(ctx, &p); err != nil {
			return res, errors.Wrapf(err, "create product %s", p.ID)
		}
		res.Products++
	}

	for i := range c.Dealers {
		d := c.Dealers[i]
		existing, err := dealers.FindByID(ctx, d.ID)
		if err != nil {
			return res, errors.Wrapf(err, "find dealer %s", d.ID)
		}
		if existing != nil {
			continue
		}
		d.CreatedAt, d.UpdatedAt = now, now
		if err := dealers.Create(ctx, &d); err != nil {
			return res, errors.Wrapf(err, "create dealer %s", d.ID)
		}
		res.Dealers++
	}

	log.Info("seed applied", zap.Int("products", res.Products), zap.Int("dealers", res.Dealers))
	return res, nil
}

type Admin struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Password string
}

// EnsureAdmin creates the bootstrap admin unless an admin account already
// exists. It reports whether an account was created.
func EnsureAdmin(ctx context.Context, users user.Repository, a Admin, log logger.ZapLogger) (bool, error) {
	all, err := users.FindAll(ctx)
	if err != nil {
		return false, errors.Wrap(err, "list users")
	}
	for _, u := range all {
		if u.IsAdmin() {
			return false, nil
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, errors.Wrap(err, "hash admin password")
	}
	now := time.Now()
	admin := &model.User{
		BaseModel:         model.BaseModel{ID: a.ID, CreatedAt: now, UpdatedAt: now},
		Name:              a.Name,
		Email:             model.NormalizeEmail(a.Email),
		Phone:             a.Phone,
		PasswordHash:      string(hash),
		Role:              model.RoleAdmin,
		ProfilePictureURL: "https://i.pravatar.cc/150?u=" + a.ID,
		Addresses:         []model.Address{},
		Orders:            []model.Order{},
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, errors.Wrap(err, "create admin")
	}
	log.Info("admin user created", zap.String("email", admin.Email))
	return true, nil
}
