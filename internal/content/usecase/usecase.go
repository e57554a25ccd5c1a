package usecase

import (
	"context"
	"net/mail"
	"strings"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/content"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product"
	"github.com/fekuna/tagro-storefront-service/internal/settings"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type contentUseCase struct {
	repo     settings.Repository
	products product.Repository
	logger   logger.ZapLogger
}

func NewContentUseCase(repo settings.Repository, products product.Repository, log logger.ZapLogger) content.UseCase {
	return &contentUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

func load[T any](ctx context.Context, repo settings.Repository, key string, def T) (T, error) {
	out := def
	if _, err := repo.Load(ctx, key, &out); err != nil {
		return def, errors.Wrapf(err, "load %s", key)
	}
	return out, nil
}

func (uc *contentUseCase) save(ctx context.Context, key string, v interface{}) error {
	if err := uc.repo.Save(ctx, key, v); err != nil {
		return errors.Wrapf(err, "save %s", key)
	}
	uc.logger.Info("content updated", zap.String("section", key))
	return nil
}

func (uc *contentUseCase) GetHome(ctx context.Context) (model.HomeContent, error) {
	return load(ctx, uc.repo, settings.KeyHomeContent, model.DefaultHomeContent())
}

func (uc *contentUseCase) UpdateHome(ctx context.Context, c model.HomeContent) (model.HomeContent, error) {
	if strings.TrimSpace(c.MainSlogan.EN) == "" {
		return model.HomeContent{}, apperror.Validation("main slogan is required")
	}

	ids := make([]string, 0, len(c.FeaturedProductIDs))
	seen := make(map[string]bool, len(c.FeaturedProductIDs))
	for _, id := range c.FeaturedProductIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		p, err := uc.products.FindByID(ctx, id)
		if err != nil {
			return model.HomeContent{}, errors.Wrap(err, "find featured product")
		}
		if p == nil {
			return model.HomeContent{}, apperror.Validation("featured product %s does not exist", id)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	c.FeaturedProductIDs = ids

	if err := uc.save(ctx, settings.KeyHomeContent, c); err != nil {
		return model.HomeContent{}, err
	}
	return c, nil
}

func (uc *contentUseCase) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	home, err := uc.GetHome(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(home.FeaturedProductIDs))
	for _, id := range home.FeaturedProductIDs {
		p, err := uc.products.FindByID(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "find featured product")
		}
		if p != nil {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (uc *contentUseCase) GetAbout(ctx context.Context) (model.AboutContent, error) {
	return load(ctx, uc.repo, settings.KeyAboutContent, model.DefaultAboutContent())
}

func (uc *contentUseCase) UpdateAbout(ctx context.Context, c model.AboutContent) (model.AboutContent, error) {
	if err := uc.save(ctx, settings.KeyAboutContent, c); err != nil {
		return model.AboutContent{}, err
	}
	return c, nil
}

func (uc *contentUseCase) GetContact(ctx context.Context) (model.ContactInfo, error) {
	return load(ctx, uc.repo, settings.KeyContactContent, model.DefaultContactInfo())
}

func (uc *contentUseCase) UpdateContact(ctx context.Context, c model.ContactInfo) (model.ContactInfo, error) {
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return model.ContactInfo{}, apperror.Validation("invalid contact email")
		}
	}
	if err := uc.save(ctx, settings.KeyContactContent, c); err != nil {
		return model.ContactInfo{}, err
	}
	return c, nil
}

func (uc *contentUseCase) GetFooter(ctx context.Context) (model.FooterContent, error) {
	return load(ctx, uc.repo, settings.KeyFooterContent, model.DefaultFooterContent())
}

func (uc *contentUseCase) UpdateFooter(ctx context.Context, c model.FooterContent) (model.FooterContent, error) {
	if err := uc.save(ctx, settings.KeyFooterContent, c); err != nil {
		return model.FooterContent{}, err
	}
	return c, nil
}

func (uc *contentUseCase) GetSiteSettings(ctx context.Context) (model.SiteSettings, error) {
	return load(ctx, uc.repo, settings.KeySiteSettings, model.SiteSettings{})
}

func (uc *contentUseCase) UpdateSiteSettings(ctx context.Context, c model.SiteSettings) (model.SiteSettings, error) {
	c.LogoURL = strings.TrimSpace(c.LogoURL)
	if err := uc.save(ctx, settings.KeySiteSettings, c); err != nil {
		return model.SiteSettings{}, err
	}
	return c, nil
}
