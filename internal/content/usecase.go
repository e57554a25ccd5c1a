package content

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/model"
)

// UseCase manages the editable storefront pages. Every getter falls back to
// the built-in defaults until an admin saves the section.
type UseCase interface {
	GetHome(ctx context.Context) (model.HomeContent, error)
	UpdateHome(ctx context.Context, c model.HomeContent) (model.HomeContent, error)
	// FeaturedProducts resolves the home page's featured ids, skipping
	// products that no longer exist.
	FeaturedProducts(ctx context.Context) ([]model.Product, error)

	GetAbout(ctx context.Context) (model.AboutContent, error)
	UpdateAbout(ctx context.Context, c model.AboutContent) (model.AboutContent, error)
	GetContact(ctx context.Context) (model.ContactInfo, error)
	UpdateContact(ctx context.Context, c model.ContactInfo) (model.ContactInfo, error)
	GetFooter(ctx context.Context) (model.FooterContent, error)
	UpdateFooter(ctx context.Context, c model.FooterContent) (model.FooterContent, error)
	GetSiteSettings(ctx context.Context) (model.SiteSettings, error)
	UpdateSiteSettings(ctx context.Context, c model.SiteSettings) (model.SiteSettings, error)
}
