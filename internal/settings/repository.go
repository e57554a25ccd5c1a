package settings

import "context"

const (
	KeyPaymentMethods = "payment_methods"
	KeySmsTemplates   = "sms_templates"

	KeyHomeContent    = "content_home"
	KeyAboutContent   = "content_about"
	KeyContactContent = "content_contact"
	KeyFooterContent  = "content_footer"
	KeySiteSettings   = "content_site_settings"
)

// Repository stores small JSON documents under well-known keys.
type Repository interface {
	// Load decodes the document stored under key into dst. found is false
	// when nothing has been saved yet; dst is untouched in that case.
	Load(ctx context.Context, key string, dst interface{}) (found bool, err error)
	Save(ctx context.Context, key string, value interface{}) error
}
