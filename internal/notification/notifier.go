package notification

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/model"
)

// Sender delivers one text message. The BulkSMSBD client is the production
// implementation.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

type OrderConfirmationData struct {
	OrderID     string
	UserName    string
	TotalAmount string
}

// Notifier sends templated SMS. Templates use the literal placeholders
// {otp}, {userName}, {orderId} and {totalAmount}.
type Notifier interface {
	// SendOTP generates a code, sends it and returns it to the caller for
	// verification. The template must contain {otp}.
	SendOTP(ctx context.Context, phone, template string) (string, error)
	SendOrderConfirmation(ctx context.Context, phone, template string, data OrderConfirmationData) error
}

type TemplateUseCase interface {
	GetTemplates(ctx context.Context) (model.SmsTemplates, error)
	UpdateTemplates(ctx context.Context, templates model.SmsTemplates) (model.SmsTemplates, error)
}
