package notification

import (
	"strings"

	"github.com/fekuna/tagro-storefront-service/internal/model"
)

// Render substitutes every occurrence of each placeholder in tmpl.
func Render(tmpl string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for placeholder, value := range values {
		pairs = append(pairs, placeholder, value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func RenderOrderConfirmation(tmpl string, data OrderConfirmationData) string {
	return Render(tmpl, map[string]string{
		model.PlaceholderUserName:    data.UserName,
		model.PlaceholderOrderID:     data.OrderID,
		model.PlaceholderTotalAmount: data.TotalAmount,
	})
}
