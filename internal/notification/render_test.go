package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_ReplacesEveryOccurrence(t *testing.T) {
	out := Render("{otp} / {otp} / {missing}", map[string]string{"{otp}": "123456"})
	assert.Equal(t, "123456 / 123456 / {missing}", out)
}

func TestRenderOrderConfirmation(t *testing.T) {
	out := RenderOrderConfirmation("{userName}: #{orderId} = {totalAmount}", OrderConfirmationData{
		OrderID:     "ORD-9",
		UserName:    "Karim",
		TotalAmount: "120.50",
	})
	assert.Equal(t, "Karim: #ORD-9 = 120.50", out)
}
