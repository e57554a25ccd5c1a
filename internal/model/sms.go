package model

import "strings"

const (
	PlaceholderOTP         = "{otp}"
	PlaceholderUserName    = "{userName}"
	PlaceholderOrderID     = "{orderId}"
	PlaceholderTotalAmount = "{totalAmount}"
)

// SmsTemplate is one message in both languages.
type SmsTemplate struct {
	EN string `json:"en"`
	BN string `json:"bn"`
}

func (t SmsTemplate) Get(lang Language) string {
	if lang == LangBN && t.BN != "" {
		return t.BN
	}
	return t.EN
}

type SmsTemplates struct {
	OTP               SmsTemplate `json:"otp"`
	OrderConfirmation SmsTemplate `json:"orderConfirmation"`
}

func DefaultSmsTemplates() SmsTemplates {
	return SmsTemplates{
		OTP: SmsTemplate{
			EN: "Your T Agro Feeds verification code is: {otp}",
			BN: "আপনার টি এগ্রো ফিডস যাচাইকরণ কোডটি হল: {otp}",
		},
		OrderConfirmation: SmsTemplate{
			EN: "Thank you, {userName}! Your order #{orderId} for BDT {totalAmount} is now being processed.",
			BN: "ধন্যবাদ, {userName}! আপনার অর্ডার #{orderId} (BDT {totalAmount}) এখন প্রক্রিয়া করা হচ্ছে।",
		},
	}
}

func IsValidOTPTemplate(tmpl string) bool {
	return strings.Contains(tmpl, PlaceholderOTP)
}
