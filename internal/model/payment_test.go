package model

import (
	"encoding/json"
	"testing"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_Validate(t *testing.T) {
	for _, m := range DefaultPaymentMethods() {
		assert.NoError(t, m.Validate(), m.Type)
	}

	enabledNoAccount := NewWalletMethod(PaymentBkash, "Bkash", MobilePaymentDetails{PaymentType: MobileSendMoney}, true)
	assert.Error(t, enabledNoAccount.Validate())

	badType := NewWalletMethod(PaymentNagad, "", MobilePaymentDetails{AccountNumber: "017", PaymentType: "gift"}, true)
	err := badType.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "unknown payment type")

	mismatched := PaymentMethod{Type: PaymentBank, Name: "Bank", Mobile: &MobilePaymentDetails{}}
	assert.Error(t, mismatched.Validate())
}

func TestPaymentMethod_Details(t *testing.T) {
	bank := NewBankMethod("Bank Transfer", BankPaymentDetails{AccountNumber: "123"}, true)

	_, err := bank.Details(PaymentProof{SenderAccountName: "Rahim"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	d, err := bank.Details(PaymentProof{SenderAccountName: " Rahim ", SenderAccountNumber: "999"})
	require.NoError(t, err)
	assert.Equal(t, PaymentDetails{Method: "Bank Transfer", SenderAccountName: "Rahim", SenderAccountNumber: "999"}, d)

	bkash := NewWalletMethod(PaymentBkash, "Bkash", MobilePaymentDetails{AccountNumber: "017", PaymentType: MobileSendMoney}, true)
	_, err = bkash.Details(PaymentProof{SenderNumber: "018"})
	require.Error(t, err)

	d, err = bkash.Details(PaymentProof{SenderNumber: "018", TransactionID: "TX1"})
	require.NoError(t, err)
	assert.Equal(t, "Bkash", d.Method)
	assert.Equal(t, "TX1", d.TransactionID)
	assert.Empty(t, d.SenderAccountName)
}

func TestPaymentMethod_JSON(t *testing.T) {
	in := []PaymentMethod{
		NewWalletMethod(PaymentRocket, "Rocket", MobilePaymentDetails{AccountNumber: "019", PaymentType: MobilePayment}, true),
		NewBankMethod("Bank Transfer", BankPaymentDetails{AccountName: "T Agro", AccountNumber: "42", BankName: "DBBL"}, false),
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"details":{"accountNumber":"019","paymentType":"payment"}`)

	var out []PaymentMethod
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	var unknown PaymentMethod
	assert.Error(t, json.Unmarshal([]byte(`{"type":"cash","name":"Cash"}`), &unknown))
}

func TestSmsTemplate_Get(t *testing.T) {
	tmpl := DefaultSmsTemplates()
	assert.True(t, IsValidOTPTemplate(tmpl.OTP.Get(LangEN)))
	assert.True(t, IsValidOTPTemplate(tmpl.OTP.Get(LangBN)))
	assert.Equal(t, "hi", SmsTemplate{EN: "hi"}.Get(LangBN))
}
