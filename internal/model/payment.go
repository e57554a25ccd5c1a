package model

import (
	"encoding/json"
	"strings"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"go.uber.org/multierr"
)

type PaymentType string

const (
	PaymentBkash  PaymentType = "bkash"
	PaymentNagad  PaymentType = "nagad"
	PaymentRocket PaymentType = "rocket"
	PaymentBank   PaymentType = "bank"
)

func (t PaymentType) IsWallet() bool {
	return t == PaymentBkash || t == PaymentNagad || t == PaymentRocket
}

func (t PaymentType) Valid() bool {
	return t.IsWallet() || t == PaymentBank
}

type MobilePaymentType string

const (
	MobileSendMoney MobilePaymentType = "sendMoney"
	MobilePayment   MobilePaymentType = "payment"
)

type MobilePaymentDetails struct {
	AccountNumber string            `json:"accountNumber"`
	PaymentType   MobilePaymentType `json:"paymentType"`
}

type BankPaymentDetails struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	BranchName    string `json:"branchName"`
	RoutingNumber string `json:"routingNumber"`
}

// PaymentMethod is a tagged union: Type selects which of Mobile or Bank is set.
type PaymentMethod struct {
	Type      PaymentType
	Name      string
	IsEnabled bool
	Mobile    *MobilePaymentDetails
	Bank      *BankPaymentDetails
}

func NewWalletMethod(t PaymentType, name string, details MobilePaymentDetails, enabled bool) PaymentMethod {
	return PaymentMethod{Type: t, Name: name, IsEnabled: enabled, Mobile: &details}
}

func NewBankMethod(name string, details BankPaymentDetails, enabled bool) PaymentMethod {
	return PaymentMethod{Type: PaymentBank, Name: name, IsEnabled: enabled, Bank: &details}
}

// DefaultPaymentMethods is the registry before an admin has configured anything.
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		NewWalletMethod(PaymentBkash, "Bkash", MobilePaymentDetails{PaymentType: MobileSendMoney}, false),
		NewWalletMethod(PaymentNagad, "Nagad", MobilePaymentDetails{PaymentType: MobileSendMoney}, false),
		NewWalletMethod(PaymentRocket, "Rocket", MobilePaymentDetails{PaymentType: MobileSendMoney}, false),
		NewBankMethod("Bank Transfer", BankPaymentDetails{}, false),
	}
}

func (m PaymentMethod) Validate() error {
	var err error
	if strings.TrimSpace(m.Name) == "" {
		err = multierr.Append(err, apperror.Validation("payment method %q: name is required", m.Type))
	}

	switch {
	case m.Type.IsWallet():
		if m.Mobile == nil || m.Bank != nil {
			return multierr.Append(err, apperror.Validation("payment method %q: wallet details required", m.Type))
		}
		if m.Mobile.PaymentType != MobileSendMoney && m.Mobile.PaymentType != MobilePayment {
			err = multierr.Append(err, apperror.Validation("payment method %q: unknown payment type %q", m.Type, m.Mobile.PaymentType))
		}
		if m.IsEnabled && strings.TrimSpace(m.Mobile.AccountNumber) == "" {
			err = multierr.Append(err, apperror.Validation("payment method %q: account number is required when enabled", m.Type))
		}
	case m.Type == PaymentBank:
		if m.Bank == nil || m.Mobile != nil {
			return multierr.Append(err, apperror.Validation("payment method %q: bank details required", m.Type))
		}
		if m.IsEnabled && strings.TrimSpace(m.Bank.AccountNumber) == "" {
			err = multierr.Append(err, apperror.Validation("payment method %q: account number is required when enabled", m.Type))
		}
	default:
		err = multierr.Append(err, apperror.Validation("unknown payment method type %q", m.Type))
	}
	return err
}

// PaymentProof is what the customer supplies so an admin can verify an
// off-platform payment.
type PaymentProof struct {
	SenderNumber        string `json:"senderNumber"`
	TransactionID       string `json:"transactionId"`
	SenderAccountName   string `json:"senderAccountName"`
	SenderAccountNumber string `json:"senderAccountNumber"`
}

// Details checks the proof fields required by the channel and returns the
// payment details recorded on the order.
func (m PaymentMethod) Details(proof PaymentProof) (PaymentDetails, error) {
	details := PaymentDetails{Method: m.Name}
	switch {
	case m.Type == PaymentBank:
		name := strings.TrimSpace(proof.SenderAccountName)
		number := strings.TrimSpace(proof.SenderAccountNumber)
		if name == "" || number == "" {
			return details, apperror.Validation("please provide your account name and number").WithCode("payment_proof_required")
		}
		details.SenderAccountName = name
		details.SenderAccountNumber = number
	case m.Type.IsWallet():
		sender := strings.TrimSpace(proof.SenderNumber)
		txID := strings.TrimSpace(proof.TransactionID)
		if sender == "" || txID == "" {
			return details, apperror.Validation("please provide your sending number and transaction ID").WithCode("payment_proof_required")
		}
		details.SenderNumber = sender
		details.TransactionID = txID
	default:
		return details, apperror.Validation("unknown payment method type %q", m.Type)
	}
	return details, nil
}

type paymentMethodJSON struct {
	Type      PaymentType     `json:"type"`
	Name      string          `json:"name"`
	IsEnabled bool            `json:"isEnabled"`
	Details   json.RawMessage `json:"details"`
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	var details interface{} = struct{}{}
	switch {
	case m.Bank != nil:
		details = m.Bank
	case m.Mobile != nil:
		details = m.Mobile
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return json.Marshal(paymentMethodJSON{Type: m.Type, Name: m.Name, IsEnabled: m.IsEnabled, Details: raw})
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var aux paymentMethodJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = PaymentMethod{Type: aux.Type, Name: aux.Name, IsEnabled: aux.IsEnabled}

	raw := aux.Details
	if len(raw) == 0 || string(raw) == "null" {
		raw = []byte("{}")
	}
	switch {
	case aux.Type == PaymentBank:
		m.Bank = &BankPaymentDetails{}
		return json.Unmarshal(raw, m.Bank)
	case aux.Type.IsWallet():
		m.Mobile = &MobilePaymentDetails{}
		return json.Unmarshal(raw, m.Mobile)
	}
	return apperror.Validation("unknown payment method type %q", aux.Type)
}
