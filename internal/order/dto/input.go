package dto

import "github.com/fekuna/tagro-storefront-service/internal/model"

type CheckoutInput struct {
	UserID      string
	AddressID   string // empty selects the default address
	PaymentType model.PaymentType
	Proof       model.PaymentProof
	Lang        model.Language
}

type CheckoutResult struct {
	Order   *model.Order `json:"order"`
	Message string       `json:"message"`
}

type TransitionInput struct {
	OrderID   string
	Action    model.OrderAction
	ActorID   string
	ActorRole model.Role
	Lang      model.Language
}

// TransitionResult carries the updated order. Warning is set when the
// status change was kept but its SMS could not be delivered.
type TransitionResult struct {
	Order   *model.Order `json:"order"`
	Message string       `json:"message"`
	Warning string       `json:"warning,omitempty"`
}
