package model

import (
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending               OrderStatus = "Pending"
	OrderStatusProcessing            OrderStatus = "Processing"
	OrderStatusShipped               OrderStatus = "Shipped"
	OrderStatusDelivered             OrderStatus = "Delivered"
	OrderStatusCancelled             OrderStatus = "Cancelled"
	OrderStatusCancellationRequested OrderStatus = "Cancellation Requested"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusCancellationRequested:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type OrderAction string

const (
	ActionConfirmPayment      OrderAction = "confirm_payment"
	ActionMarkShipped         OrderAction = "mark_shipped"
	ActionMarkDelivered       OrderAction = "mark_delivered"
	ActionRequestCancellation OrderAction = "request_cancellation"
	ActionApproveCancellation OrderAction = "approve_cancellation"
	ActionDenyCancellation    OrderAction = "deny_cancellation"
)

type transition struct {
	to    OrderStatus
	actor Role
}

// transitions is the complete order state machine. Anything not listed is rejected.
var transitions = map[OrderStatus]map[OrderAction]transition{
	OrderStatusPending: {
		ActionConfirmPayment: {to: OrderStatusProcessing, actor: RoleAdmin},
	},
	OrderStatusProcessing: {
		ActionMarkShipped:         {to: OrderStatusShipped, actor: RoleAdmin},
		ActionRequestCancellation: {to: OrderStatusCancellationRequested, actor: RoleCustomer},
	},
	OrderStatusShipped: {
		ActionMarkDelivered: {to: OrderStatusDelivered, actor: RoleAdmin},
	},
	OrderStatusCancellationRequested: {
		ActionApproveCancellation: {to: OrderStatusCancelled, actor: RoleAdmin},
		ActionDenyCancellation:    {to: OrderStatusProcessing, actor: RoleAdmin},
	},
}

// NextStatus applies action to from on behalf of actor.
func NextStatus(from OrderStatus, action OrderAction, actor Role) (OrderStatus, error) {
	t, ok := transitions[from][action]
	if !ok {
		return from, apperror.Precondition("cannot %s an order in status %q", action, from)
	}
	if t.actor != actor {
		return from, apperror.Forbidden("only a " + string(t.actor) + " may " + string(action))
	}
	return t.to, nil
}

// AvailableActions lists the actions actor may take on an order in status s.
func AvailableActions(s OrderStatus, actor Role) []OrderAction {
	var out []OrderAction
	for _, action := range []OrderAction{
		ActionConfirmPayment, ActionMarkShipped, ActionMarkDelivered,
		ActionRequestCancellation, ActionApproveCancellation, ActionDenyCancellation,
	} {
		if t, ok := transitions[s][action]; ok && t.actor == actor {
			out = append(out, action)
		}
	}
	return out
}

// ProductSnapshot is the copy of a product frozen into an order line.
type ProductSnapshot struct {
	ID          string          `json:"id" bson:"id"`
	Name        LocalizedString `json:"name" bson:"name"`
	Price       decimal.Decimal `json:"price" bson:"price"`
	ImageURL    string          `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Category    Category        `json:"category,omitempty" bson:"category,omitempty"`
	Description LocalizedString `json:"description" bson:"description"`
}

type OrderItem struct {
	Product  ProductSnapshot `json:"product" bson:"product"`
	Quantity int             `json:"quantity" bson:"quantity"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type PaymentDetails struct {
	Method              string `json:"method" bson:"method"`
	SenderNumber        string `json:"senderNumber,omitempty" bson:"senderNumber,omitempty"`
	TransactionID       string `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	SenderAccountName   string `json:"senderAccountName,omitempty" bson:"senderAccountName,omitempty"`
	SenderAccountNumber string `json:"senderAccountNumber,omitempty" bson:"senderAccountNumber,omitempty"`
}

type Order struct {
	ID              string          `json:"id" bson:"id"`
	UserID          string          `json:"userId" bson:"userId"`
	UserName        string          `json:"userName" bson:"userName"`
	UserPhone       string          `json:"userPhone,omitempty" bson:"userPhone,omitempty"`
	OrderDate       time.Time       `json:"orderDate" bson:"orderDate"`
	Items           []OrderItem     `json:"items" bson:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount" bson:"totalAmount"`
	ShippingAddress Address         `json:"shippingAddress" bson:"shippingAddress"`
	PaymentDetails  PaymentDetails  `json:"paymentDetails" bson:"paymentDetails"`
	Status          OrderStatus     `json:"status" bson:"status"`
}

// TotalString renders the total with two decimals, e.g. "3198.00".
func (o *Order) TotalString() string {
	return o.TotalAmount.StringFixed(2)
}

func ComputeTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
