package dto

const (
	ReferenceManual = "manual_adjustment"
	ReferenceSale   = "sale"
)

type AdjustStockInput struct {
	ProductID      string
	QuantityChange int
	Reason         string
	ReferenceID    string
	ReferenceType  string // manual_adjustment, sale
	UserID         string
}
