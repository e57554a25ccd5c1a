package model

import "time"

type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	ProductID      string    `db:"product_id" json:"productId"`
	QuantityChange int       `db:"quantity_change" json:"quantityChange"`
	QuantityBefore int       `db:"quantity_before" json:"quantityBefore"`
	QuantityAfter  int       `db:"quantity_after" json:"quantityAfter"`
	Reason         string    `db:"reason" json:"reason"`
	ReferenceType  *string   `db:"reference_type" json:"referenceType,omitempty"`
	ReferenceID    *string   `db:"reference_id" json:"referenceId,omitempty"`
	CreatedBy      *string   `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
