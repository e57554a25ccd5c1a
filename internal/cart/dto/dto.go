package dto

type Line struct {
	ProductID string
	Quantity  int
}
