package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id, price string) Product {
	return Product{
		BaseModel: BaseModel{ID: id},
		Name:      LocalizedString{EN: "Product " + id},
		Category:  CategoryFishFeed,
		Price:     decimal.RequireFromString(price),
	}
}

func TestCart_AddMergesLines(t *testing.T) {
	var c Cart
	c.Add(testProduct("ff001", "1599.00"), 1)
	c.Add(testProduct("pf001", "2100.00"), 2)
	c.Add(testProduct("ff001", "1599.00"), 3)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "ff001", c.Items[0].Product.ID)
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, 6, c.ItemCount())
	assert.True(t, c.Contains("pf001"))
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	var c Cart
	c.Add(testProduct("ff001", "10"), 1)
	c.SetQuantity("ff001", 5)
	c.SetQuantity("missing", 9)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)

	c.Remove("ff001")
	assert.True(t, c.IsEmpty())
	c.Remove("ff001")
	assert.Equal(t, 0, c.ItemCount())
}

func TestCart_TotalPrice(t *testing.T) {
	var c Cart
	c.Add(testProduct("ff001", "1599.00"), 2)
	c.Add(testProduct("cf001", "0.10"), 3)

	assert.Equal(t, "3198.30", c.TotalPrice().StringFixed(2))

	c.Clear()
	assert.True(t, c.TotalPrice().IsZero())
}

func TestCart_OrderItemsSnapshot(t *testing.T) {
	var c Cart
	p := testProduct("ff001", "1599.00")
	p.Stock = 40
	c.Add(p, 2)

	items := c.OrderItems()
	require.Len(t, items, 1)
	assert.Equal(t, "ff001", items[0].Product.ID)
	assert.Equal(t, "3198.00", items[0].Subtotal().StringFixed(2))
	assert.Equal(t, "3198.00", ComputeTotal(items).StringFixed(2))
}
