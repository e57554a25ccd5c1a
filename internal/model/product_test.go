package model

import (
	"testing"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Ratings(t *testing.T) {
	p := testProduct("ff001", "1599.00")
	assert.Equal(t, 0.0, p.AverageRating())
	assert.Equal(t, 0, p.Stars())

	require.NoError(t, p.AddRating(Rating{UserID: "u1", UserName: "Rahim", Rating: 5}))
	require.NoError(t, p.AddRating(Rating{UserID: "u1", UserName: "Rahim", Rating: 4}))
	require.NoError(t, p.AddRating(Rating{Rating: 4}))

	require.Len(t, p.Ratings, 3)
	assert.InDelta(t, 4.333, p.AverageRating(), 0.001)
	assert.Equal(t, 4, p.Stars())
	assert.Equal(t, GuestUserID, p.Ratings[2].UserID)
	assert.Equal(t, GuestUserName, p.Ratings[2].UserName)
}

func TestProduct_AddRatingOutOfRange(t *testing.T) {
	p := testProduct("ff001", "1")
	for _, v := range []int{0, 6, -1} {
		err := p.AddRating(Rating{UserID: "u1", Rating: v})
		require.Error(t, err)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	}
	assert.Empty(t, p.Ratings)
}

func TestProduct_Setters(t *testing.T) {
	p := testProduct("ff001", "1")

	require.NoError(t, p.SetLocalized(FieldDescription, LangBN, "বিবরণ"))
	assert.Equal(t, "বিবরণ", p.Description.BN)
	assert.Error(t, p.SetLocalized("colour", LangEN, "red"))

	assert.Error(t, p.SetPrice(decimal.NewFromInt(-1)))
	require.NoError(t, p.SetPrice(decimal.RequireFromString("12.50")))
	assert.Equal(t, "12.50", p.Price.StringFixed(2))

	assert.Error(t, p.SetStock(-1))
	require.NoError(t, p.SetStock(0))

	assert.Error(t, p.SetCategory("Dog Food"))
	require.NoError(t, p.SetCategory(CategoryCattleFeed))

	assert.Error(t, p.SetWeightOptions([]float64{1, 0}))
	require.NoError(t, p.SetWeightOptions([]float64{1, 5, 25}))
	assert.Equal(t, []float64{1, 5, 25}, p.WeightOptions)
}

func TestProduct_Validate(t *testing.T) {
	p := testProduct("ff001", "1")
	require.NoError(t, p.Validate())

	p.Name.EN = " "
	assert.Error(t, p.Validate())

	p = testProduct("ff001", "1")
	p.Category = "Unknown"
	assert.Error(t, p.Validate())
}

func TestLocalizedString_FallsBackToEnglish(t *testing.T) {
	s := LocalizedString{EN: "Fish feed"}
	assert.Equal(t, "Fish feed", s.Get(LangBN))
	s.Set(LangBN, "মাছের খাবার")
	assert.Equal(t, "মাছের খাবার", s.Get(LangBN))
	assert.Equal(t, LangEN, ParseLanguage("fr"))
	assert.Equal(t, LangBN, ParseLanguage("bn"))
}
