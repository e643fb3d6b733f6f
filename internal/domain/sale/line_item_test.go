package sale

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gst18() GSTDetails {
	return GSTDetails{
		IsApplicable: true,
		Rate:         decimal.NewFromInt(18),
		Type:         GSTTypeCGSTSGST,
		HSNCode:      "3004",
	}
}

func noGST() GSTDetails {
	return GSTDetails{
		IsApplicable: false,
		Rate:         decimal.Zero,
		Type:         GSTTypeExempt,
	}
}

func TestNewSaleLineItem(t *testing.T) {
	saleID := uuid.New()
	invID := uuid.New()

	t.Run("computes derived amounts on creation", func(t *testing.T) {
		item, err := NewSaleLineItem(saleID, invID, "Dog Food 5kg", "DF-5KG", 2,
			decimal.NewFromInt(100), decimal.NewFromInt(10), DiscountTypePercentage, gst18())
		require.NoError(t, err)

		assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal = %s", item.Subtotal)
		assert.True(t, item.DiscountAmt.Equal(decimal.NewFromInt(20)), "discount = %s", item.DiscountAmt)
		assert.True(t, item.TaxableAmount.Equal(decimal.NewFromInt(180)), "taxable = %s", item.TaxableAmount)
		assert.True(t, item.GSTAmount.Equal(decimal.NewFromFloat(32.4)), "gst = %s", item.GSTAmount)
		assert.True(t, item.Total.Equal(decimal.NewFromFloat(212.4)), "total = %s", item.Total)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewSaleLineItem(saleID, invID, "Dog Food", "DF", 0,
			decimal.NewFromInt(100), decimal.Zero, DiscountTypePercentage, noGST())
		assert.Error(t, err)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		_, err := NewSaleLineItem(saleID, invID, "Dog Food", "DF", 1,
			decimal.NewFromInt(-1), decimal.Zero, DiscountTypePercentage, noGST())
		assert.Error(t, err)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := NewSaleLineItem(saleID, invID, "Dog Food", "DF", 1,
			decimal.NewFromInt(100), decimal.NewFromInt(-5), DiscountTypeFixed, noGST())
		assert.Error(t, err)
	})

	t.Run("rejects empty item name", func(t *testing.T) {
		_, err := NewSaleLineItem(saleID, invID, "", "DF", 1,
			decimal.NewFromInt(100), decimal.Zero, DiscountTypePercentage, noGST())
		assert.Error(t, err)
	})

	t.Run("rejects GST rate above 100", func(t *testing.T) {
		bad := gst18()
		bad.Rate = decimal.NewFromInt(101)
		_, err := NewSaleLineItem(saleID, invID, "Dog Food", "DF", 1,
			decimal.NewFromInt(100), decimal.Zero, DiscountTypePercentage, bad)
		assert.Error(t, err)
	})
}

func TestSaleLineItemRecalculate(t *testing.T) {
	saleID := uuid.New()
	invID := uuid.New()

	t.Run("fixed discount subtracts verbatim", func(t *testing.T) {
		item, err := NewSaleLineItem(saleID, invID, "Grooming Kit", "GK-01", 1,
			decimal.NewFromInt(500), decimal.NewFromInt(50), DiscountTypeFixed, noGST())
		require.NoError(t, err)

		assert.True(t, item.DiscountAmt.Equal(decimal.NewFromInt(50)))
		assert.True(t, item.TaxableAmount.Equal(decimal.NewFromInt(450)))
		assert.True(t, item.Total.Equal(decimal.NewFromInt(450)))
	})

	t.Run("fixed discount above subtotal yields negative taxable amount", func(t *testing.T) {
		item, err := NewSaleLineItem(saleID, invID, "Sample Sachet", "SS-01", 1,
			decimal.NewFromInt(50), decimal.NewFromInt(80), DiscountTypeFixed, noGST())
		require.NoError(t, err)

		assert.True(t, item.TaxableAmount.Equal(decimal.NewFromInt(-30)))
		assert.True(t, item.Total.Equal(decimal.NewFromInt(-30)))
	})

	t.Run("inapplicable GST contributes nothing even with a configured rate", func(t *testing.T) {
		g := gst18()
		g.IsApplicable = false
		item, err := NewSaleLineItem(saleID, invID, "Vaccination", "VAC-01", 1,
			decimal.NewFromInt(300), decimal.Zero, DiscountTypePercentage, g)
		require.NoError(t, err)

		assert.True(t, item.GSTAmount.IsZero())
		assert.True(t, item.Total.Equal(decimal.NewFromInt(300)))
	})

	t.Run("percentage discount uses pre-discount subtotal", func(t *testing.T) {
		item, err := NewSaleLineItem(saleID, invID, "Cat Litter", "CL-10", 4,
			decimal.NewFromInt(250), decimal.NewFromInt(25), DiscountTypePercentage, noGST())
		require.NoError(t, err)

		// 4 * 250 = 1000, 25% of 1000 = 250
		assert.True(t, item.DiscountAmt.Equal(decimal.NewFromInt(250)))
		assert.True(t, item.TaxableAmount.Equal(decimal.NewFromInt(750)))
	})

	t.Run("recalculation is idempotent", func(t *testing.T) {
		item, err := NewSaleLineItem(saleID, invID, "Dog Food 5kg", "DF-5KG", 2,
			decimal.NewFromInt(100), decimal.NewFromInt(10), DiscountTypePercentage, gst18())
		require.NoError(t, err)

		before := item.Total
		item.Recalculate()
		item.Recalculate()
		assert.True(t, item.Total.Equal(before))
	})
}

func TestSaleLineItemUpdates(t *testing.T) {
	saleID := uuid.New()
	invID := uuid.New()

	item, err := NewSaleLineItem(saleID, invID, "Dog Food 5kg", "DF-5KG", 2,
		decimal.NewFromInt(100), decimal.NewFromInt(10), DiscountTypePercentage, gst18())
	require.NoError(t, err)

	t.Run("update quantity re-derives amounts", func(t *testing.T) {
		require.NoError(t, item.UpdateQuantity(3))
		assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(300)))
		assert.True(t, item.DiscountAmt.Equal(decimal.NewFromInt(30)))
	})

	t.Run("update quantity rejects zero", func(t *testing.T) {
		assert.Error(t, item.UpdateQuantity(0))
	})

	t.Run("update unit price re-derives amounts", func(t *testing.T) {
		require.NoError(t, item.UpdateQuantity(2))
		require.NoError(t, item.UpdateUnitPrice(decimal.NewFromInt(150)))
		assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(300)))
	})

	t.Run("update discount switches type", func(t *testing.T) {
		require.NoError(t, item.UpdateDiscount(decimal.NewFromInt(40), DiscountTypeFixed))
		assert.True(t, item.DiscountAmt.Equal(decimal.NewFromInt(40)))
		assert.True(t, item.TaxableAmount.Equal(decimal.NewFromInt(260)))
	})

	t.Run("update discount rejects unknown type", func(t *testing.T) {
		assert.Error(t, item.UpdateDiscount(decimal.NewFromInt(5), DiscountType("bogus")))
	})
}

func TestHasInventoryReference(t *testing.T) {
	item, err := NewSaleLineItem(uuid.New(), uuid.New(), "Dog Food", "DF", 1,
		decimal.NewFromInt(100), decimal.Zero, DiscountTypePercentage, noGST())
	require.NoError(t, err)
	assert.True(t, item.HasInventoryReference())

	service, err := NewSaleLineItem(uuid.New(), uuid.Nil, "Consultation", "", 1,
		decimal.NewFromInt(500), decimal.Zero, DiscountTypePercentage, noGST())
	require.NoError(t, err)
	assert.False(t, service.HasInventoryReference())
}
