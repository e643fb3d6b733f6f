package sale

import (
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// GSTType represents the GST treatment applied to a line item
type GSTType string

const (
	GSTTypeCGSTSGST  GSTType = "CGST_SGST"
	GSTTypeIGST      GSTType = "IGST"
	GSTTypeExempt    GSTType = "EXEMPT"
	GSTTypeNilRated  GSTType = "NIL_RATED"
	GSTTypeZeroRated GSTType = "ZERO_RATED"
)

// IsValid checks if the GST type is a valid GSTType
func (t GSTType) IsValid() bool {
	switch t {
	case GSTTypeCGSTSGST, GSTTypeIGST, GSTTypeExempt, GSTTypeNilRated, GSTTypeZeroRated:
		return true
	}
	return false
}

// String returns the string representation of GSTType
func (t GSTType) String() string {
	return string(t)
}

// DiscountType represents how a line-item discount is interpreted
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid checks if the discount type is valid
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixed
}

// GSTDetails holds the tax settings for a single line item
type GSTDetails struct {
	IsApplicable bool            `gorm:"not null;default:false" json:"isApplicable"`
	Rate         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"rate"`
	Type         GSTType         `gorm:"type:varchar(20);not null;default:'CGST_SGST'" json:"type"`
	HSNCode      string          `gorm:"type:varchar(20)" json:"hsnCode,omitempty"`
	SACCode      string          `gorm:"type:varchar(20)" json:"sacCode,omitempty"`
}

// Validate checks the GST settings for range and enum validity
func (g GSTDetails) Validate() error {
	if !g.Type.IsValid() {
		return shared.NewDomainError("INVALID_GST_TYPE", "GST type is not recognised")
	}
	if g.Rate.IsNegative() || g.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_GST_RATE", "GST rate must be between 0 and 100")
	}
	return nil
}

// EffectiveRate returns the rate to apply: zero unless GST is applicable
func (g GSTDetails) EffectiveRate() decimal.Decimal {
	if !g.IsApplicable {
		return decimal.Zero
	}
	return g.Rate
}
