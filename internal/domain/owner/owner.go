package owner

import (
	"strings"
	"time"

	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// Owner is the aggregate root for a pet owner (the clinic's customer)
type Owner struct {
	shared.BaseAggregateRoot
	FirstName string `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName  string `gorm:"type:varchar(100)" json:"lastName,omitempty"`
	Email     string `gorm:"type:varchar(200);uniqueIndex" json:"email,omitempty"`
	Phone     string `gorm:"type:varchar(20);not null;index" json:"phone"`
	Address   string `gorm:"type:text" json:"address,omitempty"`
	City      string `gorm:"type:varchar(100)" json:"city,omitempty"`
	State     string `gorm:"type:varchar(100)" json:"state,omitempty"`
	PinCode   string `gorm:"type:varchar(10)" json:"pinCode,omitempty"`
	GSTIN     string `gorm:"type:varchar(15)" json:"gstin,omitempty"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`
	Pets      []Pet  `gorm:"foreignKey:OwnerID;references:ID" json:"pets,omitempty"`
	IsActive  bool   `gorm:"not null;default:true" json:"isActive"`
}

// TableName returns the table name for GORM
func (Owner) TableName() string {
	return "owners"
}

// NewOwner creates a new owner. Phone is the mandatory contact channel;
// email is optional but must look like an address when present.
func NewOwner(firstName, lastName, email, phone string) (*Owner, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}

	return &Owner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Phone:             strings.TrimSpace(phone),
		Pets:              make([]Pet, 0),
		IsActive:          true,
	}, nil
}

// FullName returns the display name of the owner
func (o *Owner) FullName() string {
	if o.LastName == "" {
		return o.FirstName
	}
	return o.FirstName + " " + o.LastName
}

// UpdateContact updates the contact details
func (o *Owner) UpdateContact(email, phone string) error {
	if strings.TrimSpace(phone) == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	o.Email = strings.ToLower(strings.TrimSpace(email))
	o.Phone = strings.TrimSpace(phone)
	o.UpdatedAt = time.Now()
	return nil
}

// UpdateAddress updates the postal address
func (o *Owner) UpdateAddress(address, city, state, pinCode string) {
	o.Address = address
	o.City = city
	o.State = state
	o.PinCode = pinCode
	o.UpdatedAt = time.Now()
}

// SetGSTIN records the owner's GST identification number for B2B invoices
func (o *Owner) SetGSTIN(gstin string) error {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && len(gstin) != 15 {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters")
	}
	o.GSTIN = gstin
	o.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the owner
func (o *Owner) Deactivate() {
	o.IsActive = false
	o.UpdatedAt = time.Now()
}
