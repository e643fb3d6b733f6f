package owner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Species classifies a pet
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

// IsValid checks if the species is valid
func (s Species) IsValid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesOther:
		return true
	}
	return false
}

// Pet belongs to an owner and can be referenced by sales
type Pet struct {
	shared.BaseEntity
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"ownerId"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	Species      Species         `gorm:"type:varchar(20);not null" json:"species"`
	Breed        string          `gorm:"type:varchar(100)" json:"breed,omitempty"`
	DateOfBirth  *time.Time      `json:"dateOfBirth,omitempty"`
	WeightKg     decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"weightKg"`
	MicrochipID  string          `gorm:"type:varchar(50)" json:"microchipId,omitempty"`
	MedicalNotes string          `gorm:"type:text" json:"medicalNotes,omitempty"`
	IsActive     bool            `gorm:"not null;default:true" json:"isActive"`
}

// TableName returns the table name for GORM
func (Pet) TableName() string {
	return "pets"
}

// NewPet creates a new pet under an owner
func NewPet(ownerID uuid.UUID, name string, species Species, breed string) (*Pet, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Pet name cannot be empty")
	}
	if !species.IsValid() {
		return nil, shared.NewDomainError("INVALID_SPECIES", "Species is not recognised")
	}

	return &Pet{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(name),
		Species:    species,
		Breed:      breed,
		IsActive:   true,
	}, nil
}

// AgeInMonths returns the pet's age in whole months, or -1 when the date
// of birth is unknown.
func (p *Pet) AgeInMonths(asOf time.Time) int {
	if p.DateOfBirth == nil {
		return -1
	}
	months := int(asOf.Sub(*p.DateOfBirth).Hours() / (24 * 30))
	if months < 0 {
		return 0
	}
	return months
}

// UpdateWeight records a new weight measurement
func (p *Pet) UpdateWeight(weightKg decimal.Decimal) error {
	if weightKg.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	p.WeightKg = weightKg
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the pet
func (p *Pet) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}
