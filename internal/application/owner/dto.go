package owner

import (
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/owner"
	"github.com/shopspring/decimal"
)

// CreateOwnerRequest registers a new pet owner
type CreateOwnerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	PinCode   string `json:"pinCode"`
	GSTIN     string `json:"gstin"`
	Notes     string `json:"notes"`
}

// UpdateOwnerRequest updates an owner's details
type UpdateOwnerRequest struct {
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	PinCode *string `json:"pinCode"`
	GSTIN   *string `json:"gstin"`
	Notes   *string `json:"notes"`
}

// CreatePetRequest registers a pet under an owner
type CreatePetRequest struct {
	Name         string           `json:"name" binding:"required"`
	Species      string           `json:"species" binding:"required"`
	Breed        string           `json:"breed"`
	DateOfBirth  *time.Time       `json:"dateOfBirth"`
	WeightKg     *decimal.Decimal `json:"weightKg"`
	MicrochipID  string           `json:"microchipId"`
	MedicalNotes string           `json:"medicalNotes"`
}

// PetResponse is the representation of a pet
type PetResponse struct {
	ID           uuid.UUID       `json:"id"`
	OwnerID      uuid.UUID       `json:"ownerId"`
	Name         string          `json:"name"`
	Species      string          `json:"species"`
	Breed        string          `json:"breed,omitempty"`
	DateOfBirth  *time.Time      `json:"dateOfBirth,omitempty"`
	WeightKg     decimal.Decimal `json:"weightKg"`
	MicrochipID  string          `json:"microchipId,omitempty"`
	MedicalNotes string          `json:"medicalNotes,omitempty"`
	IsActive     bool            `json:"isActive"`
}

// OwnerResponse is the representation of an owner
type OwnerResponse struct {
	ID        uuid.UUID     `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName,omitempty"`
	FullName  string        `json:"fullName"`
	Email     string        `json:"email,omitempty"`
	Phone     string        `json:"phone"`
	Address   string        `json:"address,omitempty"`
	City      string        `json:"city,omitempty"`
	State     string        `json:"state,omitempty"`
	PinCode   string        `json:"pinCode,omitempty"`
	GSTIN     string        `json:"gstin,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	Pets      []PetResponse `json:"pets,omitempty"`
	IsActive  bool          `json:"isActive"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ToOwnerResponse converts a domain owner to its response
func ToOwnerResponse(o *owner.Owner) OwnerResponse {
	pets := make([]PetResponse, len(o.Pets))
	for i := range o.Pets {
		pets[i] = ToPetResponse(&o.Pets[i])
	}
	return OwnerResponse{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		FullName:  o.FullName(),
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		City:      o.City,
		State:     o.State,
		PinCode:   o.PinCode,
		GSTIN:     o.GSTIN,
		Notes:     o.Notes,
		Pets:      pets,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// ToOwnerResponses converts domain owners to responses
func ToOwnerResponses(owners []owner.Owner) []OwnerResponse {
	out := make([]OwnerResponse, len(owners))
	for i := range owners {
		out[i] = ToOwnerResponse(&owners[i])
	}
	return out
}

// ToPetResponse converts a domain pet to its response
func ToPetResponse(p *owner.Pet) PetResponse {
	return PetResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Species:      string(p.Species),
		Breed:        p.Breed,
		DateOfBirth:  p.DateOfBirth,
		WeightKg:     p.WeightKg,
		MicrochipID:  p.MicrochipID,
		MedicalNotes: p.MedicalNotes,
		IsActive:     p.IsActive,
	}
}
