package owner

import (
	"context"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/owner"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// Service handles owner and pet business operations
type Service struct {
	ownerRepo owner.Repository
	petRepo   owner.PetRepository
}

// NewService creates a new owner Service
func NewService(ownerRepo owner.Repository, petRepo owner.PetRepository) *Service {
	return &Service{
		ownerRepo: ownerRepo,
		petRepo:   petRepo,
	}
}

// Create registers a new owner. Phone numbers must be unique across
// active owners.
func (s *Service) Create(ctx context.Context, req CreateOwnerRequest) (*OwnerResponse, error) {
	if existing, err := s.ownerRepo.FindByPhone(ctx, req.Phone); err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_PHONE", "An owner with this phone number already exists")
	}

	o, err := owner.NewOwner(req.FirstName, req.LastName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	o.UpdateAddress(req.Address, req.City, req.State, req.PinCode)
	if req.GSTIN != "" {
		if err := o.SetGSTIN(req.GSTIN); err != nil {
			return nil, err
		}
	}
	o.Notes = req.Notes

	if err := s.ownerRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOwnerResponse(o)
	return &resp, nil
}

// GetByID retrieves an owner with their pets
func (s *Service) GetByID(ctx context.Context, ownerID uuid.UUID) (*OwnerResponse, error) {
	o, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	resp := ToOwnerResponse(o)
	return &resp, nil
}

// List retrieves owners with filtering and pagination
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[OwnerResponse], error) {
	owners, err := s.ownerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ownerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToOwnerResponses(owners), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update modifies an owner's details
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, req UpdateOwnerRequest) (*OwnerResponse, error) {
	o, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil || req.Phone != nil {
		email := o.Email
		phone := o.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := o.UpdateContact(email, phone); err != nil {
			return nil, err
		}
	}
	if req.Address != nil || req.City != nil || req.State != nil || req.PinCode != nil {
		address, city, state, pin := o.Address, o.City, o.State, o.PinCode
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		if req.State != nil {
			state = *req.State
		}
		if req.PinCode != nil {
			pin = *req.PinCode
		}
		o.UpdateAddress(address, city, state, pin)
	}
	if req.GSTIN != nil {
		if err := o.SetGSTIN(*req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}

	if err := s.ownerRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	resp := ToOwnerResponse(o)
	return &resp, nil
}

// Delete soft-deletes an owner
func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID) error {
	o, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return err
	}
	o.Deactivate()
	return s.ownerRepo.Save(ctx, o)
}

// AddPet registers a pet under an owner
func (s *Service) AddPet(ctx context.Context, ownerID uuid.UUID, req CreatePetRequest) (*PetResponse, error) {
	if _, err := s.ownerRepo.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	p, err := owner.NewPet(ownerID, req.Name, owner.Species(req.Species), req.Breed)
	if err != nil {
		return nil, err
	}
	p.DateOfBirth = req.DateOfBirth
	if req.WeightKg != nil {
		if err := p.UpdateWeight(*req.WeightKg); err != nil {
			return nil, err
		}
	}
	p.MicrochipID = req.MicrochipID
	p.MedicalNotes = req.MedicalNotes

	if err := s.petRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToPetResponse(p)
	return &resp, nil
}

// ListPets retrieves the pets of an owner
func (s *Service) ListPets(ctx context.Context, ownerID uuid.UUID) ([]PetResponse, error) {
	pets, err := s.petRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]PetResponse, len(pets))
	for i := range pets {
		out[i] = ToPetResponse(&pets[i])
	}
	return out, nil
}

// RemovePet soft-deletes a pet
func (s *Service) RemovePet(ctx context.Context, petID uuid.UUID) error {
	p, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		return err
	}
	p.Deactivate()
	return s.petRepo.Save(ctx, p)
}
