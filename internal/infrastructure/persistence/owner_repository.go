package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/owner"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOwnerRepository implements owner.Repository using GORM
type GormOwnerRepository struct {
	db *Database
}

// NewGormOwnerRepository creates a new GormOwnerRepository
func NewGormOwnerRepository(db *Database) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// FindByID finds an owner by ID with pets loaded
func (r *GormOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*owner.Owner, error) {
	var o owner.Owner
	if err := r.db.DB.WithContext(ctx).
		Preload("Pets").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByPhone finds an owner by phone number
func (r *GormOwnerRepository) FindByPhone(ctx context.Context, phone string) (*owner.Owner, error) {
	var o owner.Owner
	if err := r.db.DB.WithContext(ctx).
		Preload("Pets").
		Where("phone = ?", strings.TrimSpace(phone)).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByEmail finds an owner by email address
func (r *GormOwnerRepository) FindByEmail(ctx context.Context, email string) (*owner.Owner, error) {
	var o owner.Owner
	if err := r.db.DB.WithContext(ctx).
		Preload("Pets").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds owners matching the filter
func (r *GormOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]owner.Owner, error) {
	var owners []owner.Owner
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&owner.Owner{}), filter)
	query = applyPagination(query, filter)

	if err := query.Preload("Pets").Find(&owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}

// Save persists an owner
func (r *GormOwnerRepository) Save(ctx context.Context, o *owner.Owner) error {
	return r.db.DB.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(o).Error
}

// Delete removes an owner and their pets
func (r *GormOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&owner.Pet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&owner.Owner{}, "id = ?", id).Error
	})
}

// Count counts owners matching the filter
func (r *GormOwnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&owner.Owner{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOwnerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Where("is_active = ?", true)

	if city, ok := filter.Filters["city"]; ok {
		query = query.Where("city = ?", city)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	return query
}

var _ owner.Repository = (*GormOwnerRepository)(nil)

// GormPetRepository implements owner.PetRepository using GORM
type GormPetRepository struct {
	db *Database
}

// NewGormPetRepository creates a new GormPetRepository
func NewGormPetRepository(db *Database) *GormPetRepository {
	return &GormPetRepository{db: db}
}

// FindByID finds a pet by ID
func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*owner.Pet, error) {
	var p owner.Pet
	if err := r.db.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByOwner returns an owner's active pets
func (r *GormPetRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]owner.Pet, error) {
	var pets []owner.Pet
	if err := r.db.DB.WithContext(ctx).
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("name ASC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

// Save persists a pet
func (r *GormPetRepository) Save(ctx context.Context, pet *owner.Pet) error {
	return r.db.DB.WithContext(ctx).Save(pet).Error
}

// Delete removes a pet
func (r *GormPetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Delete(&owner.Pet{}, "id = ?", id).Error
}

var _ owner.PetRepository = (*GormPetRepository)(nil)
