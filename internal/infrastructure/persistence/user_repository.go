package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/identity"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.Repository using GORM
type GormUserRepository struct {
	db *Database
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *Database) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var u identity.User
	if err := r.db.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var u identity.User
	if err := r.db.DB.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail finds a user by email address
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var u identity.User
	if err := r.db.DB.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindAll finds users matching the filter
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	var users []identity.User
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&identity.User{}), filter)
	query = applyPagination(query, filter)

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Save persists a user
func (r *GormUserRepository) Save(ctx context.Context, u *identity.User) error {
	return r.db.DB.WithContext(ctx).Save(u).Error
}

// Delete removes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Delete(&identity.User{}, "id = ?", id).Error
}

// Count counts users matching the filter
func (r *GormUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&identity.User{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormUserRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if role, ok := filter.Filters["role"]; ok {
		query = query.Where("role = ?", role)
	}
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ? OR full_name ILIKE ?", pattern, pattern, pattern)
	}
	return query
}

var _ identity.Repository = (*GormUserRepository)(nil)
