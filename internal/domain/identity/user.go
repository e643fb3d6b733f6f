package identity

import (
	"strings"
	"time"

	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Role grants a user a set of capabilities
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleVeterinarian Role = "veterinarian"
	RoleStaff        Role = "staff"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleVeterinarian, RoleStaff:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CanManageUsers reports whether the role may administer accounts
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanConfirmSales reports whether the role may confirm and cancel sales
func (r Role) CanConfirmSales() bool {
	return r == RoleAdmin || r == RoleVeterinarian || r == RoleStaff
}

// User is a staff account that can operate the system
type User struct {
	shared.BaseAggregateRoot
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	FullName     string     `gorm:"type:varchar(200);not null" json:"fullName"`
	PasswordHash string     `gorm:"type:varchar(100);not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a hashed password
func NewUser(username, email, fullName, password string, role Role) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role is not recognised")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("HASH_FAILED", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		FullName:          strings.TrimSpace(fullName),
		PasswordHash:      string(hash),
		Role:              role,
		IsActive:          true,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// ChangePassword replaces the stored hash after verifying the old password
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	if len(newPassword) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return shared.NewDomainError("HASH_FAILED", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// ChangeRole updates the user's role
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role is not recognised")
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
}

// Activate re-enables the account
func (u *User) Activate() {
	u.IsActive = true
	u.UpdatedAt = time.Now()
}
