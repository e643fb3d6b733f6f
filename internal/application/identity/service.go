package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/identity"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// TokenIssuer issues signed access tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID, username string, role identity.Role) (token string, expiresAt time.Time, err error)
}

// Service handles user accounts and authentication
type Service struct {
	userRepo identity.Repository
	tokens   TokenIssuer
}

// NewService creates a new identity Service
func NewService(userRepo identity.Repository, tokens TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new staff account
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if existing, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_USERNAME", "Username is already taken")
	}
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "Email is already registered")
	}

	u, err := identity.NewUser(req.Username, req.Email, req.FullName, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// Login authenticates a user and issues an access token. Failed lookups
// and bad passwords return the same error so usernames cannot be probed.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	invalidCredentials := shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

	u, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil || u == nil {
		return nil, invalidCredentials
	}
	if !u.IsActive {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "This account has been disabled")
	}
	if !u.VerifyPassword(req.Password) {
		return nil, invalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, err
	}

	u.RecordLogin()
	if err := s.userRepo.Save(ctx, u); err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(u),
	}, nil
}

// GetByID retrieves a user account
func (s *Service) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// List retrieves user accounts with pagination
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ChangePassword rotates the password of a user
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, u)
}

// Deactivate disables a user account
func (s *Service) Deactivate(ctx context.Context, userID uuid.UUID) error {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	u.Deactivate()
	return s.userRepo.Save(ctx, u)
}
