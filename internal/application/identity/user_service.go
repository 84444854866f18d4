package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/identity"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles admin user management
type UserService struct {
	userRepo   identity.UserRepository
	revocation auth.RevocationStore
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewUserService creates a new user service. sessionTTL bounds how long a
// user-wide revocation must be remembered (the refresh token lifetime).
func NewUserService(
	userRepo identity.UserRepository,
	revocation auth.RevocationStore,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		revocation: revocation,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Create creates a new active user
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Username is already taken")
	}

	user, err := identity.NewUser(req.Username, req.Password, req.FullName, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := identity.UserFilter{
		Keyword:  filter.Search,
		Active:   filter.Active,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Role != "" {
		role := identity.Role(filter.Role)
		domainFilter.Role = &role
	}
	users, total, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToUserResponses(users), total, nil
}

// GetByID returns one user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update changes the user's name and role. The last active admin cannot be demoted.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newRole := identity.Role(req.Role)
	demoted := user.IsAdmin() && user.Active && newRole != identity.RoleAdmin
	if demoted {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return nil, err
		}
	}
	if err := user.Update(req.FullName, newRole); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if demoted {
		s.revokeSessions(ctx, user)
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// SetPassword resets a user's password and ends their sessions
func (s *UserService) SetPassword(ctx context.Context, id uuid.UUID, req SetPasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(req.Password); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	s.revokeSessions(ctx, user)
	s.logger.Info("Password reset by admin", zap.String("user_id", user.ID.String()))
	return nil
}

// Activate re-enables a user
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Deactivate disables a user. Admins cannot deactivate themselves and the
// last active admin stays active.
func (s *UserService) Deactivate(ctx context.Context, id, actorID uuid.UUID) (*UserResponse, error) {
	if id == actorID {
		return nil, shared.NewDomainError(shared.CodeForbidden, "You cannot deactivate your own account")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() && user.Active {
		if err := s.ensureAnotherAdmin(ctx); err != nil {
			return nil, err
		}
	}
	if err := user.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.revokeSessions(ctx, user)

	s.logger.Info("User deactivated",
		zap.String("user_id", user.ID.String()),
		zap.String("by", actorID.String()))
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) ensureAnotherAdmin(ctx context.Context) error {
	admins, err := s.userRepo.CountActiveAdmins(ctx)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return shared.NewConflictError("The last active admin cannot be deactivated or demoted")
	}
	return nil
}

func (s *UserService) revokeSessions(ctx context.Context, user *identity.User) {
	if err := s.revocation.RevokeUser(ctx, user.ID.String(), s.sessionTTL); err != nil {
		s.logger.Error("Failed to revoke user sessions",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}
