package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/identity"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

var errInvalidCredentials = shared.NewDomainError(shared.CodeInvalidCredential, "Invalid username or password")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	revocation auth.RevocationStore
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	revocation auth.RevocationStore,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		revocation: revocation,
		config:     config,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown user", zap.String("username", input.Username))
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", user.Username))
		return nil, shared.NewDomainError(shared.CodeAccountInactive, "Account has been deactivated")
	}
	if user.IsLocked() {
		s.logger.Warn("Login attempt for locked account", zap.String("username", user.Username))
		return nil, shared.NewDomainError(shared.CodeAccountLocked, "Account is locked. Please try again later")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}
		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", user.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError(shared.CodeAccountLocked, "Too many failed login attempts. Account has been locked")
		}
		return nil, errInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// login still succeeds
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}
	result.User = ToUserResponse(user)

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	return result, nil
}

// Refresh exchanges a refresh token for a new pair. The old refresh token is
// revoked and the role is re-read from the user.
func (s *AuthService) Refresh(ctx context.Context, input RefreshTokenInput) (*TokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, shared.NewDomainError(shared.CodeTokenExpired, "Refresh token has expired")
		}
		return nil, shared.NewDomainError(shared.CodeTokenInvalid, "Invalid refresh token")
	}

	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeTokenInvalid, "Invalid user ID in token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeTokenInvalid, "User no longer exists")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError(shared.CodeAccountInactive, "Account is not active")
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	if err := s.revocation.RevokeToken(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
	}
	result.User = ToUserResponse(user)
	return result, nil
}

// Logout revokes the access token and, when given, the refresh token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessJTI != "" {
		if err := s.revocation.RevokeToken(ctx, input.AccessJTI, input.AccessTTL); err != nil {
			return err
		}
	}
	if input.RefreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
		if err != nil {
			// an unusable refresh token needs no revocation
			return nil
		}
		if err := s.revocation.RevokeToken(ctx, claims.ID, claims.RemainingTTL()); err != nil {
			return err
		}
	}
	return nil
}

// Me returns the authenticated user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword changes the caller's password and revokes the caller's other sessions
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(input.CurrentPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if err := s.revocation.RevokeUser(ctx, user.ID.String(), s.jwtService.RefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke sessions after password change", zap.Error(err))
	}
	s.logger.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *AuthService) issue(user *identity.User) (*TokenResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}
	return &TokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.revocation.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked {
		revoked, err = s.revocation.IsUserRevoked(ctx, claims.UserID, claims.IssuedAtTime())
		if err != nil {
			return err
		}
	}
	if revoked {
		return shared.NewDomainError(shared.CodeTokenInvalid, "Token has been revoked")
	}
	return nil
}
