package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Manohar-jami/Job-Portal-Api/internal/apperrors"
	"github.com/Manohar-jami/Job-Portal-Api/internal/auth"
	"github.com/Manohar-jami/Job-Portal-Api/internal/dtos"
	"github.com/Manohar-jami/Job-Portal-Api/internal/models"
	"github.com/Manohar-jami/Job-Portal-Api/internal/repository"
)

const msgBadCredentials = "No active account found with the given credentials"

type AuthService struct {
	Users  repository.UserRepository
	Tokens *auth.TokenIssuer
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// Register creates an identity with the requested role. The username
// uniqueness check and the unique index report the same field error.
func (s *AuthService) Register(ctx context.Context, req *dtos.RegisterRequest) (*models.User, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, apperrors.Validation("validation failed", map[string]string{"role": "Must be one of: candidate, recruiter."})
	}
	username := strings.TrimSpace(req.Username)

	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return nil, duplicateUsername()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("failed to register user", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to register user", err)
	}
	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateUsername()
		}
		return nil, apperrors.Internal("failed to register user", err)
	}

	zerolog.Ctx(ctx).Info().Uint("user_id", user.ID).Str("role", string(role)).Msg("user registered")
	return user, nil
}

func duplicateUsername() error {
	return apperrors.Validation("validation failed", map[string]string{"username": "A user with that username already exists."})
}

// Login checks the credentials and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, req *dtos.LoginRequest) (*auth.TokenPair, error) {
	user, err := s.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized(msgBadCredentials)
		}
		return nil, apperrors.Internal("failed to log in", err)
	}
	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to log in", err)
	}
	if !ok {
		return nil, apperrors.Unauthorized(msgBadCredentials)
	}
	pair, err := s.Tokens.IssuePair(user)
	if err != nil {
		return nil, apperrors.Internal("failed to issue tokens", err)
	}
	return pair, nil
}

func (s *AuthService) RefreshAccess(_ context.Context, refreshToken string) (string, error) {
	access, err := s.Tokens.Refresh(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrWrongTokenType) {
			return "", apperrors.Unauthorized("Token is invalid or expired")
		}
		return "", apperrors.Internal("failed to refresh token", err)
	}
	return access, nil
}

// Authenticate resolves a bearer access token to the caller. The user must
// still exist; role comes from the stored record.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Principal, error) {
	claims, err := s.Tokens.Parse(accessToken, auth.TokenTypeAccess)
	if err != nil {
		return nil, apperrors.Unauthorized("Given token not valid for any token type")
	}
	user, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("User not found")
		}
		return nil, apperrors.Internal("failed to authenticate", err)
	}
	return &auth.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}
