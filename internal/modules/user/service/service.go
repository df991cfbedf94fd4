package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openlearn/course-library/internal/entity"
	"github.com/openlearn/course-library/internal/modules/user/dto"
	"github.com/openlearn/course-library/internal/modules/user/repository"
	"github.com/openlearn/course-library/internal/token"
	"github.com/openlearn/course-library/pkg/apperror"
	"github.com/openlearn/course-library/pkg/ratelimiter"
)

// One message for unknown email and wrong password alike, so login responses
// cannot be used to enumerate accounts.
const MsgInvalidCredentials = "invalid email or password"

const msgTooManyAttempts = "too many failed login attempts, try again later"

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.UserResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.UserResponse, string, time.Time, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	repo        repository.UserRepository
	tokens      *token.Manager
	limiter     *ratelimiter.Limiter
	maxAttempts int64
	loginWindow time.Duration
}

func NewAuthService(repo repository.UserRepository, tokens *token.Manager, limiter *ratelimiter.Limiter, maxAttempts int64, loginWindow time.Duration) AuthService {
	return &authService{
		repo:        repo,
		tokens:      tokens,
		limiter:     limiter,
		maxAttempts: maxAttempts,
		loginWindow: loginWindow,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Binding tags let whitespace-only values through `required`.
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.New(http.StatusBadRequest, "name is required", apperror.ErrInvalidInput)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.New(http.StatusConflict, "email is already registered", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Role is fixed at registration; only an explicit PROFESSOR overrides the
	// STUDENT default.
	role := entity.RoleStudent
	if input.Role == entity.RoleProfessor {
		role = entity.RoleProfessor
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.UserResponse, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	limitKey := "login:" + email

	if err := s.limiter.Blocked(ctx, limitKey, s.maxAttempts, msgTooManyAttempts); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.limiter.Strike(ctx, limitKey, s.loginWindow)
			return nil, "", time.Time{}, apperror.Unauthorized(MsgInvalidCredentials)
		}
		return nil, "", time.Time{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		_ = s.limiter.Strike(ctx, limitKey, s.loginWindow)
		return nil, "", time.Time{}, apperror.Unauthorized(MsgInvalidCredentials)
	}

	_ = s.limiter.Clear(ctx, limitKey)

	signed, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, signed, expiresAt, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid or expired session")
		}
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}
