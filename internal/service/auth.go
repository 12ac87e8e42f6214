package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mctasu/vending-machine-service/internal/config"
	"github.com/mctasu/vending-machine-service/internal/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UsersRepo interface {
	SaveUser(ctx context.Context, u entities.User) error
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	GetUserByID(ctx context.Context, userID string) (entities.User, error)
}

type authService struct {
	logger *slog.Logger
	repo   UsersRepo
	secret []byte
	ttl    time.Duration
}

func NewAuthService(logger *slog.Logger, repo UsersRepo, cfg config.JWT) *authService {
	return &authService{
		logger: logger.With(slog.String("service", "auth")),
		repo:   repo,
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
	}
}

func (s *authService) SignUp(ctx context.Context, name, email, password string) (entities.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entities.RoleUser,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.SaveUser(ctx, user); err != nil {
		return entities.User{}, "", err
	}

	token, err := s.signToken(user)
	if err != nil {
		return entities.User{}, "", err
	}

	s.logger.Info("user signed up", slog.String("user_id", user.ID))
	return user, token, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (entities.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, entities.ErrUserNotFound) {
		return entities.User{}, "", entities.ErrInvalidCredentials
	}
	if err != nil {
		return entities.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return entities.User{}, "", entities.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return entities.User{}, "", err
	}
	return user, token, nil
}

// VerifyToken parses a bearer token and resolves it to a live user, so
// tokens of deleted or deactivated accounts stop working immediately.
func (s *authService) VerifyToken(ctx context.Context, token string) (entities.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return entities.User{}, entities.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return entities.User{}, entities.ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, claims.Subject)
	if errors.Is(err, entities.ErrUserNotFound) {
		return entities.User{}, entities.ErrInvalidToken
	}
	if err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (s *authService) signToken(user entities.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
