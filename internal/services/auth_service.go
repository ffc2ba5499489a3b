package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hoot-api/dto"
	"hoot-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken     = errors.New("email already exists")
	ErrBadCredentials = errors.New("invalid email or password")
)

// AuthUserStore is the slice of the user repository the auth flow needs.
type AuthUserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	Users    AuthUserStore
	Secret   string
	TokenTTL time.Duration
}

func NewAuthService(users AuthUserStore, secret string) *AuthService {
	return &AuthService{Users: users, Secret: secret, TokenTTL: 24 * time.Hour}
}

func (s *AuthService) SignUp(ctx context.Context, req dto.SignUpReq) (*dto.TokenResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)
	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Users.Insert(ctx, user); err != nil {
		return nil, err
	}

	return s.tokenFor(user)
}

func (s *AuthService) SignIn(ctx context.Context, req dto.SignInReq) (*dto.TokenResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.Users.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrBadCredentials
	}

	return s.tokenFor(user)
}

func (s *AuthService) tokenFor(user *models.User) (*dto.TokenResponse, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid": user.ID.Hex(),
		"sub": user.ID.Hex(),
		"iat": now.Unix(),
		"exp": now.Add(s.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.Secret))
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: signed, User: dto.ProfileOf(user)}, nil
}
