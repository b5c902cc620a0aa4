package auth

import (
	"context"
	"strings"

	dommember "example.com/ecomshop/app/internal/domain/member"
	domuser "example.com/ecomshop/app/internal/domain/user"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Claims struct {
	UserID int64
	Email  string
	Name   string
}

type TokenService interface {
	GenerateToken(u *domuser.User) (string, error)
	ParseToken(token string) (*Claims, error)
}

type Service struct {
	userRepo   domuser.Repository
	memberRepo dommember.Repository
	hasher     PasswordHasher
	tokens     TokenService
}

func NewService(
	userRepo domuser.Repository,
	memberRepo dommember.Repository,
	hasher PasswordHasher,
	tokens TokenService,
) *Service {
	return &Service{
		userRepo:   userRepo,
		memberRepo: memberRepo,
		hasher:     hasher,
		tokens:     tokens,
	}
}

type RegisterInput struct {
	Email       string
	DisplayName string
	Password    string
}

type AuthResult struct {
	Token string
	User  *domuser.User
}

// Register creates the account and its member profile, then issues a token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.Create(ctx, &domuser.User{
		Email:        email,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.Create(ctx, &dommember.Member{
		UserID:      u.ID,
		DisplayName: in.DisplayName,
	}); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domuser.ErrUnauthorized
	}

	if err := s.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		return nil, domuser.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}
