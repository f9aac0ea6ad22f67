package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Mrfarooqui038501/Ecommerce/internal/auth"
	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
	"github.com/Mrfarooqui038501/Ecommerce/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the identity issuer: it authenticates credentials and
// mints the bearer token every other operation is attributed with.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.Tokens
}

func NewAuthService(users repository.UserRepository, tokens *auth.Tokens) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// AuthResult pairs the minted token with the public user view.
type AuthResult struct {
	Token string          `json:"token"`
	User  domain.UserView `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, &ValidationError{Message: "please provide all required fields"}
	}
	if !emailRe.MatchString(email) {
		return nil, &ValidationError{Message: "please provide a valid email address"}
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, &ValidationError{Message: "user with this email already exists"}
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, &ValidationError{Message: "user with this email already exists"}
		}
		return nil, err
	}

	label, err := s.generateLabel(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetLabel(ctx, user.ID, label); err != nil {
		return nil, err
	}
	user.UserID = label

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.View()}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, &ValidationError{Message: "please provide both email and password"}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.View()}, nil
}

// generateLabel builds the human-readable user label, e.g. USER3<last
// four digits of the current unix milliseconds>.
func (s *AuthService) generateLabel(ctx context.Context) (string, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return "", err
	}
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return fmt.Sprintf("USER%d%s", count, ms[len(ms)-4:]), nil
}
