package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	userEntity "inkwell/internal/core/user"
	"inkwell/internal/core/validation"
	userPort "inkwell/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer = "inkwell"
	tokenTTL    = 24 * time.Hour
)

// ErrInvalidCredentials is returned by LoginUser for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

type signupInput struct {
	Name     string `form:"name" validate:"max=150"`
	Username string `form:"username" validate:"required,max=150,username"`
	Password string `form:"password" validate:"required,min=8"`
}

type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	Now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		Now:            time.Now,
	}
}

// LoginUser checks the password and issues a signed token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		config.Logger.Info("Login for unknown user", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		config.Logger.Info("Login with wrong password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.Now().Add(tokenTTL)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}
	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   user.ID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  s.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// RegisterUser creates an account with a bcrypt hashed password.
func (s *UserService) RegisterUser(ctx context.Context, name, username, password string) (*userPort.UserDTO, error) {
	in := signupInput{
		Name:     strings.TrimSpace(name),
		Username: strings.TrimSpace(username),
		Password: password,
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     in.Name,
		Username: in.Username,
		Password: string(hashedPassword),
	})
	if apperror.IsConflict(err) {
		return nil, apperror.NewValidationError("username", "a user with that username already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	config.Logger.Info("User registered", zap.String("username", u.Username))
	return userPort.NewUserDTO(u), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userPort.NewUserDTO(u), nil
}

// DeleteUser removes the account with everything it owns.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	if err := s.UserRepository.DeleteByUsername(ctx, username); err != nil {
		return err
	}
	config.Logger.Info("User deleted", zap.String("username", username))
	return nil
}
