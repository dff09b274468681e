package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"yatube/internal/config"
	"yatube/internal/core/apperror"
	userEntity "yatube/internal/core/user"
	"yatube/internal/core/validation"
	userPort "yatube/internal/ports/user"
)

const (
	tokenIssuer = "yatube"
	tokenTTL    = 14 * 24 * time.Hour
)

var errInvalidToken = errors.New("invalid session token")

// reservedUsernames collide with top-level routes.
var reservedUsernames = map[string]bool{
	"group": true, "group_list": true, "create_post": true, "create_group": true,
	"delete_post": true, "delete_comment": true, "auth": true, "follow": true,
	"media": true, "metrics": true, "health": true,
}

// UserService registers users and issues session tokens.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
	}
}

// Register validates the signup form and creates the user.
func (s *UserService) Register(ctx context.Context, in userPort.SignupInput) (*userEntity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if reservedUsernames[strings.ToLower(in.Username)] {
		return nil, apperror.NewValidationError("username", "This username is not available.")
	}

	taken, err := s.UserRepository.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apperror.NewValidationError("username", "A user with that username already exists.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashed),
	})
	if errors.Is(err, apperror.ErrConflict) {
		return nil, apperror.NewValidationError("username", "A user with that username already exists.")
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	config.Logger.Info("👤 User registered", zap.String("username", u.Username))
	return u, nil
}

// Login checks credentials and issues a signed session token.
func (s *UserService) Login(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(ctx, strings.TrimSpace(username))
	if apperror.IsNotFound(err) {
		return nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		config.Logger.Debug("invalid password", zap.String("username", u.Username))
		return nil, apperror.ErrInvalidCredentials
	}

	expires := time.Now().Add(tokenTTL)
	token, err := s.generateJWT(u, expires)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expires.Unix(),
		User:      u,
	}, nil
}

func (s *UserService) generateJWT(u *userEntity.User, expires time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: expires.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// Authenticate resolves a session token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*userEntity.User, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !parsed.Valid || claims.Issuer != tokenIssuer {
		return nil, errInvalidToken
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return nil, errInvalidToken
	}
	u, err := s.UserRepository.FindByID(ctx, id)
	if apperror.IsNotFound(err) {
		return nil, errInvalidToken
	}
	return u, err
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*userEntity.User, error) {
	return s.UserRepository.FindByUsername(ctx, username)
}
