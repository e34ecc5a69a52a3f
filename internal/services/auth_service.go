package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"user-management/config"
	"user-management/internal/domain/user"
	"user-management/internal/repository"
	um_errors "user-management/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a valid bcrypt digest compared against when the login email
// is unknown, so that failure latency does not reveal whether the account
// exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const (
	maxNameLength  = 50
	maxEmailLength = 100
)

type AuthService struct {
	userRepo     repository.UserRepository
	jwtSecret    []byte
	accessTTL    time.Duration
	bcryptCost   int
	registerMode string
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecret:    []byte(cfg.JWTSecret),
		accessTTL:    time.Duration(cfg.JWTExpiryMin) * time.Minute,
		bcryptCost:   cfg.BcryptCost,
		registerMode: cfg.RegisterMode,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresIn int64
	UserID    int64
}

type AccessClaims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Register creates a user record with a bcrypt hash in place of the
// plaintext password. In strict mode an email precheck runs before the
// insert; in constraint-only mode the unique index is the sole arbiter.
// Either way a lost insert race surfaces as ErrConflict, never as a
// generic failure.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if err := validateRegister(in); err != nil {
		return err
	}

	if s.registerMode == config.RegisterModeStrict {
		if _, err := s.userRepo.GetUserByEmail(ctx, in.Email); err == nil {
			return um_errors.ErrConflict
		} else if !errors.Is(err, um_errors.ErrNotFound) {
			return fmt.Errorf("failed to check existing user: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &user.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
	}

	return s.userRepo.Create(ctx, newUser)
}

// Login verifies the credentials and mints a signed access token carrying
// the user's id and email. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if err := validateLogin(in); err != nil {
		return LoginResult{}, err
	}

	u, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, um_errors.ErrNotFound) {
		return LoginResult{}, fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = u.PasswordHash
	}

	// bcrypt comparison always runs, whether or not the user exists.
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(in.Password))
	if err != nil || compareErr != nil {
		return LoginResult{}, um_errors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.newAccessToken(u.ID, u.Email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return LoginResult{Token: token, ExpiresIn: expiresIn, UserID: u.ID}, nil
}

// GetUser returns the stored record for an authenticated user.
func (s *AuthService) GetUser(ctx context.Context, id int64) (user.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, um_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, um_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, um_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, um_errors.ErrUnauthorized
	}

	return *claims, nil
}

func (s *AuthService) newAccessToken(userID int64, email string) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(s.accessTTL)

	claims := AccessClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, um_errors.ErrInvalidInput):
		return 400
	case errors.Is(err, um_errors.ErrInvalidCredentials), errors.Is(err, um_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, um_errors.ErrNotFound):
		return 404
	case errors.Is(err, um_errors.ErrConflict):
		return 409
	default:
		return 500
	}
}

func validateRegister(in RegisterInput) error {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return um_errors.ErrInvalidInput
	}
	if len(in.FirstName) > maxNameLength || len(in.LastName) > maxNameLength {
		return um_errors.ErrInvalidInput
	}
	if len(in.Email) > maxEmailLength {
		return um_errors.ErrInvalidInput
	}
	return nil
}

func validateLogin(in LoginInput) error {
	if in.Email == "" || in.Password == "" {
		return um_errors.ErrInvalidInput
	}
	return nil
}
