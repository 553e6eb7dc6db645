package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arzan03/EstateHub/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService issues and verifies bearer sessions.
type AuthService struct {
	users    UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup validates the request before touching the database and always
// creates a plain user.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := models.Validate(req); err != nil {
		return models.User{}, &ValidationError{Msg: err.Error()}
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     models.RoleUser,
	})
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// Login authenticates a user and returns a signed token carrying the role.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := models.Validate(req); err != nil {
		return "", models.User{}, &ValidationError{Msg: err.Error()}
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, ErrNotFound) {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.User{}, fmt.Errorf("find user: %w", err)
	}

	if !VerifyPassword(req.Password, user.Password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("sign token: %w", err)
	}
	user.Password = ""
	return token, user, nil
}

// GenerateJWT generates a JWT token with user ID and role
func (s *AuthService) GenerateJWT(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies signature and expiry and extracts the session.
func (s *AuthService) ParseToken(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrUnauthenticated
	}
	userID, userExists := claims["user_id"].(string)
	role, roleExists := claims["role"].(string)
	if !userExists || !roleExists || strings.TrimSpace(userID) == "" {
		return Session{}, ErrUnauthenticated
	}
	return Session{UserID: userID, Role: role}, nil
}
