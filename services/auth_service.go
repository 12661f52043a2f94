package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/revocation"
	"taskflow-app/taskflow/utils/token"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthServiceInterface interface {
	Register(db *database.Database, input RegisterInput) (models.User, error)
	Login(db *database.Database, email, password string) (string, error)
	Logout(ctx context.Context, claims *JWTClaims) error
	ValidateToken(ctx context.Context, tokenString string) (*JWTClaims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
}

type AuthService struct {
	jwtSecret         []byte
	jwtExpiration     time.Duration
	minPasswordLength int
	revoked           revocation.Store
	producer          broker.Producer
}

func NewAuthService(jwtSecret string, jwtExpirationHours, minPasswordLength int, revoked revocation.Store, producer broker.Producer) *AuthService {
	if revoked == nil {
		revoked = revocation.NoopStore
	}
	return &AuthService{
		jwtSecret:         []byte(jwtSecret),
		jwtExpiration:     time.Duration(jwtExpirationHours) * time.Hour,
		minPasswordLength: minPasswordLength,
		revoked:           revoked,
		producer:          producer,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(db *database.Database, input RegisterInput) (models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return models.User{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if len(input.Password) < s.minPasswordLength {
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, s.minPasswordLength)
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.User{}, fmt.Errorf("%w: password is too long", ErrValidation)
		}
		return models.User{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}
	if count > 0 {
		tx.Rollback()
		return models.User{}, fmt.Errorf("%w: email already registered", ErrResourceExists)
	}

	user := models.User{Name: name, Email: email, PasswordHash: hash}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, fmt.Errorf("%w: email already registered", ErrResourceExists)
		}
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	publishEvent(s.producer, broker.UserCreated, "user", user.ID, map[string]interface{}{
		"user_id": user.ID.String(),
		"name":    user.Name,
	})
	return user, nil
}

func (s *AuthService) Login(db *database.Database, email, password string) (string, error) {
	var user models.User
	if err := db.DB.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.ComparePasswords(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return token.GenerateToken(user.ID, user.Email, user.Name, s.jwtSecret, s.jwtExpiration)
}

// Logout revokes the token until it would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, claims *JWTClaims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrInvalidToken
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// ValidateToken checks the signature and expiry, then the revocation list.
// A revocation store that cannot be reached rejects the token.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*JWTClaims, error) {
	claims, err := token.ValidateToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		log.WithField("jti", claims.ID).Errorf("Failed to check token revocation: %v", err)
		return nil, ErrInvalidToken
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var AuthServiceInstance AuthServiceInterface
