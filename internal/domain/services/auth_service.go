package services

import (
	"context"
	"strings"
	"time"

	"github.com/dishcovery/dishcovery/internal/domain/models"
	"github.com/dishcovery/dishcovery/internal/domain/repositories"
	"github.com/dishcovery/dishcovery/internal/infrastructure/config"
	apperrors "github.com/dishcovery/dishcovery/internal/pkg/errors"
	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Claims is the JWT payload issued on signup and login
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// AuthService handles account registration, login and token verification
type AuthService struct {
	users  repositories.UserRepository
	config config.JWTConfig
	logger *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, cfg config.JWTConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		config: cfg,
		logger: log.WithComponent("auth"),
	}
}

// SignupInput is the payload for account creation
type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Signup creates a new account and returns it with a fresh token
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, string, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if existing, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, "", apperrors.DatabaseError(err)
	} else if existing != nil {
		return nil, "", apperrors.AlreadyExists("user")
	}
	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, "", apperrors.DatabaseError(err)
	} else if existing != nil {
		return nil, "", apperrors.AlreadyExists("user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", apperrors.Internal("failed to hash password")
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		LikedRecipes: []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", apperrors.DatabaseError(err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", zap.String("username", user.Username))
	return user, token, nil
}

// LoginInput is the payload for authentication
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown user and wrong password produce the same error so login
// attempts cannot probe for account existence.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", apperrors.DatabaseError(err)
	}
	if user == nil {
		return nil, "", apperrors.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid credentials")
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))
	return user, token, nil
}

// IssueToken signs a new access token for the given user id
func (s *AuthService) IssueToken(userID primitive.ObjectID) (string, error) {
	ttl := s.config.AccessTokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	claims := Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", apperrors.Internal("failed to sign token")
	}
	return signed, nil
}

// VerifyToken parses and validates an access token, returning the user id
func (s *AuthService) VerifyToken(tokenString string) (primitive.ObjectID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, apperrors.Unauthorized("invalid or expired token")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, apperrors.Unauthorized("invalid token subject")
	}
	return userID, nil
}
