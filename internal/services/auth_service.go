package services

import (
	"strings"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AccessClaims are the claims carried by a short-lived access token.
type AccessClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.StandardClaims
}

// RefreshClaims are the claims carried by a refresh token. Only the
// identity is included.
type RefreshClaims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

// AuthService handles registration, login and the token lifecycle.
type AuthService struct {
	userRepo        repositories.UserRepository
	accessSecret    []byte
	refreshSecret   []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	bcryptCost      int
}

// NewAuthService creates a new AuthService from the given configuration.
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		accessSecret:    []byte(cfg.AccessSecret),
		refreshSecret:   []byte(cfg.RefreshSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		bcryptCost:      cfg.BcryptCost,
	}
}

// Register creates a new account. The password must be at least 12
// characters; the email is normalized to lower case.
func (s *AuthService) Register(email, password, firstName, lastName, role string) (*models.User, error) {
	if len(password) < 12 {
		return nil, apperrors.New(apperrors.KindValidation, "Password length should be at least 12 characters long")
	}
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, apperrors.New(apperrors.KindValidation, "Invalid role. Role must be either 'user' or 'admin'")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, apperrors.New(apperrors.KindConflict, "Email is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to hash password")
	}

	user := &models.User{
		Email:     email,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		PassHash:  string(hash),
		Role:      role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// The refresh token is persisted so it can be invalidated later; only
// one refresh token is active per user at a time.
func (s *AuthService) Login(email, password string) (accessToken, refreshToken string, user *models.User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err = s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return "", "", nil, apperrors.New(apperrors.KindUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.New(apperrors.KindUnauthorized, "Invalid credentials")
	}

	accessToken, err = s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, err
	}
	refreshToken, err = s.generateRefreshToken(user)
	if err != nil {
		return "", "", nil, err
	}
	if err := s.userRepo.SetRefreshToken(user.ID, refreshToken); err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, user, nil
}

// Refresh exchanges a refresh token for a new access token. The token
// must parse, be unexpired, and exactly match the one currently stored
// for its user; a stale or foreign token is rejected.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.New(apperrors.KindUnauthorized, "Failed to authenticate")
		}
		return s.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.New(apperrors.KindUnauthorized, "Failed to authenticate")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", apperrors.New(apperrors.KindUnauthorized, "Failed to authenticate")
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return "", apperrors.New(apperrors.KindForbidden, "Refresh token is no longer valid")
	}
	return s.generateAccessToken(user)
}

// Logout clears the stored refresh token, invalidating future refresh
// attempts until the next login.
func (s *AuthService) Logout(userID string) error {
	return s.userRepo.SetRefreshToken(userID, "")
}

// ValidateAccessToken parses and validates an access token, returning
// its claims.
func (s *AuthService) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.New(apperrors.KindUnauthorized, "Failed to authenticate")
		}
		return s.accessSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.New(apperrors.KindUnauthorized, "Failed to authenticate")
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID:    user.ID,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.accessTokenTTL).Unix(),
		},
	})
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, err, "failed to sign access token")
	}
	return signed, nil
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		UserID: user.ID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.refreshTokenTTL).Unix(),
		},
	})
	signed, err := token.SignedString(s.refreshSecret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, err, "failed to sign refresh token")
	}
	return signed, nil
}
