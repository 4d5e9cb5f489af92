package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jhasonu12/creator-store-backend/internal/models"
	"github.com/jhasonu12/creator-store-backend/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RefreshTokenTTL is how long a persisted refresh credential stays valid.
const RefreshTokenTTL = 7 * 24 * time.Hour

// CreatorSignupInput is everything needed to open a creator account with an
// active storefront.
type CreatorSignupInput struct {
	Email       string
	Username    string
	Password    string
	Slug        string
	FullName    string
	Timezone    string
	CountryCode string
}

// AuthResult is what every successful auth flow returns to the handler.
type AuthResult struct {
	User           *models.User
	CreatorProfile *models.CreatorProfile
	StoreSlug      string
	AccessToken    string
	RefreshToken   string
}

// AuthService handles signup, login and token lifecycle. Creator signup is
// the one multi-entity workflow in the system: it either fully creates the
// account, profile, storefront and active slug, or leaves no trace.
type AuthService struct {
	db          *gorm.DB
	userRepo    repositories.UserRepository
	creatorRepo repositories.CreatorProfileRepository
	slugRepo    repositories.StoreSlugRepository
	storeRepo   repositories.StoreRepository
	refreshRepo repositories.RefreshTokenRepository
	tracker     *EventTracker

	jwtSecret     []byte
	refreshSecret []byte
	accessTTL     time.Duration
}

// NewAuthService creates a new AuthService. The db handle is used for the
// transaction boundaries of the signup and token-rotation flows; everything
// else goes through the injected repositories.
func NewAuthService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	creatorRepo repositories.CreatorProfileRepository,
	slugRepo repositories.StoreSlugRepository,
	storeRepo repositories.StoreRepository,
	refreshRepo repositories.RefreshTokenRepository,
	tracker *EventTracker,
	jwtSecret, refreshSecret string,
) *AuthService {
	return &AuthService{
		db:            db,
		userRepo:      userRepo,
		creatorRepo:   creatorRepo,
		slugRepo:      slugRepo,
		storeRepo:     storeRepo,
		refreshRepo:   refreshRepo,
		tracker:       tracker,
		jwtSecret:     []byte(jwtSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     24 * time.Hour,
	}
}

// Signup registers a plain (non-creator) account. The account and its
// refresh-credential record are created in one transaction.
func (s *AuthService) Signup(email, username, password string) (*AuthResult, error) {
	var result *AuthResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)
		if err := s.checkIdentityFree(users, email, username); err != nil {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &models.User{
			Email:    email,
			Username: username,
			Password: string(hashed),
			Role:     models.RoleUser,
		}
		if err := users.Create(user); err != nil {
			return err
		}

		tokens, err := s.issueTokenPair(s.refreshRepo.WithTx(tx), user)
		if err != nil {
			return err
		}

		result = &AuthResult{User: user, AccessToken: tokens.access, RefreshToken: tokens.refresh}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.track(EventUserRegistered, Event{UserID: result.User.ID})
	return result, nil
}

// SignupAsCreator registers a creator account with an active storefront
// slug. The writes run in program order inside one transaction: reserve
// slug, create account, create profile, create storefront and default
// theme, activate slug, persist the refresh-credential record. Any failure
// rolls everything back, including the slug reservation.
func (s *AuthService) SignupAsCreator(input CreatorSignupInput) (*AuthResult, error) {
	var result *AuthResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := s.userRepo.WithTx(tx)
		if err := s.checkIdentityFree(users, input.Email, input.Username); err != nil {
			return err
		}

		slugs := s.slugRepo.WithTx(tx)
		reservation, err := slugs.Reserve(input.Slug)
		if err != nil {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &models.User{
			Email:    input.Email,
			Username: input.Username,
			Password: string(hashed),
			Role:     models.RoleCreator,
		}
		if err := users.Create(user); err != nil {
			return err
		}

		timezone := input.Timezone
		if timezone == "" {
			timezone = "UTC"
		}
		profile := &models.CreatorProfile{
			UserID:              user.ID,
			FullName:            input.FullName,
			Timezone:            timezone,
			OnboardingCompleted: false,
		}
		if input.CountryCode != "" {
			cc := input.CountryCode
			profile.CountryCode = &cc
		}
		if err := s.creatorRepo.WithTx(tx).Create(profile); err != nil {
			return err
		}

		stores := s.storeRepo.WithTx(tx)
		store := &models.Store{
			CreatorID: profile.ID,
			Slug:      input.Slug,
			Name:      input.FullName,
			Type:      models.StoreLinksite,
			Status:    models.StoreActive,
		}
		if err := stores.Create(store); err != nil {
			return err
		}
		theme := &models.StoreTheme{
			StoreID: store.ID,
			Config:  datatypes.JSONMap{},
		}
		if err := stores.SaveTheme(theme); err != nil {
			return err
		}

		if err := slugs.Activate(reservation, user.ID); err != nil {
			return err
		}

		tokens, err := s.issueTokenPair(s.refreshRepo.WithTx(tx), user)
		if err != nil {
			return err
		}

		result = &AuthResult{
			User:           user,
			CreatorProfile: profile,
			StoreSlug:      reservation.Slug,
			AccessToken:    tokens.access,
			RefreshToken:   tokens.refresh,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.track(EventCreatorRegistered, Event{
		UserID:    result.User.ID,
		CreatorID: result.CreatorProfile.ID,
		Metadata:  map[string]interface{}{"slug": result.StoreSlug, "full_name": result.CreatorProfile.FullName},
	})
	return result, nil
}

// Login authenticates by email and password and issues a fresh token pair.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil, fmt.Errorf("%w: invalid credentials", repositories.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", repositories.ErrUnauthorized)
	}

	tokens, err := s.issueTokenPair(s.refreshRepo, user)
	if err != nil {
		return nil, err
	}

	s.track(EventLoginSuccess, Event{UserID: user.ID})
	return &AuthResult{User: user, AccessToken: tokens.access, RefreshToken: tokens.refresh}, nil
}

// Refresh rotates a refresh credential: the presented token is verified,
// its persisted record revoked, and a new pair issued, all in one
// transaction.
func (s *AuthService) Refresh(refreshToken string) (*AuthResult, error) {
	claims, err := s.parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", repositories.ErrUnauthorized)
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, fmt.Errorf("%w: invalid refresh token", repositories.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", repositories.ErrUnauthorized)
	}

	var result *AuthResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		refreshRepo := s.refreshRepo.WithTx(tx)
		record, err := refreshRepo.FindActive(userID, hashToken(refreshToken))
		if err != nil {
			return err
		}
		if time.Now().After(record.ExpiresAt) {
			return fmt.Errorf("%w: refresh token expired", repositories.ErrUnauthorized)
		}
		if err := refreshRepo.Revoke(record); err != nil {
			return err
		}

		tokens, err := s.issueTokenPair(refreshRepo, user)
		if err != nil {
			return err
		}
		result = &AuthResult{User: user, AccessToken: tokens.access, RefreshToken: tokens.refresh}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.track(EventTokenRefreshed, Event{UserID: user.ID})
	return result, nil
}

// Logout revokes every active refresh credential of the user.
func (s *AuthService) Logout(userID string) error {
	if err := s.refreshRepo.RevokeAllForUser(userID); err != nil {
		return err
	}
	s.track(EventLogout, Event{UserID: userID})
	return nil
}

// GetCurrentUser returns the authenticated account.
func (s *AuthService) GetCurrentUser(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// ValidateToken parses and validates an access token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := s.parseToken(tokenString, s.jwtSecret)
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// checkIdentityFree aborts with a Conflict naming the duplicate field
// before any write happens.
func (s *AuthService) checkIdentityFree(users repositories.UserRepository, email, username string) error {
	if _, err := users.GetByEmail(email); err == nil {
		return fmt.Errorf("%w: user with this email already exists", repositories.ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if _, err := users.GetByUsername(username); err == nil {
		return fmt.Errorf("%w: username already taken", repositories.ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return nil
}

type tokenPair struct {
	access  string
	refresh string
}

// issueTokenPair signs an access and a refresh token for user and persists
// the sha256 of the refresh token with a 7-day expiry.
func (s *AuthService) issueTokenPair(refreshRepo repositories.RefreshTokenRepository, user *models.User) (tokenPair, error) {
	access, err := s.signToken(user, s.jwtSecret, s.accessTTL)
	if err != nil {
		return tokenPair{}, err
	}
	refresh, err := s.signToken(user, s.refreshSecret, RefreshTokenTTL)
	if err != nil {
		return tokenPair{}, err
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().Add(RefreshTokenTTL),
	}
	if err := refreshRepo.Create(record); err != nil {
		return tokenPair{}, err
	}
	return tokenPair{access: access, refresh: refresh}, nil
}

func (s *AuthService) signToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	// The jti keeps tokens minted within the same second distinct, which the
	// unique token-hash index depends on during rotation.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) track(eventType string, event Event) {
	if s.tracker != nil {
		s.tracker.Track(eventType, event)
	}
}

// hashToken is the persisted form of a refresh credential.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
