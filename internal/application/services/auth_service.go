package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/dayplanner/core/internal/domain/entities"
	"github.com/dayplanner/core/internal/infrastructure/config"
	"github.com/dayplanner/core/internal/infrastructure/logger"
	"github.com/dayplanner/core/internal/ports"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// Claims represents the session token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// googleProfile is the subset of the userinfo response we consume.
type googleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// AuthService handles Google sign-in and session tokens. Identity itself
// is delegated to the provider; this service only exchanges the code,
// provisions an account row on first sign-in, and issues a JWT.
type AuthService struct {
	userRepo  ports.UserRepository
	oauth     *oauth2.Config
	jwtConfig config.JWTConfig
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, oauthCfg config.OAuthConfig, jwtCfg config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		oauth: &oauth2.Config{
			ClientID:     oauthCfg.ClientID,
			ClientSecret: oauthCfg.ClientSecret,
			RedirectURL:  oauthCfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		jwtConfig: jwtCfg,
		logger:    logger,
	}
}

// LoginURL returns the provider's consent page URL for the given state.
func (s *AuthService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code, loads the provider
// profile, provisions the account if needed, and issues a session token.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (string, *entities.User, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return "", nil, err
	}

	if profile.Email == "" {
		return "", nil, fmt.Errorf("identity provider returned no email claim")
	}

	user, err := s.provisionUser(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	sessionToken, err := s.issueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("User signed in", "user_id", user.ID, "email", user.Email)

	return sessionToken, user, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	client := s.oauth.Client(ctx, token)

	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}

	return &profile, nil
}

// provisionUser finds the account matching the provider's email claim,
// creating one on first sign-in. The provider's subject id is preferred
// as the row id, with a generated UUID as fallback.
func (s *AuthService) provisionUser(ctx context.Context, profile *googleProfile) (*entities.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if err != entities.ErrUserNotFound {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	id := profile.ID
	if id == "" {
		id = uuid.NewString()
	}

	user = &entities.User{
		ID:    id,
		Email: profile.Email,
	}
	if profile.Name != "" {
		user.Name = &profile.Name
	}
	if profile.Picture != "" {
		user.Image = &profile.Picture
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User provisioned on first sign-in", "user_id", user.ID, "email", user.Email)

	return user, nil
}

func (s *AuthService) issueToken(user *entities.User) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtConfig.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.ExpiresIn)),
		},
	}
	if user.Name != nil {
		claims.Name = *user.Name
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// CurrentUser loads the account behind a validated token.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*entities.User, error) {
	if userID == "" {
		return nil, entities.ErrNotAuthenticated
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}

// TokenTTL exposes the configured session lifetime for the callback
// response.
func (s *AuthService) TokenTTL() time.Duration {
	return s.jwtConfig.ExpiresIn
}
