package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayplanner/core/internal/domain/entities"
	"github.com/dayplanner/core/internal/infrastructure/config"
	"github.com/dayplanner/core/internal/infrastructure/logger"
)

type fakeUserRepo struct {
	byEmail map[string]*entities.User
	created int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	r.created++
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func newTestAuthService(repo *fakeUserRepo, secret string) *AuthService {
	return NewAuthService(repo,
		config.OAuthConfig{ClientID: "client", ClientSecret: "secret", RedirectURL: "http://localhost/cb"},
		config.JWTConfig{Secret: secret, ExpiresIn: time.Hour, Issuer: "dayplanner-test"},
		logger.NewNop(),
	)
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), "test-secret")

	name := "Alex"
	user := &entities.User{ID: "u1", Email: "alex@example.com", Name: &name}

	token, err := svc.issueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alex@example.com", claims.Email)
	assert.Equal(t, "Alex", claims.Name)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := newTestAuthService(newFakeUserRepo(), "secret-a")
	verifier := newTestAuthService(newFakeUserRepo(), "secret-b")

	token, err := issuer.issueToken(&entities.User{ID: "u1", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestProvisionUser_CreatesOnFirstSignIn(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, "test-secret")
	ctx := context.Background()

	profile := &googleProfile{ID: "google-123", Email: "new@example.com", Name: "New User", Picture: "http://img"}

	user, err := svc.provisionUser(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "google-123", user.ID)
	require.NotNil(t, user.Name)
	assert.Equal(t, "New User", *user.Name)
	assert.Equal(t, 1, repo.created)

	// Second sign-in finds the existing row.
	again, err := svc.provisionUser(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, 1, repo.created)
}

func TestProvisionUser_GeneratesIDWhenMissing(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, "test-secret")

	user, err := svc.provisionUser(context.Background(), &googleProfile{Email: "anon@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestCurrentUser_RequiresAuthentication(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.CurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, entities.ErrNotAuthenticated)
}

func TestLoginURL(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), "test-secret")

	url := svc.LoginURL("state-token")
	assert.Contains(t, url, "state=state-token")
	assert.Contains(t, url, "client_id=client")
}
