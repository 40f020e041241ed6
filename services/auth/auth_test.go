package auth

import (
	"context"
	"testing"

	"bossmaids/config"
	"bossmaids/database"
	"bossmaids/models"
	"bossmaids/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDemoService(t *testing.T) *DefaultAuthService {
	t.Helper()
	store, err := database.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return &DefaultAuthService{
		Store: store,
		Cfg:   config.Config{StorageDriver: "supabase"}, // no credentials, demo mode
		Cache: utils.NewMemorySessionCache(),
	}
}

func TestDemoSignInAcceptsAnyCredentials(t *testing.T) {
	svc := newDemoService(t)
	ctx := context.Background()

	resp, err := svc.SignIn(ctx, models.SignInRequest{
		Email:    "whoever@example.com",
		Password: "anything",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, database.DemoUserID, resp.User.ID)
	assert.Equal(t, "whoever@example.com", resp.User.Email)
	assert.Equal(t, "Maria Silva", resp.User.Name)
	assert.Equal(t, "trial", resp.User.Plan)

	assert.True(t, svc.SessionActive(ctx, resp.Token))
}

func TestDemoSignInPersistsUserRecord(t *testing.T) {
	svc := newDemoService(t)
	ctx := context.Background()

	resp, err := svc.SignIn(ctx, models.SignInRequest{
		Email:    "demo@bossmaids.app",
		Password: "demo",
	})
	require.NoError(t, err)

	// The profile lands in the store under the fixed demo ID, so the
	// seeded collections stay attached to the signed-in account and
	// billing has a record to patch.
	user, err := svc.GetUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, database.DemoUserID, user.ID)
	assert.Equal(t, "Miami", user.City)
	assert.Equal(t, "FL", user.State)
}

func TestDemoSignUpKeepsProvidedNameAndCompany(t *testing.T) {
	svc := newDemoService(t)
	ctx := context.Background()

	resp, err := svc.SignUp(ctx, models.SignUpRequest{
		Email:    "owner@example.com",
		Password: "pw",
		Name:     "Joana Reis",
		Company:  "Reis Cleaning Co",
	})
	require.NoError(t, err)

	assert.Equal(t, "Joana Reis", resp.User.Name)
	assert.Equal(t, "Reis Cleaning Co", resp.User.Company)
	assert.Equal(t, database.DemoUserID, resp.User.ID)
}

func TestUpdateProfilePatchesEditableFields(t *testing.T) {
	svc := newDemoService(t)
	ctx := context.Background()

	resp, err := svc.SignIn(ctx, models.SignInRequest{Email: "demo@bossmaids.app", Password: "demo"})
	require.NoError(t, err)

	city := "Los Angeles"
	state := "CA"
	company := "Sunset Cleaning Co"
	user, err := svc.UpdateProfile(ctx, resp.User.ID, models.ProfileUpdate{
		City:    &city,
		State:   &state,
		Company: &company,
	})
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles", user.City)
	assert.Equal(t, "CA", user.State)
	assert.Equal(t, "Sunset Cleaning Co", user.Company)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Maria Silva", user.Name)
	assert.Equal(t, "trial", user.Plan)

	// The change persisted.
	stored, err := svc.GetUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles", stored.City)
	assert.Equal(t, "CA", stored.State)
}

func TestUpdateProfileWithoutChangesReturnsCurrentUser(t *testing.T) {
	svc := newDemoService(t)
	ctx := context.Background()

	resp, err := svc.SignIn(ctx, models.SignInRequest{Email: "demo@bossmaids.app", Password: "demo"})
	require.NoError(t, err)

	user, err := svc.UpdateProfile(ctx, resp.User.ID, models.ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", user.Name)
	assert.Equal(t, "Miami", user.City)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := newDemoService(t)
	name := "Nobody"
	_, err := svc.UpdateProfile(context.Background(), "no-such-user", models.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSignOutRevokesSession(t *testing.T) {
	svc := newDemoService(t)
	ctx := context.Background()

	resp, err := svc.SignIn(ctx, models.SignInRequest{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	require.True(t, svc.SessionActive(ctx, resp.Token))

	require.NoError(t, svc.SignOut(ctx, resp.Token))
	assert.False(t, svc.SessionActive(ctx, resp.Token))
}

func TestSessionActiveRejectsUnknownToken(t *testing.T) {
	svc := newDemoService(t)
	assert.False(t, svc.SessionActive(context.Background(), "not-a-session-token"))
}

func TestProductionSignInVerifiesPassword(t *testing.T) {
	// The local store stands in for the remote backend; the service only
	// sees the Store interface.
	store, err := database.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := &DefaultAuthService{
		Store: store,
		Cfg: config.Config{
			StorageDriver: "supabase",
			SupabaseURL:   "https://example.supabase.co",
			SupabaseKey:   "anon-key",
		},
		Cache: utils.NewMemorySessionCache(),
	}
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = store.Insert(ctx, "users", database.Record{
		"email":         "owner@example.com",
		"name":          "Owner",
		"plan":          "trial",
		"password_hash": string(hash),
	})
	require.NoError(t, err)

	resp, err := svc.SignIn(ctx, models.SignInRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", resp.User.Email)

	_, err = svc.SignIn(ctx, models.SignInRequest{
		Email:    "owner@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, models.SignInRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProductionSignUpRejectsDuplicateEmail(t *testing.T) {
	store, err := database.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	svc := &DefaultAuthService{
		Store: store,
		Cfg: config.Config{
			StorageDriver: "supabase",
			SupabaseURL:   "https://example.supabase.co",
			SupabaseKey:   "anon-key",
		},
		Cache: utils.NewMemorySessionCache(),
	}
	ctx := context.Background()

	req := models.SignUpRequest{
		Email:    "owner@example.com",
		Password: "pw",
		Name:     "Owner",
	}
	_, err = svc.SignUp(ctx, req)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, req)
	assert.Error(t, err)
}
