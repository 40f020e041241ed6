package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bossmaids/config"
	"bossmaids/database"
	"bossmaids/models"
	"bossmaids/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL = 24 * time.Hour
	usersCol   = "users"
)

// ErrInvalidCredentials is returned for a wrong email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// DefaultAuthService implements AuthService over the storage facade.
type DefaultAuthService struct {
	Store database.Store
	Cfg   config.Config
	Cache utils.SessionCache
}

// demoProfile is the account demo mode signs in, matching the seeded
// collections' owner.
func demoProfile(email string) models.User {
	if email == "" {
		email = "demo@bossmaids.app"
	}
	now := time.Now()
	return models.User{
		ID:            database.DemoUserID,
		Email:         email,
		Name:          "Maria Silva",
		Company:       "Silva Cleaning Services",
		Phone:         "(305) 555-0123",
		City:          "Miami",
		State:         "FL",
		Plan:          "trial",
		TrialDaysLeft: 7,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *DefaultAuthService) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	if s.Cfg.DemoMode() {
		user := demoProfile(req.Email)
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Company != "" {
			user.Company = req.Company
		}
		return s.establishDemoSession(ctx, user)
	}

	existing, err := s.Store.Select(ctx, usersCol, database.Filter{"email": req.Email}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("account with email %s already exists", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec, err := s.Store.Insert(ctx, usersCol, database.Record{
		"email":         req.Email,
		"name":          req.Name,
		"company":       req.Company,
		"phone":         req.Phone,
		"city":          req.City,
		"state":         req.State,
		"plan":          "trial",
		"password_hash": string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return s.establishSession(ctx, userFromRecord(rec))
}

func (s *DefaultAuthService) SignIn(ctx context.Context, req models.SignInRequest) (*models.AuthResponse, error) {
	if s.Cfg.DemoMode() {
		// Demo mode accepts any credentials.
		return s.establishDemoSession(ctx, demoProfile(req.Email))
	}

	records, err := s.Store.Select(ctx, usersCol, database.Filter{"email": req.Email}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrInvalidCredentials
	}
	rec := records[0]
	hash := database.GetString(rec, "password_hash")
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.establishSession(ctx, userFromRecord(rec))
}

// establishDemoSession persists the demo profile into the local store's
// users collection so billing upgrades have a record to patch, then opens a
// session. The fixed demo user ID keeps the seeded collections attached to
// the signed-in account, so the record is written directly rather than
// through Insert (which owns id assignment).
func (s *DefaultAuthService) establishDemoSession(ctx context.Context, user models.User) (*models.AuthResponse, error) {
	if local, ok := s.Store.(*database.LocalStore); ok {
		rec := userToRecord(user)
		records := local.Load(usersCol)
		replaced := false
		for i, existing := range records {
			if database.GetString(existing, "id") == user.ID {
				records[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			records = append(records, rec)
		}
		if err := local.Save(usersCol, records); err != nil {
			utils.GetLogger().Warn("failed to persist demo user", zap.Error(err))
		}
	}
	return s.establishSession(ctx, user)
}

func (s *DefaultAuthService) establishSession(ctx context.Context, user models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Cache.Set(ctx, utils.HashToken(token), user.ID, sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *DefaultAuthService) SignOut(ctx context.Context, token string) error {
	return s.Cache.Delete(ctx, utils.HashToken(token))
}

func (s *DefaultAuthService) SessionActive(ctx context.Context, token string) bool {
	_, ok, err := s.Cache.Get(ctx, utils.HashToken(token))
	if err != nil {
		utils.GetLogger().Warn("session cache lookup failed", zap.Error(err))
		return false
	}
	return ok
}

func (s *DefaultAuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	records, err := s.Store.Select(ctx, usersCol, database.Filter{"id": userID}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, database.ErrNotFound)
	}
	user := userFromRecord(records[0])
	return &user, nil
}

// UpdateProfile patches the editable account fields on the stored user
// record. Plan, billing identifiers and credentials are not reachable from
// here.
func (s *DefaultAuthService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error) {
	patch := database.Record{}
	if update.Name != nil {
		patch["name"] = *update.Name
	}
	if update.Company != nil {
		patch["company"] = *update.Company
	}
	if update.Phone != nil {
		patch["phone"] = *update.Phone
	}
	if update.City != nil {
		patch["city"] = *update.City
	}
	if update.State != nil {
		patch["state"] = *update.State
	}
	if len(patch) == 0 {
		return s.GetUser(ctx, userID)
	}
	rec, err := s.Store.Update(ctx, usersCol, "id", userID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile for %s: %w", userID, err)
	}
	user := userFromRecord(rec)
	return &user, nil
}

// userFromRecord and userToRecord translate between the schemaless store
// shape and the typed model via JSON, which keeps the mapping in one place.
func userFromRecord(rec database.Record) models.User {
	var user models.User
	data, err := json.Marshal(rec)
	if err != nil {
		return user
	}
	_ = json.Unmarshal(data, &user)
	user.PasswordHash = database.GetString(rec, "password_hash")
	return user
}

func userToRecord(user models.User) database.Record {
	rec := database.Record{
		"id":              user.ID,
		"email":           user.Email,
		"name":            user.Name,
		"company":         user.Company,
		"phone":           user.Phone,
		"city":            user.City,
		"state":           user.State,
		"plan":            user.Plan,
		"trial_days_left": user.TrialDaysLeft,
		"created_at":      user.CreatedAt.Format(time.RFC3339),
		"updated_at":      user.UpdatedAt.Format(time.RFC3339),
	}
	if user.SubscriptionStatus != "" {
		rec["subscription_status"] = user.SubscriptionStatus
	}
	if user.StripeCustomerID != "" {
		rec["stripe_customer_id"] = user.StripeCustomerID
	}
	if user.StripeSubscriptionID != "" {
		rec["stripe_subscription_id"] = user.StripeSubscriptionID
	}
	if user.PasswordHash != "" {
		rec["password_hash"] = user.PasswordHash
	}
	return rec
}
