package models

import "time"

// User is the business-owner account. PasswordHash never leaves the server;
// it is stripped before any response.
type User struct {
	ID                   string    `json:"id" bson:"id"`
	Email                string    `json:"email" bson:"email"`
	Name                 string    `json:"name" bson:"name"`
	Company              string    `json:"company,omitempty" bson:"company,omitempty"`
	Phone                string    `json:"phone,omitempty" bson:"phone,omitempty"`
	City                 string    `json:"city,omitempty" bson:"city,omitempty"`
	State                string    `json:"state,omitempty" bson:"state,omitempty"`
	Plan                 string    `json:"plan" bson:"plan"`
	SubscriptionStatus   string    `json:"subscription_status,omitempty" bson:"subscription_status,omitempty"`
	StripeCustomerID     string    `json:"stripe_customer_id,omitempty" bson:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string    `json:"stripe_subscription_id,omitempty" bson:"stripe_subscription_id,omitempty"`
	TrialDaysLeft        int       `json:"trial_days_left,omitempty" bson:"trial_days_left,omitempty"`
	PasswordHash         string    `json:"-" bson:"password_hash,omitempty"`
	CreatedAt            time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" bson:"updated_at"`
}

// SignUpRequest carries registration input.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// ProfileUpdate carries editable account fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
	City    *string `json:"city"`
	State   *string `json:"state"`
}

// SignInRequest carries login input.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful sign-up or sign-in.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
