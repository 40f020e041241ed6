// Package billing handles subscription checkout and Stripe webhooks. When
// Stripe is not configured the checkout is simulated: the stored account is
// upgraded immediately and a synthetic redirect URL is returned.
package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"bossmaids/config"
	"bossmaids/database"
	"bossmaids/models"
	"bossmaids/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const usersCol = "users"

// BillingService is the subscription surface consumed by the handlers.
type BillingService interface {
	CreateCheckoutSession(ctx context.Context, user models.User, req models.CheckoutRequest) (*models.CheckoutSession, error)
	CreatePortalSession(ctx context.Context, user models.User, returnURL string) (*models.PortalSession, error)
	SubscriptionStatus(ctx context.Context, userID string) (*models.SubscriptionStatus, error)
	// HandleWebhook verifies and applies a Stripe event delivered to the
	// webhook endpoint.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// DefaultBillingService implements BillingService.
type DefaultBillingService struct {
	Store database.Store
	Cfg   config.Config
}

func (s *DefaultBillingService) priceID(plan string) string {
	if plan == "premium" {
		return s.Cfg.StripePriceIDPremium
	}
	return s.Cfg.StripePriceIDBasic
}

func (s *DefaultBillingService) CreateCheckoutSession(ctx context.Context, user models.User, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	if s.Cfg.DemoMode() || !s.Cfg.HasStripe() {
		return s.simulateCheckout(ctx, user, req.Plan)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(s.priceID(req.Plan)), Quantity: stripe.Int64(1)},
		},
		CustomerEmail: stripe.String(user.Email),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
	}
	params.AddMetadata("plan", req.Plan)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &models.CheckoutSession{URL: sess.URL, SessionID: sess.ID}, nil
}

// simulateCheckout mirrors what the webhook would do after a real payment:
// activate the plan on the stored account.
func (s *DefaultBillingService) simulateCheckout(ctx context.Context, user models.User, plan string) (*models.CheckoutSession, error) {
	sessionID := "demo_session_" + uuid.New().String()
	_, err := s.Store.Update(ctx, usersCol, "id", user.ID, database.Record{
		"plan":                   plan,
		"subscription_status":    "active",
		"stripe_customer_id":     "demo_customer_" + uuid.New().String(),
		"stripe_subscription_id": "demo_sub_" + uuid.New().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply demo upgrade: %w", err)
	}
	return &models.CheckoutSession{
		URL:       fmt.Sprintf("/app?demo_checkout=success&plan=%s", plan),
		SessionID: sessionID,
	}, nil
}

func (s *DefaultBillingService) CreatePortalSession(ctx context.Context, user models.User, returnURL string) (*models.PortalSession, error) {
	if s.Cfg.DemoMode() || !s.Cfg.HasStripe() {
		return &models.PortalSession{URL: "/app/billing?demo_portal=1"}, nil
	}
	if user.StripeCustomerID == "" {
		return nil, fmt.Errorf("user %s has no billing customer", user.ID)
	}
	sess, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(user.StripeCustomerID),
		ReturnURL: stripe.String(returnURL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create portal session: %w", err)
	}
	return &models.PortalSession{URL: sess.URL}, nil
}

func (s *DefaultBillingService) SubscriptionStatus(ctx context.Context, userID string) (*models.SubscriptionStatus, error) {
	records, err := s.Store.Select(ctx, usersCol, database.Filter{"id": userID}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("user %s: %w", userID, database.ErrNotFound)
	}
	rec := records[0]
	status := database.GetString(rec, "subscription_status")
	if status == "" {
		status = "trial"
	}
	plan := database.GetString(rec, "plan")
	if plan == "" {
		plan = "trial"
	}
	return &models.SubscriptionStatus{
		Status:        status,
		Plan:          plan,
		TrialDaysLeft: int(database.GetFloat(rec, "trial_days_left")),
	}, nil
}

// HandleWebhook applies checkout.session.completed and subscription
// lifecycle events to the account they belong to.
func (s *DefaultBillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.Cfg.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	logger := utils.GetLogger()
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		plan := sess.Metadata["plan"]
		if plan == "" {
			plan = "basic"
		}
		email := ""
		if sess.CustomerDetails != nil {
			email = sess.CustomerDetails.Email
		}
		patch := database.Record{
			"plan":                plan,
			"subscription_status": "active",
			"trial_days_left":     float64(0),
		}
		if sess.Customer != nil {
			patch["stripe_customer_id"] = sess.Customer.ID
		}
		if sess.Subscription != nil {
			patch["stripe_subscription_id"] = sess.Subscription.ID
		}
		updated, err := s.Store.Update(ctx, usersCol, "email", email, patch)
		if err != nil {
			return fmt.Errorf("failed to activate plan for %s: %w", email, err)
		}
		if _, err := s.Store.Insert(ctx, "notifications", database.Record{
			"user_id": database.GetString(updated, "id"),
			"type":    "billing",
			"title":   "Subscription activated",
			"message": fmt.Sprintf("Your %s plan is now active", plan),
			"read":    false,
		}); err != nil {
			logger.Warn("failed to record billing notification", zap.Error(err))
		}
		logger.Info("subscription activated",
			zap.String("email", email), zap.String("plan", plan))

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to decode subscription: %w", err)
		}
		plan := "basic"
		if len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil &&
			sub.Items.Data[0].Price.ID == s.Cfg.StripePriceIDPremium {
			plan = "premium"
		}
		if _, err := s.Store.Update(ctx, usersCol, "stripe_customer_id", sub.Customer.ID, database.Record{
			"plan":                plan,
			"subscription_status": string(sub.Status),
		}); err != nil {
			return fmt.Errorf("failed to apply subscription update: %w", err)
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to decode subscription: %w", err)
		}
		if _, err := s.Store.Update(ctx, usersCol, "stripe_customer_id", sub.Customer.ID, database.Record{
			"plan":                   "trial",
			"subscription_status":    "cancelled",
			"stripe_subscription_id": "",
		}); err != nil {
			return fmt.Errorf("failed to apply subscription cancellation: %w", err)
		}

	default:
		logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
	}
	return nil
}
