package models

// CheckoutRequest starts a subscription checkout for one of the two plans.
type CheckoutRequest struct {
	Plan       string `json:"plan" binding:"required,oneof=basic premium"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// CheckoutSession is the redirect the frontend follows to pay.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// PortalSession points at the Stripe billing portal (or a stand-in in demo).
type PortalSession struct {
	URL string `json:"url"`
}

// SubscriptionStatus summarizes the account's current plan state.
type SubscriptionStatus struct {
	Status        string `json:"status"`
	Plan          string `json:"plan"`
	TrialDaysLeft int    `json:"trial_days_left,omitempty"`
}
