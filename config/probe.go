package config

// Capability probes. Absent credentials are a normal state, not a failure:
// every probe simply reports whether an integration is usable, and the
// application falls back to demo behavior when it is not. Probes read the
// loaded Config only, so they are cheap enough to call per request.

// RemoteBackendConfigured reports whether the remote database is usable.
// This is the master switch: when false the whole application runs in demo
// mode against the local store.
func (c Config) RemoteBackendConfigured() bool {
	switch c.StorageDriver {
	case "mongo":
		return c.MongoURI != "" && c.MongoDatabase != ""
	default:
		return c.SupabaseURL != "" && c.SupabaseKey != ""
	}
}

// DemoMode is the inverse of RemoteBackendConfigured.
func (c Config) DemoMode() bool {
	return !c.RemoteBackendConfigured()
}

// HasStripe reports whether billing can talk to Stripe. Checkout needs the
// secret key and both price IDs; the webhook secret is checked separately.
func (c Config) HasStripe() bool {
	return c.StripeKey != "" &&
		c.StripePriceIDBasic != "" &&
		c.StripePriceIDPremium != ""
}

// HasSendGrid reports whether transactional email is configured.
func (c Config) HasSendGrid() bool {
	return c.SendGridAPIKey != ""
}

// HasTwilio reports whether SMS sending is configured.
func (c Config) HasTwilio() bool {
	return c.TwilioAccountSID != "" &&
		c.TwilioAuthToken != "" &&
		c.TwilioPhoneNumber != ""
}

// HasGemini reports whether the AI assistant can use the Gemini API.
func (c Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

// HasRedis reports whether the session cache should use Redis.
func (c Config) HasRedis() bool {
	return c.RedisAddr != ""
}

// IntegrationStatus aggregates every probe for the diagnostics endpoint.
// The demo-mode banner renders this verbatim; nothing writes back.
func (c Config) IntegrationStatus() map[string]bool {
	return map[string]bool{
		"database": c.RemoteBackendConfigured(),
		"stripe":   c.HasStripe(),
		"sendgrid": c.HasSendGrid(),
		"twilio":   c.HasTwilio(),
		"gemini":   c.HasGemini(),
		"redis":    c.HasRedis(),
		"demoMode": c.DemoMode(),
	}
}
