package handlers

// HandlerBundle aggregates every handler group for route registration.
type HandlerBundle struct {
	Auth        *AuthHandler
	CRM         *CRMHandler
	Schedule    *ScheduleHandler
	Campaigns   *CampaignHandler
	Billing     *BillingHandler
	Messaging   *MessagingHandler
	Assistant   *AssistantHandler
	Reports     *ReportsHandler
	Diagnostics *DiagnosticsHandler
}
