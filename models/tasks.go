package models

// CampaignDispatchPayload is the queue payload for a scheduled campaign send.
type CampaignDispatchPayload struct {
	CampaignID string `json:"campaign_id"`
	UserID     string `json:"user_id"`
}
