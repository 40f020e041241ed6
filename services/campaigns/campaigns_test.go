package campaigns

import (
	"context"
	"testing"
	"time"

	"bossmaids/database"
	"bossmaids/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMessenger counts dispatches instead of sending anything.
type recordingMessenger struct {
	emails []models.EmailRequest
	sms    []models.SMSRequest
}

func (m *recordingMessenger) SendEmail(_ context.Context, _ string, req models.EmailRequest) (*models.SendResult, error) {
	m.emails = append(m.emails, req)
	return &models.SendResult{Success: true}, nil
}

func (m *recordingMessenger) SendSMS(_ context.Context, _ string, req models.SMSRequest) (*models.SendResult, error) {
	m.sms = append(m.sms, req)
	return &models.SendResult{Success: true}, nil
}

func (m *recordingMessenger) EmailLogs(context.Context, string) ([]database.Record, error) {
	return nil, nil
}

func (m *recordingMessenger) SMSLogs(context.Context, string) ([]database.Record, error) {
	return nil, nil
}

func newTestService(t *testing.T) (*DefaultCampaignService, *recordingMessenger) {
	t.Helper()
	store, err := database.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	messenger := &recordingMessenger{}
	return &DefaultCampaignService{Store: store, Messaging: messenger}, messenger
}

func TestCreateCampaignDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, database.DemoUserID, database.Record{
		"name":            "Spring promo",
		"target_audience": "clients",
	})
	require.NoError(t, err)

	assert.Equal(t, "draft", database.GetString(campaign, "status"))
	assert.Equal(t, 0.0, database.GetFloat(campaign, "sent_count"))
	assert.Equal(t, 0.0, database.GetFloat(campaign, "opened_count"))

	// Creation leaves a feed entry.
	notifications, err := svc.ListNotifications(ctx, database.DemoUserID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "campaign", database.GetString(notifications[0], "type"))
	assert.Contains(t, database.GetString(notifications[0], "message"), "Spring promo")
}

func TestCreateCampaignWithScheduleStartsScheduled(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// No queue client is configured, so the campaign simply waits in
	// "scheduled" state for a manual send.
	campaign, err := svc.CreateCampaign(ctx, database.DemoUserID, database.Record{
		"name":            "Holiday promo",
		"target_audience": "clients",
		"scheduled_date":  "2026-12-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", database.GetString(campaign, "status"))

	// A manual send still works on a scheduled campaign.
	sent, err := svc.SendCampaign(ctx, database.GetString(campaign, "id"))
	require.NoError(t, err)
	assert.Equal(t, "sent", database.GetString(sent, "status"))
}

func TestParseScheduledDate(t *testing.T) {
	at, ok := parseScheduledDate("2026-12-20")
	require.True(t, ok)
	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.December, at.Month())
	assert.Equal(t, 20, at.Day())

	at, ok = parseScheduledDate("2026-12-20T09:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 9, at.UTC().Hour())

	_, ok = parseScheduledDate("")
	assert.False(t, ok)
	_, ok = parseScheduledDate("next tuesday")
	assert.False(t, ok)
}

func TestSendCampaignToClients(t *testing.T) {
	svc, messenger := newTestService(t)
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, database.DemoUserID, database.Record{
		"name":            "Spring promo",
		"message":         "Hi {{name}}, spring discount this week!",
		"target_audience": "clients",
	})
	require.NoError(t, err)

	sent, err := svc.SendCampaign(ctx, database.GetString(campaign, "id"))
	require.NoError(t, err)

	// All five seeded clients have email addresses.
	assert.Len(t, messenger.emails, 5)
	assert.Empty(t, messenger.sms)
	assert.Equal(t, "sent", database.GetString(sent, "status"))
	assert.Equal(t, 5.0, database.GetFloat(sent, "sent_count"))
	assert.NotEmpty(t, database.GetString(sent, "sent_at"))

	// Template variables were substituted per recipient.
	assert.Equal(t, "Hi Sarah Johnson, spring discount this week!", messenger.emails[0].HTML)
}

func TestSendCampaignToAllIncludesLeads(t *testing.T) {
	svc, messenger := newTestService(t)
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, database.DemoUserID, database.Record{
		"name":            "Everyone promo",
		"message":         "Hello {{name}}",
		"target_audience": "all",
	})
	require.NoError(t, err)

	sent, err := svc.SendCampaign(ctx, database.GetString(campaign, "id"))
	require.NoError(t, err)

	// 5 clients + 2 leads, all with email addresses.
	assert.Len(t, messenger.emails, 7)
	assert.Equal(t, 7.0, database.GetFloat(sent, "sent_count"))
}

func TestSendCampaignUsesTemplateAndBumpsUsage(t *testing.T) {
	svc, messenger := newTestService(t)
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, database.DemoUserID, database.Record{
		"name":    "Reactivation",
		"subject": "We miss you!",
		"message": "Hi {{name}}, book your next clean at {{address}}.",
	})
	require.NoError(t, err)
	tplID := database.GetString(tpl, "id")
	assert.Equal(t, 0.0, database.GetFloat(tpl, "usage_count"))

	campaign, err := svc.CreateCampaign(ctx, database.DemoUserID, database.Record{
		"name":                "Win-back",
		"message_template_id": tplID,
		"target_audience":     "leads",
	})
	require.NoError(t, err)

	_, err = svc.SendCampaign(ctx, database.GetString(campaign, "id"))
	require.NoError(t, err)

	require.Len(t, messenger.emails, 2)
	assert.Equal(t, "We miss you!", messenger.emails[0].Subject)
	assert.Contains(t, messenger.emails[0].HTML, "Carlos Martinez")

	templates, err := svc.ListTemplates(ctx, database.DemoUserID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, 1.0, database.GetFloat(templates[0], "usage_count"))
}

func TestSendCampaignMissing(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SendCampaign(context.Background(), "no-such-campaign")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSendCampaignMissingTemplate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	campaign, err := svc.CreateCampaign(ctx, database.DemoUserID, database.Record{
		"name":                "Broken",
		"message_template_id": "gone",
		"target_audience":     "clients",
	})
	require.NoError(t, err)

	_, err = svc.SendCampaign(ctx, database.GetString(campaign, "id"))
	assert.ErrorIs(t, err, database.ErrNotFound)
}
