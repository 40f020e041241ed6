// Package campaigns manages marketing campaigns, message templates and the
// notifications feed that records campaign activity.
package campaigns

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bossmaids/database"
	"bossmaids/models"
	"bossmaids/services/messaging"
	"bossmaids/services/tasks"
	"bossmaids/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	campaignsCol     = "campaigns"
	templatesCol     = "message_templates"
	notificationsCol = "notifications"
	clientsCol       = "clients"
	leadsCol         = "leads"
)

// CampaignService is the campaign/template surface consumed by the handlers.
type CampaignService interface {
	ListCampaigns(ctx context.Context, userID string) ([]database.Record, error)
	CreateCampaign(ctx context.Context, userID string, fields database.Record) (database.Record, error)
	UpdateCampaign(ctx context.Context, id string, patch database.Record) (database.Record, error)
	DeleteCampaign(ctx context.Context, id string) error
	// SendCampaign dispatches the campaign's template to its audience and
	// updates the send counters.
	SendCampaign(ctx context.Context, id string) (database.Record, error)

	ListTemplates(ctx context.Context, userID string) ([]database.Record, error)
	CreateTemplate(ctx context.Context, userID string, fields database.Record) (database.Record, error)
	UpdateTemplate(ctx context.Context, id string, patch database.Record) (database.Record, error)
	DeleteTemplate(ctx context.Context, id string) error

	ListNotifications(ctx context.Context, userID string) ([]database.Record, error)
	// RefreshSmartNotifications re-evaluates the rule-based notifications
	// derived from leads and appointments, then returns the visible feed.
	RefreshSmartNotifications(ctx context.Context, userID string) ([]database.Record, error)
	MarkNotificationRead(ctx context.Context, id string) (database.Record, error)
	DismissNotification(ctx context.Context, id string) (database.Record, error)
}

// DefaultCampaignService implements CampaignService. Asynq is nil when Redis
// is not configured; scheduled campaigns then wait for a manual send.
type DefaultCampaignService struct {
	Store     database.Store
	Messaging messaging.MessagingService
	Asynq     *asynq.Client
}

func (s *DefaultCampaignService) ListCampaigns(ctx context.Context, userID string) ([]database.Record, error) {
	return s.Store.Select(ctx, campaignsCol,
		database.Filter{"user_id": userID},
		&database.Order{Field: "created_at", Ascending: false})
}

// CreateCampaign stores the campaign and drops a notification into the feed.
// A campaign with a scheduled_date starts in "scheduled" state and is queued
// for dispatch; anything else starts as a draft.
func (s *DefaultCampaignService) CreateCampaign(ctx context.Context, userID string, fields database.Record) (database.Record, error) {
	rec := database.CloneRecord(fields)
	rec["user_id"] = userID
	scheduled := database.GetString(rec, "scheduled_date")
	if _, ok := rec["status"]; !ok {
		if scheduled != "" {
			rec["status"] = "scheduled"
		} else {
			rec["status"] = "draft"
		}
	}
	rec["sent_count"] = float64(0)
	rec["opened_count"] = float64(0)
	rec["response_count"] = float64(0)

	campaign, err := s.Store.Insert(ctx, campaignsCol, rec)
	if err != nil {
		return nil, err
	}

	name := database.GetString(campaign, "name")
	if _, err := s.Store.Insert(ctx, notificationsCol, database.Record{
		"user_id":   userID,
		"type":      "campaign",
		"title":     "Campaign created",
		"message":   fmt.Sprintf("Campaign %q was created successfully", name),
		"read":      false,
		"dismissed": false,
	}); err != nil {
		// The campaign itself is stored; a missing feed entry is not fatal.
		utils.GetLogger().Warn("failed to record campaign notification", zap.Error(err))
	}
	if scheduled != "" {
		s.enqueueScheduled(ctx, campaign)
	}
	return campaign, nil
}

// enqueueScheduled queues the campaign for dispatch at its scheduled date.
// Without a queue client the campaign stays "scheduled" until sent manually.
func (s *DefaultCampaignService) enqueueScheduled(ctx context.Context, campaign database.Record) {
	if s.Asynq == nil {
		return
	}
	id := database.GetString(campaign, "id")
	fireAt, ok := parseScheduledDate(database.GetString(campaign, "scheduled_date"))
	if !ok {
		utils.GetLogger().Warn("unparsable campaign schedule",
			zap.String("campaignID", id),
			zap.String("scheduled_date", database.GetString(campaign, "scheduled_date")))
		return
	}
	task, opts, err := tasks.NewCampaignDispatchTask(models.CampaignDispatchPayload{
		CampaignID: id,
		UserID:     database.GetString(campaign, "user_id"),
	}, fireAt)
	if err != nil {
		utils.GetLogger().Error("failed to build campaign dispatch task",
			zap.String("campaignID", id), zap.Error(err))
		return
	}
	if _, err := s.Asynq.EnqueueContext(ctx, task, opts...); err != nil {
		utils.GetLogger().Error("failed to enqueue campaign dispatch",
			zap.String("campaignID", id), zap.Error(err))
		return
	}
	utils.GetLogger().Info("campaign dispatch scheduled",
		zap.String("campaignID", id), zap.Time("fireAt", fireAt))
}

// parseScheduledDate accepts either a bare date or a full RFC3339 timestamp.
// A bare date fires at local midnight.
func parseScheduledDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (s *DefaultCampaignService) UpdateCampaign(ctx context.Context, id string, patch database.Record) (database.Record, error) {
	return s.Store.Update(ctx, campaignsCol, "id", id, patch)
}

func (s *DefaultCampaignService) DeleteCampaign(ctx context.Context, id string) error {
	return s.Store.Remove(ctx, campaignsCol, "id", id)
}

// SendCampaign resolves the campaign's audience ("clients", "leads" or
// "all"), renders its template for each recipient and dispatches through
// messaging. Email is used when the recipient has an address, SMS otherwise.
func (s *DefaultCampaignService) SendCampaign(ctx context.Context, id string) (database.Record, error) {
	campaigns, err := s.Store.Select(ctx, campaignsCol, database.Filter{"id": id}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaign %s: %w", id, err)
	}
	if len(campaigns) == 0 {
		return nil, fmt.Errorf("campaign %s: %w", id, database.ErrNotFound)
	}
	campaign := campaigns[0]
	userID := database.GetString(campaign, "user_id")

	subject, body, templateID, err := s.resolveTemplate(ctx, campaign)
	if err != nil {
		return nil, err
	}

	recipients, err := s.audience(ctx, userID, database.GetString(campaign, "target_audience"))
	if err != nil {
		return nil, err
	}

	sent := 0
	for _, recipient := range recipients {
		message := renderTemplate(body, recipient)
		email := database.GetString(recipient, "email")
		phone := database.GetString(recipient, "phone")
		switch {
		case email != "":
			if _, err := s.Messaging.SendEmail(ctx, userID, models.EmailRequest{
				To: email, Subject: subject, HTML: message,
			}); err != nil {
				utils.GetLogger().Warn("campaign email failed",
					zap.String("to", email), zap.Error(err))
				continue
			}
		case phone != "":
			if _, err := s.Messaging.SendSMS(ctx, userID, models.SMSRequest{
				To: phone, Message: message,
			}); err != nil {
				utils.GetLogger().Warn("campaign sms failed",
					zap.String("to", phone), zap.Error(err))
				continue
			}
		default:
			continue
		}
		sent++
	}

	if templateID != "" {
		usage := float64(0)
		if templates, err := s.Store.Select(ctx, templatesCol, database.Filter{"id": templateID}, nil); err == nil && len(templates) > 0 {
			usage = database.GetFloat(templates[0], "usage_count")
		}
		if _, err := s.Store.Update(ctx, templatesCol, "id", templateID, database.Record{
			"usage_count": usage + 1,
		}); err != nil {
			utils.GetLogger().Warn("failed to bump template usage", zap.Error(err))
		}
	}

	return s.Store.Update(ctx, campaignsCol, "id", id, database.Record{
		"status":     "sent",
		"sent_count": database.GetFloat(campaign, "sent_count") + float64(sent),
		"sent_at":    time.Now().Format(time.RFC3339),
	})
}

func (s *DefaultCampaignService) resolveTemplate(ctx context.Context, campaign database.Record) (subject, body, templateID string, err error) {
	templateID = database.GetString(campaign, "message_template_id")
	if templateID == "" {
		return database.GetString(campaign, "name"), database.GetString(campaign, "message"), "", nil
	}
	templates, err := s.Store.Select(ctx, templatesCol, database.Filter{"id": templateID}, nil)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to fetch template %s: %w", templateID, err)
	}
	if len(templates) == 0 {
		return "", "", "", fmt.Errorf("template %s: %w", templateID, database.ErrNotFound)
	}
	tpl := templates[0]
	subject = database.GetString(tpl, "subject")
	if subject == "" {
		subject = database.GetString(tpl, "name")
	}
	return subject, database.GetString(tpl, "message"), templateID, nil
}

func (s *DefaultCampaignService) audience(ctx context.Context, userID, target string) ([]database.Record, error) {
	var recipients []database.Record
	if target == "clients" || target == "all" || target == "" {
		clients, err := s.Store.Select(ctx, clientsCol, database.Filter{"user_id": userID}, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve client audience: %w", err)
		}
		recipients = append(recipients, clients...)
	}
	if target == "leads" || target == "all" {
		leads, err := s.Store.Select(ctx, leadsCol, database.Filter{"user_id": userID}, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve lead audience: %w", err)
		}
		recipients = append(recipients, leads...)
	}
	return recipients, nil
}

// renderTemplate substitutes {{name}}-style variables with recipient fields.
func renderTemplate(body string, recipient database.Record) string {
	out := body
	for _, field := range []string{"name", "address", "phone", "email"} {
		out = strings.ReplaceAll(out, "{{"+field+"}}", database.GetString(recipient, field))
	}
	return out
}

func (s *DefaultCampaignService) ListTemplates(ctx context.Context, userID string) ([]database.Record, error) {
	return s.Store.Select(ctx, templatesCol,
		database.Filter{"user_id": userID},
		&database.Order{Field: "created_at", Ascending: false})
}

func (s *DefaultCampaignService) CreateTemplate(ctx context.Context, userID string, fields database.Record) (database.Record, error) {
	rec := database.CloneRecord(fields)
	rec["user_id"] = userID
	if _, ok := rec["usage_count"]; !ok {
		rec["usage_count"] = float64(0)
	}
	return s.Store.Insert(ctx, templatesCol, rec)
}

func (s *DefaultCampaignService) UpdateTemplate(ctx context.Context, id string, patch database.Record) (database.Record, error) {
	return s.Store.Update(ctx, templatesCol, "id", id, patch)
}

func (s *DefaultCampaignService) DeleteTemplate(ctx context.Context, id string) error {
	return s.Store.Remove(ctx, templatesCol, "id", id)
}

// ListNotifications returns the newest undismissed notifications, capped so
// the feed stays readable.
func (s *DefaultCampaignService) ListNotifications(ctx context.Context, userID string) ([]database.Record, error) {
	records, err := s.Store.Select(ctx, notificationsCol,
		database.Filter{"user_id": userID},
		&database.Order{Field: "created_at", Ascending: false})
	if err != nil {
		return nil, err
	}
	visible := make([]database.Record, 0, len(records))
	for _, rec := range records {
		if dismissed, ok := rec["dismissed"].(bool); ok && dismissed {
			continue
		}
		visible = append(visible, rec)
		if len(visible) == feedLimit {
			break
		}
	}
	return visible, nil
}
