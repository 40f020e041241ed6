package campaigns

import (
	"context"
	"fmt"
	"time"

	"bossmaids/database"
	"bossmaids/utils"

	"go.uber.org/zap"
)

const (
	appointmentsCol = "appointments"

	// Smart notification types. One active notification per (user, type).
	typeInactiveLeads = "inactive_leads"
	typeEmptySlot     = "empty_slot"
	typeMilestone     = "milestone"
	typeSuggestion    = "suggestion"

	staleLeadAge     = 14 * 24 * time.Hour
	recentLeadWindow = 7 * 24 * time.Hour
	minTomorrowSlots = 3
	busyWeekLeads    = 5
	feedLimit        = 20
)

// RefreshSmartNotifications derives rule-based notifications from the current
// state of the user's leads and appointments, then returns the visible feed.
// Each rule upserts at most one notification per type, so repeated refreshes
// update in place instead of piling up duplicates.
func (s *DefaultCampaignService) RefreshSmartNotifications(ctx context.Context, userID string) ([]database.Record, error) {
	leads, err := s.Store.Select(ctx, leadsCol, database.Filter{"user_id": userID}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leads: %w", err)
	}
	appointments, err := s.Store.Select(ctx, appointmentsCol, database.Filter{"user_id": userID}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	now := time.Now()

	// Stale leads still marked "new" after two weeks.
	var staleIDs []string
	for _, lead := range leads {
		if database.GetString(lead, "status") != "new" {
			continue
		}
		created, ok := recordTime(lead, "created_at")
		if ok && now.Sub(created) >= staleLeadAge {
			staleIDs = append(staleIDs, database.GetString(lead, "id"))
		}
	}
	if len(staleIDs) > 0 {
		s.upsertSmart(ctx, userID, typeInactiveLeads, database.Record{
			"title":    fmt.Sprintf("%d leads inactive for 14+ days", len(staleIDs)),
			"message":  "Send a follow-up campaign to re-engage them before they go cold.",
			"priority": "high",
			"data":     database.Record{"lead_count": float64(len(staleIDs)), "lead_ids": staleIDs},
		})
	}

	// Light schedule tomorrow.
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")
	booked := 0
	for _, appt := range appointments {
		if database.GetString(appt, "date") == tomorrow {
			booked++
		}
	}
	if booked < minTomorrowSlots {
		s.upsertSmart(ctx, userID, typeEmptySlot, database.Record{
			"title":    "Open slots tomorrow",
			"message":  fmt.Sprintf("Only %d appointments booked for %s. A quick promo could fill the gaps.", booked, tomorrow),
			"priority": "medium",
			"data":     database.Record{"date": tomorrow},
		})
	}

	// Every tenth completed job is worth celebrating.
	completed := 0
	for _, appt := range appointments {
		if database.GetString(appt, "status") == "completed" {
			completed++
		}
	}
	if completed > 0 && completed%10 == 0 {
		s.upsertSmart(ctx, userID, typeMilestone, database.Record{
			"title":    fmt.Sprintf("%d jobs completed!", completed),
			"message":  "Milestone reached. Ask your happiest clients for a review.",
			"priority": "high",
			"data":     database.Record{"milestone": float64(completed)},
		})
	}

	// Busy week of incoming leads.
	recent := 0
	for _, lead := range leads {
		created, ok := recordTime(lead, "created_at")
		if ok && now.Sub(created) <= recentLeadWindow {
			recent++
		}
	}
	if recent > busyWeekLeads {
		s.upsertSmart(ctx, userID, typeSuggestion, database.Record{
			"title":    fmt.Sprintf("%d new leads this week", recent),
			"message":  "Great momentum. Respond fast to keep the conversion rate up.",
			"priority": "medium",
			"data":     database.Record{"weekly_leads": float64(recent)},
		})
	}

	return s.ListNotifications(ctx, userID)
}

// upsertSmart keeps a single live notification per (user, type), refreshing
// its content on each evaluation. Upsert failures are logged and skipped; the
// feed is advisory.
func (s *DefaultCampaignService) upsertSmart(ctx context.Context, userID, notifType string, fields database.Record) {
	existing, err := s.Store.Select(ctx, notificationsCol,
		database.Filter{"user_id": userID, "type": notifType}, nil)
	if err != nil {
		utils.GetLogger().Warn("smart notification lookup failed",
			zap.String("type", notifType), zap.Error(err))
		return
	}
	if len(existing) > 0 {
		id := database.GetString(existing[0], "id")
		if _, err := s.Store.Update(ctx, notificationsCol, "id", id, fields); err != nil {
			utils.GetLogger().Warn("smart notification update failed",
				zap.String("type", notifType), zap.Error(err))
		}
		return
	}
	rec := database.CloneRecord(fields)
	rec["user_id"] = userID
	rec["type"] = notifType
	rec["read"] = false
	rec["dismissed"] = false
	if _, err := s.Store.Insert(ctx, notificationsCol, rec); err != nil {
		utils.GetLogger().Warn("smart notification insert failed",
			zap.String("type", notifType), zap.Error(err))
	}
}

// MarkNotificationRead flags a notification as seen without removing it.
func (s *DefaultCampaignService) MarkNotificationRead(ctx context.Context, id string) (database.Record, error) {
	return s.Store.Update(ctx, notificationsCol, "id", id, database.Record{"read": true})
}

// DismissNotification hides a notification from the feed. The record stays
// behind so a rule re-triggering updates it rather than resurrecting a
// duplicate.
func (s *DefaultCampaignService) DismissNotification(ctx context.Context, id string) (database.Record, error) {
	return s.Store.Update(ctx, notificationsCol, "id", id, database.Record{"dismissed": true})
}

// recordTime parses an RFC3339 timestamp field off a record.
func recordTime(rec database.Record, field string) (time.Time, bool) {
	raw := database.GetString(rec, field)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
