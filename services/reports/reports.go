// Package reports aggregates stored records into business performance
// summaries. Everything is computed on demand from the storage facade; no
// rollup tables are kept.
package reports

import (
	"context"
	"fmt"
	"time"

	"bossmaids/database"
	"bossmaids/models"
)

const (
	appointmentsCol = "appointments"
	clientsCol      = "clients"
	leadsCol        = "leads"
	emailLogsCol    = "email_logs"
	smsLogsCol      = "sms_logs"
)

// ReportsService produces aggregate stats for the reports page.
type ReportsService interface {
	// Summary reports revenue, volume and conversion over the trailing
	// window of the given number of days, ending today.
	Summary(ctx context.Context, userID string, days int) (*models.ReportSummary, error)
}

// DefaultReportsService implements ReportsService over the storage facade.
type DefaultReportsService struct {
	Store database.Store
}

func (s *DefaultReportsService) Summary(ctx context.Context, userID string, days int) (*models.ReportSummary, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now()
	start := now.AddDate(0, 0, -days)
	startDate := start.Format("2006-01-02")
	endDate := now.Format("2006-01-02")

	summary := &models.ReportSummary{PeriodDays: days}

	appointments, err := s.Store.Select(ctx, appointmentsCol, database.Filter{"user_id": userID}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	for _, appt := range appointments {
		date := database.GetString(appt, "date")
		if date < startDate || date > endDate {
			continue
		}
		summary.TotalAppointments++
		summary.TotalRevenue += database.GetFloat(appt, "value")
	}

	summary.TotalClients, err = s.countSince(ctx, clientsCol, userID, "created_at", start)
	if err != nil {
		return nil, err
	}
	summary.TotalLeads, err = s.countSince(ctx, leadsCol, userID, "created_at", start)
	if err != nil {
		return nil, err
	}
	if summary.TotalLeads > 0 {
		summary.ConversionRate = float64(summary.TotalClients) / float64(summary.TotalLeads) * 100
	}

	summary.EmailsSent, err = s.countSince(ctx, emailLogsCol, userID, "sent_at", start)
	if err != nil {
		return nil, err
	}
	summary.SMSSent, err = s.countSince(ctx, smsLogsCol, userID, "sent_at", start)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// countSince counts the user's records whose timestamp field falls inside the
// window. Records with a missing or unparsable timestamp are skipped.
func (s *DefaultReportsService) countSince(ctx context.Context, collection, userID, field string, start time.Time) (int, error) {
	records, err := s.Store.Select(ctx, collection, database.Filter{"user_id": userID}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", collection, err)
	}
	count := 0
	for _, rec := range records {
		raw := database.GetString(rec, field)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		if !t.Before(start) {
			count++
		}
	}
	return count, nil
}
