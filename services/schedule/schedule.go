// Package schedule manages appointments. Appointment values default to the
// quote engine's price when the caller leaves them unset.
package schedule

import (
	"context"
	"fmt"

	"bossmaids/database"
	"bossmaids/models"
	"bossmaids/services/quote"
)

const appointmentsCol = "appointments"

// Statuses an appointment can move through.
var validStatuses = map[string]bool{
	"scheduled":   true,
	"confirmed":   true,
	"in-progress": true,
	"completed":   true,
	"cancelled":   true,
}

// ScheduleService is the appointment surface consumed by the handlers.
type ScheduleService interface {
	ListAppointments(ctx context.Context, userID string) ([]database.Record, error)
	CreateAppointment(ctx context.Context, user models.User, fields database.Record) (database.Record, error)
	UpdateAppointment(ctx context.Context, id string, patch database.Record) (database.Record, error)
	DeleteAppointment(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) (database.Record, error)
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Store database.Store
}

func (s *DefaultScheduleService) ListAppointments(ctx context.Context, userID string) ([]database.Record, error) {
	return s.Store.Select(ctx, appointmentsCol,
		database.Filter{"user_id": userID},
		&database.Order{Field: "date", Ascending: true})
}

// CreateAppointment stamps the owner and, when no value was supplied,
// computes one from the job attributes and the owner's locality.
func (s *DefaultScheduleService) CreateAppointment(ctx context.Context, user models.User, fields database.Record) (database.Record, error) {
	rec := database.CloneRecord(fields)
	rec["user_id"] = user.ID
	if _, ok := rec["status"]; !ok {
		rec["status"] = "scheduled"
	}
	if database.GetFloat(rec, "value") == 0 {
		breakdown := quote.Calculate(models.QuoteInput{
			Bedrooms:   int(database.GetFloat(rec, "bedrooms")),
			Bathrooms:  int(database.GetFloat(rec, "bathrooms")),
			SquareFeet: database.GetFloat(rec, "square_feet"),
			Service:    database.GetString(rec, "category"),
			Frequency:  database.GetString(rec, "frequency"),
			City:       user.City,
			State:      user.State,
		})
		rec["value"] = breakdown.Total
	}
	return s.Store.Insert(ctx, appointmentsCol, rec)
}

func (s *DefaultScheduleService) UpdateAppointment(ctx context.Context, id string, patch database.Record) (database.Record, error) {
	return s.Store.Update(ctx, appointmentsCol, "id", id, patch)
}

func (s *DefaultScheduleService) DeleteAppointment(ctx context.Context, id string) error {
	return s.Store.Remove(ctx, appointmentsCol, "id", id)
}

func (s *DefaultScheduleService) SetStatus(ctx context.Context, id, status string) (database.Record, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid appointment status %q", status)
	}
	return s.Store.Update(ctx, appointmentsCol, "id", id, database.Record{"status": status})
}
