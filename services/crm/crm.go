// Package crm manages clients and leads over the storage facade.
package crm

import (
	"context"
	"fmt"

	"bossmaids/database"
)

const (
	clientsCol = "clients"
	leadsCol   = "leads"
)

// CRMService is the client/lead surface consumed by the handlers.
type CRMService interface {
	ListClients(ctx context.Context, userID string) ([]database.Record, error)
	CreateClient(ctx context.Context, userID string, fields database.Record) (database.Record, error)
	UpdateClient(ctx context.Context, id string, patch database.Record) (database.Record, error)
	DeleteClient(ctx context.Context, id string) error

	ListLeads(ctx context.Context, userID string) ([]database.Record, error)
	CreateLead(ctx context.Context, userID string, fields database.Record) (database.Record, error)
	UpdateLead(ctx context.Context, id string, patch database.Record) (database.Record, error)
	DeleteLead(ctx context.Context, id string) error
	// ConvertLead copies a lead into the clients collection and marks the
	// lead converted.
	ConvertLead(ctx context.Context, id string) (database.Record, error)
}

// DefaultCRMService implements CRMService.
type DefaultCRMService struct {
	Store database.Store
}

func (s *DefaultCRMService) ListClients(ctx context.Context, userID string) ([]database.Record, error) {
	return s.Store.Select(ctx, clientsCol,
		database.Filter{"user_id": userID},
		&database.Order{Field: "created_at", Ascending: false})
}

func (s *DefaultCRMService) CreateClient(ctx context.Context, userID string, fields database.Record) (database.Record, error) {
	rec := database.CloneRecord(fields)
	rec["user_id"] = userID
	return s.Store.Insert(ctx, clientsCol, rec)
}

func (s *DefaultCRMService) UpdateClient(ctx context.Context, id string, patch database.Record) (database.Record, error) {
	return s.Store.Update(ctx, clientsCol, "id", id, patch)
}

func (s *DefaultCRMService) DeleteClient(ctx context.Context, id string) error {
	return s.Store.Remove(ctx, clientsCol, "id", id)
}

func (s *DefaultCRMService) ListLeads(ctx context.Context, userID string) ([]database.Record, error) {
	return s.Store.Select(ctx, leadsCol,
		database.Filter{"user_id": userID},
		&database.Order{Field: "created_at", Ascending: false})
}

func (s *DefaultCRMService) CreateLead(ctx context.Context, userID string, fields database.Record) (database.Record, error) {
	rec := database.CloneRecord(fields)
	rec["user_id"] = userID
	if _, ok := rec["status"]; !ok {
		rec["status"] = "new"
	}
	return s.Store.Insert(ctx, leadsCol, rec)
}

func (s *DefaultCRMService) UpdateLead(ctx context.Context, id string, patch database.Record) (database.Record, error) {
	return s.Store.Update(ctx, leadsCol, "id", id, patch)
}

func (s *DefaultCRMService) DeleteLead(ctx context.Context, id string) error {
	return s.Store.Remove(ctx, leadsCol, "id", id)
}

func (s *DefaultCRMService) ConvertLead(ctx context.Context, id string) (database.Record, error) {
	leads, err := s.Store.Select(ctx, leadsCol, database.Filter{"id": id}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lead %s: %w", id, err)
	}
	if len(leads) == 0 {
		return nil, fmt.Errorf("lead %s: %w", id, database.ErrNotFound)
	}
	lead := leads[0]

	client, err := s.Store.Insert(ctx, clientsCol, database.Record{
		"user_id":       lead["user_id"],
		"name":          lead["name"],
		"phone":         lead["phone"],
		"email":         lead["email"],
		"address":       lead["address"],
		"cleaning_type": lead["service"],
		"frequency":     "One-time",
		"total_paid":    float64(0),
		"notes":         lead["notes"],
	})
	if err != nil {
		return nil, fmt.Errorf("failed to convert lead %s: %w", id, err)
	}

	if _, err := s.Store.Update(ctx, leadsCol, "id", id, database.Record{"status": "converted"}); err != nil {
		return nil, fmt.Errorf("failed to mark lead %s converted: %w", id, err)
	}
	return client, nil
}
