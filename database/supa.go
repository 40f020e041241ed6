package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// SupabaseStore implements Store over Supabase's PostgREST API. This is the
// backend the hosted product runs against; collection names map straight to
// table names.
type SupabaseStore struct {
	client *supabase.Client
}

// NewSupabaseStore builds the client. No connection is made until the first
// query, so a bad key surfaces on first use as a transport error.
func NewSupabaseStore(url, key string) (*SupabaseStore, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

func (s *SupabaseStore) Select(_ context.Context, collection string, filter Filter, order *Order) ([]Record, error) {
	query := s.client.From(collection).Select("*", "", false)
	for field, value := range filter {
		query = query.Eq(field, fmt.Sprintf("%v", value))
	}
	if order != nil && order.Field != "" {
		query = query.Order(order.Field, &postgrest.OrderOpts{Ascending: order.Ascending})
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	records := []Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", collection, err)
	}
	return records, nil
}

func (s *SupabaseStore) Insert(_ context.Context, collection string, fields Record) (Record, error) {
	now := time.Now().Format(time.RFC3339)
	rec := CloneRecord(fields)
	rec["id"] = uuid.New().String()
	rec["created_at"] = now
	rec["updated_at"] = now

	data, _, err := s.client.From(collection).Insert(rec, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	inserted := []Record{}
	if err := json.Unmarshal(data, &inserted); err != nil {
		return nil, fmt.Errorf("failed to decode %s insert response: %w", collection, err)
	}
	if len(inserted) == 0 {
		return rec, nil
	}
	return inserted[0], nil
}

func (s *SupabaseStore) Update(_ context.Context, collection string, matchField string, matchValue any, patch Record) (Record, error) {
	set := CloneRecord(patch)
	delete(set, "id")
	delete(set, "created_at")
	set["updated_at"] = time.Now().Format(time.RFC3339)

	data, _, err := s.client.From(collection).
		Update(set, "representation", "").
		Eq(matchField, fmt.Sprintf("%v", matchValue)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", collection, err)
	}
	updated := []Record{}
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, fmt.Errorf("failed to decode %s update response: %w", collection, err)
	}
	if len(updated) == 0 {
		return nil, fmt.Errorf("update %s where %s=%v: %w", collection, matchField, matchValue, ErrNotFound)
	}
	return updated[0], nil
}

func (s *SupabaseStore) Remove(_ context.Context, collection string, matchField string, matchValue any) error {
	_, _, err := s.client.From(collection).
		Delete("", "").
		Eq(matchField, fmt.Sprintf("%v", matchValue)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return nil
}
