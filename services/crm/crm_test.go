package crm

import (
	"context"
	"testing"

	"bossmaids/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *DefaultCRMService {
	t.Helper()
	store, err := database.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return &DefaultCRMService{Store: store}
}

func TestCreateClientStampsOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, database.DemoUserID, database.Record{
		"name":    "New Client",
		"user_id": "spoofed", // must be overwritten
	})
	require.NoError(t, err)
	assert.Equal(t, database.DemoUserID, database.GetString(created, "user_id"))
}

func TestListClientsScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateClient(ctx, "other-user", database.Record{"name": "Not Mine"})
	require.NoError(t, err)

	clients, err := svc.ListClients(ctx, database.DemoUserID)
	require.NoError(t, err)
	assert.Len(t, clients, 5) // seeds only
	for _, rec := range clients {
		assert.Equal(t, database.DemoUserID, database.GetString(rec, "user_id"))
	}
}

func TestCreateLeadDefaultsStatusNew(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	lead, err := svc.CreateLead(ctx, database.DemoUserID, database.Record{"name": "Prospect"})
	require.NoError(t, err)
	assert.Equal(t, "new", database.GetString(lead, "status"))

	contacted, err := svc.CreateLead(ctx, database.DemoUserID, database.Record{
		"name":   "Prospect Two",
		"status": "contacted",
	})
	require.NoError(t, err)
	assert.Equal(t, "contacted", database.GetString(contacted, "status"))
}

func TestConvertLead(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Seeded lead 1 is Carlos Martinez wanting a Deep Clean.
	client, err := svc.ConvertLead(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, "Carlos Martinez", database.GetString(client, "name"))
	assert.Equal(t, "carlos@email.com", database.GetString(client, "email"))
	assert.Equal(t, "Deep Clean", database.GetString(client, "cleaning_type"))
	assert.Equal(t, "One-time", database.GetString(client, "frequency"))
	assert.Equal(t, 0.0, database.GetFloat(client, "total_paid"))
	assert.NotEmpty(t, database.GetString(client, "id"))

	leads, err := svc.ListLeads(ctx, database.DemoUserID)
	require.NoError(t, err)
	for _, lead := range leads {
		if database.GetString(lead, "id") == "1" {
			assert.Equal(t, "converted", database.GetString(lead, "status"))
		}
	}

	clients, err := svc.ListClients(ctx, database.DemoUserID)
	require.NoError(t, err)
	assert.Len(t, clients, 6)
}

func TestConvertLeadMissing(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ConvertLead(context.Background(), "no-such-lead")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDeleteClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteClient(ctx, "3"))

	clients, err := svc.ListClients(ctx, database.DemoUserID)
	require.NoError(t, err)
	assert.Len(t, clients, 4)
}
